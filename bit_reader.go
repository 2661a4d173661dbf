package deflate

import (
	"bufio"
	"io"

	"github.com/gocompress/deflate/internal/prefix"
)

// byteReader is the minimal interface bitReader needs from its source.
type byteReader interface {
	io.Reader
	io.ByteReader
}

// bitReader reads an LSB-first bit stream, as RFC 1951 §3.1.1 requires:
// the first bit read becomes bit 0 of the accumulator, so a multi-bit field
// is reconstructed with its first-read bit as the least-significant one.
type bitReader struct {
	rd      byteReader
	bufBits uint64
	numBits uint32
	offset  int64
}

func (br *bitReader) Init(r io.Reader) {
	*br = bitReader{}
	if rr, ok := r.(byteReader); ok {
		br.rd = rr
	} else {
		br.rd = bufio.NewReader(r)
	}
}

// Offset reports the number of bytes consumed from the underlying reader so
// far, including any buffered-but-unconsumed bits of the final byte.
func (br *bitReader) Offset() int64 { return br.offset }

// feedBits ensures at least nb bits are available in the accumulator,
// pulling whole bytes from the underlying reader as needed.
func (br *bitReader) feedBits(nb uint32) {
	for br.numBits < nb {
		c, err := br.rd.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			panic(err)
		}
		br.bufBits |= uint64(c) << br.numBits
		br.numBits += 8
		br.offset++
	}
}

// ReadBits reads the next nb bits (nb <= 32) as an unsigned integer, per
// write_bits in reverse: bit 0 of the result is the first bit read.
func (br *bitReader) ReadBits(nb uint32) uint32 {
	if nb == 0 {
		return 0
	}
	br.feedBits(nb)
	val := uint32(br.bufBits & (1<<nb - 1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val
}

// TryReadBits attempts to read nb bits using only what is already buffered,
// without touching the underlying reader. It is the fast path used between
// the infrequent feedBits refills.
func (br *bitReader) TryReadBits(nb uint32) (uint32, bool) {
	if br.numBits < nb {
		return 0, false
	}
	val := uint32(br.bufBits & (1<<nb - 1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val, true
}

// ReadPads discards the 0-7 bits remaining before the next byte boundary.
func (br *bitReader) ReadPads() uint32 {
	nb := br.numBits % 8
	val := uint32(br.bufBits & (1<<nb - 1))
	br.bufBits >>= nb
	br.numBits -= nb
	return val
}

// Read implements io.Reader over the byte-aligned remainder of the stream;
// it is only valid once ReadPads (or an equivalent drain) has byte-aligned
// the accumulator, and is used for the raw stored-block path.
func (br *bitReader) Read(buf []byte) (int, error) {
	if br.numBits%8 != 0 {
		return 0, ErrCorrupt
	}
	var cnt int
	for cnt < len(buf) && br.numBits > 0 {
		buf[cnt] = byte(br.bufBits)
		br.bufBits >>= 8
		br.numBits -= 8
		cnt++
	}
	if cnt > 0 {
		return cnt, nil
	}
	n, err := br.rd.Read(buf)
	br.offset += int64(n)
	return n, err
}

// ReadSymbol decodes one symbol using pd, reading additional bits from the
// underlying reader only as needed. This is where write_code is inverted:
// pd's codes were built with their bits already reversed (§4.3), so a plain
// LSB-first accumulator match recovers the code the encoder intended.
func (br *bitReader) ReadSymbol(pd *prefix.Decoder) uint32 {
	nb := pd.MinBits()
	for {
		br.feedBits(nb)
		sym, used, ok := pd.Lookup(br.bufBits, br.numBits)
		if ok {
			br.bufBits >>= used
			br.numBits -= used
			return sym
		}
		// Not enough bits buffered to resolve the code (it may need the
		// link table, whose true length Lookup only reveals once the
		// chunk table has been consulted). Ask for one more bit and retry.
		nb = br.numBits + 1
	}
}

// TryReadSymbol is ReadSymbol's no-refill fast path.
func (br *bitReader) TryReadSymbol(pd *prefix.Decoder) (uint32, bool) {
	sym, used, ok := pd.Lookup(br.bufBits, br.numBits)
	if !ok {
		return 0, false
	}
	br.bufBits >>= used
	br.numBits -= used
	return sym, true
}

// ReadOffset reads the extra bits for rc and adds them to its base, the
// operation behind both the length and distance alphabets of §4.4.
func (br *bitReader) ReadOffset(rc prefix.RangeCode) uint32 {
	return rc.Base + br.ReadBits(rc.Bits)
}
