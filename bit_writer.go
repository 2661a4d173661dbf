package deflate

import (
	"bytes"

	"github.com/gocompress/deflate/internal/prefix"
)

// bitWriter packs bits LSB-first into a growing byte buffer: the first bit
// written becomes bit 0 of the current byte, matching write_bits in §4.1.
// Huffman codes are written through the same primitive, since the encode
// tables built by internal/prefix already store their code values with
// their bits reversed (see GeneratePrefixes) — so emitting those bits
// LSB-first reproduces the MSB-first-into-an-LSB-stream convention RFC 1951
// describes for write_code.
type bitWriter struct {
	buf     bytes.Buffer
	bufBits uint64
	numBits uint32
}

func (bw *bitWriter) WriteBits(v uint32, nb uint32) {
	bw.bufBits |= uint64(v&(1<<nb-1)) << bw.numBits
	bw.numBits += nb
	for bw.numBits >= 8 {
		bw.buf.WriteByte(byte(bw.bufBits))
		bw.bufBits >>= 8
		bw.numBits -= 8
	}
}

// WriteSymbol emits the canonical code for sym according to enc.
func (bw *bitWriter) WriteSymbol(enc *prefix.Encoder, sym uint32) {
	val, nb := enc.Encode(sym)
	bw.WriteBits(val, nb)
}

// WriteOffset emits the extra bits of an (length or distance) RangeCode,
// given the raw value already known to fall within that range.
func (bw *bitWriter) WriteOffset(rc prefix.RangeCode, value uint32) {
	bw.WriteBits(value-rc.Base, rc.Bits)
}

// Flush pads the current byte with zero bits (as §4.1 requires: any
// trailing bits in the final byte of a DEFLATE block are zero) and returns
// the accumulated output.
func (bw *bitWriter) Flush() []byte {
	if bw.numBits > 0 {
		bw.buf.WriteByte(byte(bw.bufBits))
		bw.bufBits = 0
		bw.numBits = 0
	}
	return bw.buf.Bytes()
}

// AlignByte pads to the next byte boundary (used before stored-block raw
// data, which RFC 1951 §3.2.4 requires to start byte-aligned).
func (bw *bitWriter) AlignByte() {
	if bw.numBits > 0 {
		bw.buf.WriteByte(byte(bw.bufBits))
		bw.bufBits = 0
		bw.numBits = 0
	}
}

// WriteRaw appends bytes directly, bypassing the bit accumulator; the
// caller must have called AlignByte first.
func (bw *bitWriter) WriteRaw(b []byte) {
	bw.buf.Write(b)
}
