package deflate

import "io"

// Reader decompresses a DEFLATE stream (RFC 1951) as it is read. It
// understands stored (BTYPE=00) and fixed-Huffman (BTYPE=01) blocks;
// dynamic-Huffman blocks (BTYPE=10) report ErrUnsupported rather than being
// decoded, and a reserved BTYPE (11) reports ErrInvalidBlockHeader.
type Reader struct {
	InputOffset  int64 // Total bytes consumed from the underlying io.Reader
	OutputOffset int64 // Total bytes emitted from Read

	rd     bitReader
	toRead []byte
	dist   int
	blkLen int
	cpyLen int
	last   bool
	err    error

	step      func(*Reader)
	stepState int

	dict dictDecoder
}

// NewReader returns a Reader that decompresses from r.
func NewReader(r io.Reader) *Reader {
	zr := new(Reader)
	zr.Reset(r)
	return zr
}

func (zr *Reader) Read(buf []byte) (int, error) {
	for {
		if len(zr.toRead) > 0 {
			cnt := copy(buf, zr.toRead)
			zr.toRead = zr.toRead[cnt:]
			zr.OutputOffset += int64(cnt)
			return cnt, nil
		}
		if zr.err != nil {
			return 0, zr.err
		}

		func() {
			defer errRecover(&zr.err)
			zr.step(zr)
		}()
		zr.InputOffset = zr.rd.Offset()
		if zr.err != nil {
			zr.toRead = zr.dict.ReadFlush()
		}
	}
}

// Close releases the reader. It returns nil on a clean end-of-stream (so a
// caller used to io.ReadCloser semantics does not need to special-case
// io.EOF), and otherwise the persistent error.
func (zr *Reader) Close() error {
	if zr.err == io.EOF {
		zr.toRead = nil
		zr.err = io.ErrClosedPipe
		return nil
	}
	return zr.err
}

// Reset discards any in-progress decompression state and resumes reading
// from r as though this Reader were newly constructed.
func (zr *Reader) Reset(r io.Reader) error {
	*zr = Reader{
		rd:   zr.rd,
		step: (*Reader).readBlockHeader,
		dict: zr.dict,
	}
	zr.rd.Init(r)
	zr.dict.Init(maxHistSize)
	return nil
}

// readBlockHeader reads BFINAL and BTYPE per RFC 1951 §3.2.3.
func (zr *Reader) readBlockHeader() {
	if zr.last {
		zr.rd.ReadPads()
		panic(io.EOF)
	}

	zr.last = zr.rd.ReadBits(1) == 1
	switch zr.rd.ReadBits(2) {
	case 0:
		zr.rd.ReadPads()

		n := uint16(zr.rd.ReadBits(16))
		nn := uint16(zr.rd.ReadBits(16))
		if n^nn != 0xffff {
			panic(ErrInvalidBlockHeader)
		}
		zr.blkLen = int(n)

		if zr.blkLen == 0 {
			zr.toRead = zr.dict.ReadFlush()
			zr.step = (*Reader).readBlockHeader
			return
		}
		zr.step = (*Reader).readRawData
	case 1:
		zr.step = (*Reader).readBlock
	case 2:
		panic(ErrUnsupported)
	default:
		panic(ErrInvalidBlockHeader)
	}
}

// readRawData copies a stored block straight into the dictionary, per RFC
// 1951 §3.2.4.
func (zr *Reader) readRawData() {
	buf := zr.dict.WriteSlice()
	if len(buf) > zr.blkLen {
		buf = buf[:zr.blkLen]
	}

	cnt, err := zr.rd.Read(buf)
	zr.blkLen -= cnt
	zr.dict.WriteMark(cnt)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		panic(err)
	}

	if zr.blkLen > 0 {
		zr.toRead = zr.dict.ReadFlush()
		zr.step = (*Reader).readRawData
		return
	}
	zr.step = (*Reader).readBlockHeader
}

// readBlock decodes the literal/length and distance token stream of a
// fixed-Huffman block, per RFC 1951 §3.2.3 and §3.2.6.
func (zr *Reader) readBlock() {
	const (
		stateInit = iota
		stateDict
	)

	switch zr.stepState {
	case stateInit:
		goto readLiteral
	case stateDict:
		goto copyDistance
	}

readLiteral:
	{
		if zr.dict.AvailSize() == 0 {
			zr.toRead = zr.dict.ReadFlush()
			zr.step = (*Reader).readBlock
			zr.stepState = stateInit
			return
		}

		litSym, ok := zr.rd.TryReadSymbol(&fixedLitDec)
		if !ok {
			litSym = zr.rd.ReadSymbol(&fixedLitDec)
		}
		switch {
		case litSym < endBlockSym:
			zr.dict.PutByte(byte(litSym))
			goto readLiteral
		case litSym == endBlockSym:
			zr.step = (*Reader).readBlockHeader
			zr.stepState = stateInit
			return
		case litSym < maxNumLitSyms:
			rc := lenRanges[litSym-257]
			extra, ok := zr.rd.TryReadBits(rc.Bits)
			if !ok {
				extra = zr.rd.ReadBits(rc.Bits)
			}
			zr.cpyLen = int(rc.Base + extra)

			distSym, ok := zr.rd.TryReadSymbol(&fixedDistDec)
			if !ok {
				distSym = zr.rd.ReadSymbol(&fixedDistDec)
			}
			if int(distSym) >= len(distRanges) {
				panic(ErrInvalidHuffmanCode)
			}

			rc = distRanges[distSym]
			extra, ok = zr.rd.TryReadBits(rc.Bits)
			if !ok {
				extra = zr.rd.ReadBits(rc.Bits)
			}
			zr.dist = int(rc.Base + extra)
			if zr.dist > zr.dict.HistSize() {
				panic(ErrInvalidBackReference)
			}

			goto copyDistance
		default:
			panic(ErrInvalidHuffmanCode)
		}
	}

copyDistance:
	{
		cnt := zr.dict.WriteCopy(zr.dist, zr.cpyLen)
		zr.cpyLen -= cnt

		if zr.cpyLen > 0 {
			zr.toRead = zr.dict.ReadFlush()
			zr.step = (*Reader).readBlock
			zr.stepState = stateDict
			return
		}
		goto readLiteral
	}
}
