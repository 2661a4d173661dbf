package deflate

import "io"

// Writer compresses data written to it into a single DEFLATE stream (RFC
// 1951). It always emits one fixed-Huffman block (BTYPE=01, BFINAL=1),
// built from a greedy LZ77 parse of everything written before Close.
//
// Unlike Reader, Writer is not a streaming state machine: it buffers all
// input and parses it in one shot on Close, since the hash-chain matcher
// needs the entire buffer to find matches. This mirrors the corpus's own
// one-shot compressors (the LZ77 search window gains nothing from seeing
// only a prefix of the input).
type Writer struct {
	w   io.Writer
	buf []byte
	err error
}

// NewWriter returns a Writer that writes a compressed stream to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends p to the pending input. It never itself produces compressed
// output; compression happens in Close.
func (zw *Writer) Write(p []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.buf = append(zw.buf, p...)
	return len(p), nil
}

// Close compresses everything written so far and flushes it to the
// underlying writer. It must be called exactly once.
func (zw *Writer) Close() error {
	if zw.err != nil {
		return zw.err
	}

	syms := compress(zw.buf)

	var bw bitWriter
	bw.WriteBits(1, 1) // BFINAL
	bw.WriteBits(1, 2) // BTYPE = 01 (fixed Huffman)

	for _, s := range syms {
		switch s.Kind {
		case SymLiteral:
			bw.WriteSymbol(&fixedLitEnc, uint32(s.Literal))
		case SymMatch:
			lc := lenRanges.Symbol(s.Length)
			bw.WriteSymbol(&fixedLitEnc, uint32(257+lc))
			bw.WriteOffset(lenRanges[lc], s.Length)

			dc := distRanges.Symbol(s.Distance)
			bw.WriteSymbol(&fixedDistEnc, uint32(dc))
			bw.WriteOffset(distRanges[dc], s.Distance)
		case SymEndOfBlock:
			bw.WriteSymbol(&fixedLitEnc, endBlockSym)
		}
	}

	_, err := zw.w.Write(bw.Flush())
	if err != nil {
		zw.err = err
		return err
	}
	zw.err = io.ErrClosedPipe
	return nil
}
