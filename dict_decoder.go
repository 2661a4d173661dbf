package deflate

// dictDecoder implements the sliding-window output buffer a DEFLATE decoder
// writes into: literals and copies land in hist, and a back-reference's
// distance is always measured against what has already been written there.
// Once hist fills, ReadFlush must be called to drain it before more data can
// be written — the calling Reader's responsibility to avoid ever discarding
// bytes a future back-reference might still need, which is why hist is
// sized to exactly one window (maxHistSize): nothing further back than that
// is addressable by any valid distance anyway.
type dictDecoder struct {
	hist []byte
	wrPos int // hist[:wrPos] holds data written but not yet flushed out
	rdPos int // hist[:rdPos] holds data already handed back to the caller
	full bool // whether a full window's worth of history has been written
}

// Init (re)initializes the decoder to a window of the given size, reusing
// the backing array when possible.
func (dd *dictDecoder) Init(size int) {
	*dd = dictDecoder{hist: dd.hist}
	if cap(dd.hist) < size {
		dd.hist = make([]byte, size)
	} else {
		dd.hist = dd.hist[:size]
	}
}

// HistSize reports how many bytes of valid history are available behind the
// current write position — the largest distance a back-reference may use.
func (dd *dictDecoder) HistSize() int {
	if dd.full {
		return len(dd.hist)
	}
	return dd.wrPos
}

// AvailSize reports how much room remains before hist must be flushed.
func (dd *dictDecoder) AvailSize() int {
	return len(dd.hist) - dd.wrPos
}

// WriteSlice returns the unwritten tail of hist, for a caller (the stored
// block path) that wants to read bytes directly off the wire into it.
func (dd *dictDecoder) WriteSlice() []byte {
	return dd.hist[dd.wrPos:]
}

// WriteMark advances the write position after the caller has filled some of
// the slice returned by WriteSlice.
func (dd *dictDecoder) WriteMark(cnt int) {
	dd.wrPos += cnt
}

// PutByte appends a single literal byte.
func (dd *dictDecoder) PutByte(c byte) {
	dd.hist[dd.wrPos] = c
	dd.wrPos++
}

// WriteCopy copies a length/distance back-reference into hist, starting at
// the current write position, and reports how many bytes it actually wrote
// (which may be less than length if hist filled up first — the caller loops
// on the remainder after flushing). dist must not exceed HistSize(); callers
// check that before calling WriteCopy.
//
// Because the source and destination ranges can overlap (any dist <
// length, as in a run of a repeated byte), the copy proceeds in two stages:
// first the non-overlapping portion copies in one shot, then the remainder
// advances through the already-written bytes of this same call, the way a
// byte-by-byte copy would, but doing so in growing power-of-two strides.
func (dd *dictDecoder) WriteCopy(dist, length int) int {
	dstBase := dd.wrPos
	dstPos := dstBase
	srcPos := dstPos - dist
	endPos := dstPos + length
	if endPos > len(dd.hist) {
		endPos = len(dd.hist)
	}

	// A match spanning the wrap point (srcPos negative) reads its first
	// bytes from the tail of hist, where ReadFlush left them when it last
	// rewound wrPos to 0; that tail is still valid history precisely
	// because the window is exactly one maxHistSize wide.
	if srcPos < 0 {
		srcPos += len(dd.hist)
		dstPos += copy(dd.hist[dstPos:endPos], dd.hist[srcPos:])
		srcPos = 0
	}

	// The remaining (possibly self-overlapping, as in a run of a repeated
	// byte) part resolves in growing strides as dstPos catches up to itself.
	for dstPos < endPos {
		dstPos += copy(dd.hist[dstPos:endPos], dd.hist[srcPos:dstPos])
	}

	dd.wrPos = dstPos
	return dstPos - dstBase
}

// ReadFlush returns the bytes written since the last ReadFlush. If hist is
// now full, it rewinds the write position to the start, since every byte
// just handed back is still reachable as history for the next window's
// worth of back-references (a fresh start that still satisfies HistSize's
// "up to one full window" guarantee, now measured from position 0 again
// once full is set — callers must not address further back than that,
// which matches maxHistSize being DEFLATE's maximum legal distance).
func (dd *dictDecoder) ReadFlush() []byte {
	toRead := dd.hist[dd.rdPos:dd.wrPos]
	dd.rdPos = dd.wrPos
	if dd.wrPos == len(dd.hist) {
		dd.wrPos, dd.rdPos = 0, 0
		dd.full = true
	}
	return toRead
}
