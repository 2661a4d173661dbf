package prefix

// Encoder is a canonical-prefix encode table: a dense array indexed by
// symbol value, giving the (already bit-reversed) code value and its
// bit-length.
type Encoder struct {
	codes   []uint32 // val<<countBits | len, indexed by symbol
	numSyms uint32
}

// Init builds the encode table from codes, which must have Len and Val
// already populated (typically by GenerateLengths then GeneratePrefixes).
// Symbols are addressed by their numeric value, so the table is sized to
// the largest symbol seen.
func (pe *Encoder) Init(codes PrefixCodes) {
	var maxSym uint32
	for _, c := range codes {
		if c.Len > 0 && c.Sym > maxSym {
			maxSym = c.Sym
		}
	}
	pe.codes = make([]uint32, maxSym+1)
	pe.numSyms = 0
	for _, c := range codes {
		if c.Len == 0 {
			continue
		}
		pe.codes[c.Sym] = c.Val<<countBits | c.Len
		pe.numSyms++
	}
}

// Encode returns the bit-reversed code value and bit-length for sym. The
// caller writes val as the low nb bits of an LSB-first bit stream.
func (pe *Encoder) Encode(sym uint32) (val uint32, nb uint32) {
	c := pe.codes[sym]
	return c >> countBits, c & countMask
}
