package deflate

import "testing"

func TestBuildHuffmanCodeRoundTrip(t *testing.T) {
	freq := map[uint32]uint32{
		'a': 50, 'b': 20, 'c': 15, 'd': 10, 'e': 4, 'f': 1,
	}
	enc, dec, err := BuildHuffmanCode(freq, 256, 15)
	if err != nil {
		t.Fatalf("BuildHuffmanCode: %v", err)
	}

	for sym, f := range freq {
		if f == 0 {
			continue
		}
		val, nb := enc.Encode(sym)
		got, used, ok := dec.Lookup(uint64(val), 32)
		if !ok || got != sym || used != nb {
			t.Fatalf("symbol %q: encode/decode mismatch", byte(sym))
		}
	}
}

func TestSymbolFrequencies(t *testing.T) {
	syms := []Symbol{
		{Kind: SymLiteral, Literal: 'x'},
		{Kind: SymLiteral, Literal: 'x'},
		{Kind: SymMatch, Length: 5, Distance: 3},
		{Kind: SymEndOfBlock},
	}
	litFreq, distFreq := symbolFrequencies(syms)

	if litFreq[uint32('x')] != 2 {
		t.Fatalf("literal 'x' frequency = %d, want 2", litFreq[uint32('x')])
	}
	if litFreq[endBlockSym] != 1 {
		t.Fatalf("end-of-block frequency = %d, want 1", litFreq[endBlockSym])
	}

	lc := lenRanges.Symbol(5)
	if litFreq[uint32(257+lc)] != 1 {
		t.Fatalf("length-code %d frequency = %d, want 1", lc, litFreq[uint32(257+lc)])
	}
	dc := distRanges.Symbol(3)
	if distFreq[uint32(dc)] != 1 {
		t.Fatalf("distance-code %d frequency = %d, want 1", dc, distFreq[uint32(dc)])
	}
}
