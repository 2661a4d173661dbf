package deflate

import "github.com/gocompress/deflate/internal/prefix"

// BuildHuffmanCode constructs a canonical Huffman code over the given
// per-symbol frequencies, following RFC 1951 §3.2.2: repeatedly merge the
// two lowest-frequency nodes (ties broken by symbol order for leaves, by
// merge order for internal nodes), then assign consecutive code values
// within each length class. Symbols with a zero frequency take no part in
// the alphabet and receive a zero length.
//
// numSyms bounds the alphabet (so that callers can build an encoder sized
// for the full literal/length or distance alphabet even when only a subset
// of symbols has a non-zero frequency). maxBits is the longest code the
// result may use; RFC 1951 requires 15 for both alphabets.
//
// This mirrors the fixed-code tables of prefix.go, but is not invoked by
// Writer: this core always emits fixed-Huffman blocks. It exists so the
// canonical-code engine itself is directly testable against arbitrary
// frequency distributions, per the "canonical prefix" property.
func BuildHuffmanCode(freq map[uint32]uint32, numSyms int, maxBits uint) (enc *prefix.Encoder, dec *prefix.Decoder, err error) {
	codes := make(prefix.PrefixCodes, numSyms)
	for sym := 0; sym < numSyms; sym++ {
		codes[sym] = prefix.PrefixCode{Sym: uint32(sym), Cnt: freq[uint32(sym)]}
	}

	codes.SortByCount()
	if err := prefix.GenerateLengths(codes, maxBits); err != nil {
		return nil, nil, err
	}
	codes.SortBySymbol()
	if err := prefix.GeneratePrefixes(codes); err != nil {
		return nil, nil, err
	}

	enc = new(prefix.Encoder)
	dec = new(prefix.Decoder)
	enc.Init(codes)
	dec.Init(codes)
	return enc, dec, nil
}

// symbolFrequencies tallies how often each literal/length symbol (and,
// separately, each distance symbol) occurs in a stream of Symbol values.
// It is used by tests that exercise BuildHuffmanCode against realistic
// distributions, and is available for a future dynamic-block encoder.
func symbolFrequencies(syms []Symbol) (litFreq, distFreq map[uint32]uint32) {
	litFreq = make(map[uint32]uint32)
	distFreq = make(map[uint32]uint32)
	for _, s := range syms {
		switch s.Kind {
		case SymLiteral:
			litFreq[uint32(s.Literal)]++
		case SymMatch:
			lc := lenRanges.Symbol(s.Length)
			litFreq[uint32(257+lc)]++
			dc := distRanges.Symbol(s.Distance)
			distFreq[uint32(dc)]++
		case SymEndOfBlock:
			litFreq[endBlockSym]++
		}
	}
	return litFreq, distFreq
}
