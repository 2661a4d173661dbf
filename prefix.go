package deflate

import "github.com/gocompress/deflate/internal/prefix"

const (
	maxNumLitSyms  = 286
	maxNumDistSyms = 30
)

var (
	// lenRanges and distRanges implement RFC 1951 §3.2.5: the length
	// alphabet runs from symbol 257 (length 3) to symbol 285 (length 258,
	// with 0 extra bits); the distance alphabet runs from symbol 0
	// (distance 1) to symbol 29 (distance 24577..32768).
	lenRanges  prefix.RangeCodes
	distRanges prefix.RangeCodes

	// fixedLitEnc/fixedLitDec and fixedDistEnc/fixedDistDec implement the
	// Fixed Huffman code of RFC 1951 §3.2.6.
	fixedLitEnc  prefix.Encoder
	fixedLitDec  prefix.Decoder
	fixedDistEnc prefix.Encoder
	fixedDistDec prefix.Decoder
)

func init() {
	lenRanges = prefix.MakeRangeCodes(3, []uint{
		0, 0, 0, 0, 0, 0, 0, 0, // 257..264: length 3..10
		1, 1, 1, 1, // 265..268: length 11..18, 2 each
		2, 2, 2, 2, // 269..272
		3, 3, 3, 3, // 273..276
		4, 4, 4, 4, // 277..280
		5, 5, 5, 5, // 281..284
		0, // 285: length 258 exactly
	})
	// Symbol 285 is the special case: base 258, 0 extra bits, not the base
	// 259 that MakeRangeCodes' running sum assigns it.
	lenRanges[len(lenRanges)-1] = prefix.RangeCode{Base: 258, Bits: 0}

	distRanges = prefix.MakeRangeCodes(1, []uint{
		0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7,
		8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13,
	})

	var litCodes prefix.PrefixCodes
	for i := 0; i < 144; i++ {
		litCodes = append(litCodes, prefix.PrefixCode{Sym: uint32(i), Len: 8})
	}
	for i := 144; i < 256; i++ {
		litCodes = append(litCodes, prefix.PrefixCode{Sym: uint32(i), Len: 9})
	}
	for i := 256; i < 280; i++ {
		litCodes = append(litCodes, prefix.PrefixCode{Sym: uint32(i), Len: 7})
	}
	for i := 280; i < 288; i++ {
		litCodes = append(litCodes, prefix.PrefixCode{Sym: uint32(i), Len: 8})
	}
	prefix.GeneratePrefixes(litCodes)
	fixedLitEnc.Init(litCodes)
	fixedLitDec.Init(litCodes)

	var distCodes prefix.PrefixCodes
	for i := 0; i < 32; i++ {
		distCodes = append(distCodes, prefix.PrefixCode{Sym: uint32(i), Len: 5})
	}
	prefix.GeneratePrefixes(distCodes)
	fixedDistEnc.Init(distCodes)
	fixedDistDec.Init(distCodes)
}
