package deflate

import "encoding/binary"

// SymbolKind tags the variant held by a Symbol.
type SymbolKind uint8

const (
	SymLiteral SymbolKind = iota
	SymMatch
	SymEndOfBlock
)

// Symbol is one token of the LZ77 token stream: a single uncompressed byte,
// a back-reference copy, or the end-of-block terminator. It is the sum type
// the spec calls for in place of the tagged-union encoding the matcher
// historically used.
type Symbol struct {
	Kind     SymbolKind
	Literal  byte
	Length   uint32 // valid when Kind == SymMatch; in [minMatchLen, maxMatchLen]
	Distance uint32 // valid when Kind == SymMatch; in [1, maxHistSize]
}

const (
	hashBits  = 15 // 32768 hash-table entries, matching the 32 KiB window
	hashSize  = 1 << hashBits
	hashMask  = hashSize - 1
	hashMul32 = 0x1e35a7bd // Same multiplicative hash constant used widely
	// for byte-oriented LZ77 hashing; distributes 3-byte keys well.

	// maxChainLen bounds how far the matcher walks a hash chain before
	// settling for the best candidate found so far. This is the tuning
	// knob the spec calls out explicitly; deeper chains find marginally
	// better matches at a steep cost in compression time.
	maxChainLen = 128
)

func hash3(b []byte) uint32 {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return (v * hashMul32) >> (32 - hashBits)
}

// matcher finds LZ77 matches over a single in-memory input buffer using a
// 3-byte hash chain: head[h] is the most recent position whose 3-byte
// prefix hashes to h, and chain[p] is the position that previously held
// that same head, so walking chain from head[h] visits candidates from
// newest to oldest.
type matcher struct {
	src   []byte
	head  [hashSize]int32
	chain []int32
}

func newMatcher(src []byte) *matcher {
	m := &matcher{src: src, chain: make([]int32, len(src))}
	for i := range m.head {
		m.head[i] = -1
	}
	return m
}

func (m *matcher) insert(pos int) {
	if pos+3 > len(m.src) {
		return
	}
	h := hash3(m.src[pos:])
	m.chain[pos] = m.head[h]
	m.head[h] = int32(pos)
}

// findMatch looks for the longest match at pos, subject to the window and
// chain-depth bounds, preferring the smallest distance among equal-length
// candidates (since that yields cheaper distance codes). It reports a
// match only if its length is at least minMatchLen.
func (m *matcher) findMatch(pos int) (length, distance int) {
	if pos+minMatchLen > len(m.src) {
		return 0, 0
	}
	h := hash3(m.src[pos:])
	cand := m.head[h]
	minPos := pos - maxHistSize
	maxLen := len(m.src) - pos
	if maxLen > maxMatchLen {
		maxLen = maxMatchLen
	}

	bestLen := 0
	bestDist := 0
	for depth := 0; cand >= 0 && int(cand) > minPos && depth < maxChainLen; depth++ {
		c := int(cand)
		l := matchLen(m.src, c, pos, maxLen)
		if l > bestLen {
			bestLen = l
			bestDist = pos - c
			if l >= maxLen {
				break
			}
		}
		cand = m.chain[c]
	}
	if bestLen < minMatchLen {
		return 0, 0
	}
	return bestLen, bestDist
}

// matchLen returns how many bytes src[a:] and src[b:] (b > a) have in
// common, up to limit. Both indices address the same backing input array,
// so this works unmodified for the RLE case (distance==1 and smaller):
// src[b+n] is already present in the array regardless of how small
// b-a is, there being no separate "not yet produced" region at encode time.
func matchLen(src []byte, a, b, limit int) int {
	n := 0
	for n+4 <= limit {
		if binary.LittleEndian.Uint32(src[a+n:]) != binary.LittleEndian.Uint32(src[b+n:]) {
			break
		}
		n += 4
	}
	for n < limit && src[a+n] == src[b+n] {
		n++
	}
	return n
}

// compress runs the greedy LZ77 parse described in §4.2: at each position,
// look up the best match via the hash chain; if it meets the minimum
// length, emit it and advance past it (inserting every covered position
// into the hash chain so later matches can reach into it); otherwise emit a
// literal and advance by one.
func compress(input []byte) []Symbol {
	syms := make([]Symbol, 0, len(input)/2+1)
	m := newMatcher(input)

	pos := 0
	for pos < len(input) {
		length, distance := m.findMatch(pos)
		if length >= minMatchLen {
			syms = append(syms, Symbol{Kind: SymMatch, Length: uint32(length), Distance: uint32(distance)})
			end := pos + length
			for ; pos < end; pos++ {
				m.insert(pos)
			}
			continue
		}
		syms = append(syms, Symbol{Kind: SymLiteral, Literal: input[pos]})
		m.insert(pos)
		pos++
	}
	syms = append(syms, Symbol{Kind: SymEndOfBlock})
	return syms
}
