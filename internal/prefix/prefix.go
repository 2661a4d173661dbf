// Package prefix implements the canonical-prefix-code machinery shared by
// the deflate block coder: turning a symbol alphabet plus either explicit
// bit-lengths or observed frequencies into a canonical Huffman code, and
// turning a (base, extra-bits) range table into concrete values.
//
// The deflate package used to carry its own private copy of this logic (one
// per block type, inlined for speed). It is centralized here instead, since
// nothing in this module needs the per-package duplication that a
// multi-format compression suite would.
package prefix

import (
	"container/heap"
	"errors"
	"sort"

	"github.com/gocompress/deflate/internal"
)

// ErrInvalid reports a code table that cannot be represented as a valid
// canonical prefix code (over- or under-subscribed, or too many bits).
var ErrInvalid = errors.New("prefix: invalid code table")

// PrefixCode associates a symbol with a frequency count, and eventually with
// a bit-length and a canonical code value once Generate{Lengths,Prefixes}
// have run.
type PrefixCode struct {
	Sym uint32 // The symbol being mapped
	Val uint32 // Value of the prefix code (valid once GeneratePrefixes has run)
	Len uint32 // Bit-length of the prefix code (0 means "unused")
	Cnt uint32 // Frequency count (input to GenerateLengths)
}

// PrefixCodes is a list of PrefixCode, typically one entry per symbol in an
// alphabet.
type PrefixCodes []PrefixCode

func (pc PrefixCodes) Len() int      { return len(pc) }
func (pc PrefixCodes) Swap(i, j int) { pc[i], pc[j] = pc[j], pc[i] }

// SortBySymbol sorts the codes by ascending symbol value. GeneratePrefixes
// requires this order.
func (pc PrefixCodes) SortBySymbol() { sort.Sort(bySymbol(pc)) }

type bySymbol PrefixCodes

func (pc bySymbol) Len() int      { return len(pc) }
func (pc bySymbol) Swap(i, j int) { pc[i], pc[j] = pc[j], pc[i] }
func (pc bySymbol) Less(i, j int) bool {
	return pc[i].Sym < pc[j].Sym
}

// SortByCount sorts the codes by ascending frequency count, breaking ties by
// ascending symbol value. GenerateLengths requires this order.
func (pc PrefixCodes) SortByCount() { sort.Sort(byCount(pc)) }

type byCount PrefixCodes

func (pc byCount) Len() int      { return len(pc) }
func (pc byCount) Swap(i, j int) { pc[i], pc[j] = pc[j], pc[i] }
func (pc byCount) Less(i, j int) bool {
	if pc[i].Cnt != pc[j].Cnt {
		return pc[i].Cnt < pc[j].Cnt
	}
	return pc[i].Sym < pc[j].Sym
}

// huffNode is a node of the merge tree used by GenerateLengths. Leaves carry
// a symbol index into the input codes; internal nodes only carry a combined
// weight and a sequence number that breaks ties in insertion order.
type huffNode struct {
	weight uint64
	seq    uint32 // tie-break for internal nodes; monotonically increasing
	sym    int32  // index into codes, or -1 for an internal node
	depth  uint32
}

type huffHeap []*huffNode

func (h huffHeap) Len() int { return len(h) }
func (h huffHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].seq < h[j].seq
}
func (h huffHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *huffHeap) Push(x interface{}) { *h = append(*h, x.(*huffNode)) }
func (h *huffHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// GenerateLengths computes a bit-length for every code with a non-zero Cnt,
// using the classic two-lowest-frequency merge algorithm, and writes the
// result into each code's Len field. codes must already be sorted by
// SortByCount. maxBits bounds the longest permitted code; if the natural
// tree depth overflows it, lengths are iteratively flattened until the Kraft
// inequality is satisfied again.
//
// Codes with Cnt == 0 are left with Len == 0 (unused, not part of the
// alphabet actually transmitted).
func GenerateLengths(codes PrefixCodes, maxBits uint) error {
	var used []int
	for i, c := range codes {
		if c.Cnt > 0 {
			used = append(used, i)
			codes[i].Len = 0
		}
	}
	if len(used) == 0 {
		return nil
	}
	if len(used) == 1 {
		codes[used[0]].Len = 1
		return nil
	}

	h := make(huffHeap, 0, len(used))
	var seq uint32
	nodes := make([]*huffNode, 0, 2*len(used))
	for _, i := range used {
		n := &huffNode{weight: uint64(codes[i].Cnt), sym: int32(i), seq: seq}
		seq++
		h = append(h, n)
		nodes = append(nodes, n)
	}
	heap.Init(&h)

	// Track children so depths can be propagated after all merges finish.
	left := make(map[*huffNode]*huffNode)
	right := make(map[*huffNode]*huffNode)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*huffNode)
		b := heap.Pop(&h).(*huffNode)
		parent := &huffNode{weight: a.weight + b.weight, sym: -1, seq: seq}
		seq++
		left[parent] = a
		right[parent] = b
		heap.Push(&h, parent)
	}
	root := h[0]

	var assign func(n *huffNode, depth uint32)
	assign = func(n *huffNode, depth uint32) {
		if n.sym >= 0 {
			codes[n.sym].Len = depth
			return
		}
		assign(left[n], depth+1)
		assign(right[n], depth+1)
	}
	assign(root, 0)

	return limitLengths(codes, used, maxBits)
}

// limitLengths flattens any code lengths that exceed maxBits, following the
// standard approach of clamping the overlong codes down to maxBits and then
// repaying the Kraft budget they overspent by lengthening currently-short
// codes until the inequality holds again.
//
// Every unit below is measured at a fixed scale of 2^-maxBits: a code of
// length l <= maxBits costs 2^(maxBits-l) units, and the total budget is
// 2^maxBits units (Kraft's inequality restated as an integer sum). Clamping
// a code from its natural length down to maxBits raises its cost from a
// fractional amount (too small to matter once clamped) to a full unit,
// which is exactly the accounting the loop below reverses.
func limitLengths(codes PrefixCodes, used []int, maxBits uint) error {
	var maxLen uint32
	for _, i := range used {
		if codes[i].Len > maxLen {
			maxLen = codes[i].Len
		}
	}
	if maxLen <= uint32(maxBits) {
		return nil
	}
	if uint64(len(used)) > uint64(1)<<maxBits {
		return ErrInvalid
	}

	// Histogram of bit-lengths, with anything past maxBits already clamped.
	var counts [64]uint32
	for _, i := range used {
		l := codes[i].Len
		if l > uint32(maxBits) {
			l = uint32(maxBits)
		}
		counts[l]++
	}

	budget := uint64(1) << maxBits
	var total uint64
	for l := uint32(1); l <= uint32(maxBits); l++ {
		total += uint64(counts[l]) << (uint32(maxBits) - l)
	}

	// Repay the overage a length-class at a time: promoting every movable
	// code at length l to l+1 halves each one's cost, freeing
	// 2^(maxBits-l-1) units per code.
	for l := uint32(1); l < uint32(maxBits) && total > budget; l++ {
		if counts[l] == 0 {
			continue
		}
		unit := uint64(1) << (uint32(maxBits) - l - 1)
		need := (total - budget + unit - 1) / unit
		if need > uint64(counts[l]) {
			need = uint64(counts[l])
		}
		counts[l] -= uint32(need)
		counts[l+1] += uint32(need)
		total -= need * unit
	}
	if total > budget {
		return ErrInvalid
	}

	// Re-derive a length assignment consistent with the adjusted histogram:
	// codes keep their relative order (by original length, then by index,
	// which SortByCount already made (count,sym)-monotonic) and are handed
	// out lengths shortest-first.
	sortedByLen := append([]int(nil), used...)
	sort.SliceStable(sortedByLen, func(a, b int) bool {
		return codes[sortedByLen[a]].Len < codes[sortedByLen[b]].Len
	})
	idx := 0
	for l := uint32(1); l <= uint32(maxBits); l++ {
		for c := uint32(0); c < counts[l]; c++ {
			codes[sortedByLen[idx]].Len = l
			idx++
		}
	}
	return nil
}

// GeneratePrefixes assigns canonical code values to every code with a
// non-zero Len, following RFC 1951 §3.2.2: sort by (length, symbol), then
// walk the list assigning consecutive values within each length and
// left-shifting between lengths. codes must already be sorted by
// SortBySymbol; the values are written back in place.
//
// The assigned Val is stored bit-reversed relative to the textbook
// numbering, so that writing it out least-significant-bit-first produces the
// same on-wire bit order as writing the textbook value most-significant-bit
// first. This lets the bit writer use a single LSB-first WriteBits path for
// both literal fields and prefix codes.
func GeneratePrefixes(codes PrefixCodes) error {
	type entry struct {
		idx int
		len uint32
	}
	var entries []entry
	for i, c := range codes {
		if c.Len > 0 {
			entries = append(entries, entry{i, c.Len})
		}
	}
	sort.Slice(entries, func(a, b int) bool {
		if entries[a].len != entries[b].len {
			return entries[a].len < entries[b].len
		}
		return codes[entries[a].idx].Sym < codes[entries[b].idx].Sym
	})

	var code uint32
	var prevLen uint32
	for _, e := range entries {
		code <<= e.len - prevLen
		prevLen = e.len
		codes[e.idx].Val = reverseBitsN(code, e.len)
		code++
	}
	return nil
}

// reverseBitsN reverses the lower n bits of v.
func reverseBitsN(v uint32, n uint32) uint32 {
	return internal.ReverseUint32N(v, uint(n))
}

// RangeCode maps a symbol to a base value plus a count of extra bits that
// follow it on the wire; the decoded value is Base + the extra bits read as
// an unsigned integer. Used for the length and distance alphabets (RFC 1951
// §3.2.5).
type RangeCode struct {
	Base uint32
	Bits uint32
}

// End reports the exclusive upper bound of the range (Base of the next
// code, if contiguous).
func (rc RangeCode) End() uint32 { return rc.Base + 1<<rc.Bits }

// RangeCodes is an ordered list of RangeCode, indexed by symbol.
type RangeCodes []RangeCode

// Base reports the base value of the first range.
func (rcs RangeCodes) Base() uint32 { return rcs[0].Base }

// End reports the exclusive upper bound covered by the last range.
func (rcs RangeCodes) End() uint32 { return rcs[len(rcs)-1].End() }

// MakeRangeCodes builds consecutive RangeCodes starting at base, one per
// entry in bits, where bits[i] is the number of extra bits for symbol i.
func MakeRangeCodes(base uint32, bits []uint) RangeCodes {
	rcs := make(RangeCodes, len(bits))
	for i, nb := range bits {
		rcs[i] = RangeCode{Base: base, Bits: uint32(nb)}
		base += 1 << nb
	}
	return rcs
}

// Symbol reports the index of the range that contains value, assuming the
// ranges are contiguous and ascending (true for both the length and
// distance tables). It is the inverse of evaluating a RangeCode.
func (rcs RangeCodes) Symbol(value uint32) int {
	lo, hi := 0, len(rcs)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if rcs[mid].Base <= value {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
