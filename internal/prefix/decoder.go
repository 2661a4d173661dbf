package prefix

import "math"

// Decoding uses a two-level lookup table, as in the original dsnet/compress
// design: a dense "chunks" table keyed by the low chunkBits of the bit
// buffer resolves most codes in one step, and a sparse "links" table
// handles the rare codes whose length exceeds chunkBits.
const (
	countBits = 4
	countMask = (1 << countBits) - 1

	maxChunkBits = 9 // Tunable; bounds the size of the dense table.
	maxBits      = 15
)

// Decoder is a canonical-prefix decode table built from a PrefixCodes list.
type Decoder struct {
	chunks    []uint16
	links     [][]uint16
	chunkMask uint32
	linkMask  uint32
	numSyms   uint32
	chunkBits uint32
	minBits   uint32
}

// MinBits reports the shortest code length in the table; callers should
// never attempt a lookup with fewer bits buffered than this.
func (pd *Decoder) MinBits() uint32 { return pd.minBits }

// ChunkBits reports the width of the dense first-level table.
func (pd *Decoder) ChunkBits() uint32 { return pd.chunkBits }

// Init builds the decode table from codes, which must have Len (and,
// implicitly via GeneratePrefixes, Val) already populated for every symbol
// that participates in the alphabet. Codes with Len == 0 are ignored.
func (pd *Decoder) Init(codes PrefixCodes) {
	var used PrefixCodes
	for _, c := range codes {
		if c.Len > 0 {
			used = append(used, c)
		}
	}

	switch len(used) {
	case 0:
		*pd = Decoder{}
		return
	case 1:
		*pd = Decoder{
			chunks:    []uint16{uint16(used[0].Sym)<<countBits | 1},
			numSyms:   1,
			minBits:   1,
			chunkBits: 1,
		}
		return
	}

	var minBits, maxLen uint32 = math.MaxUint32, 0
	for _, c := range used {
		if c.Len < minBits {
			minBits = c.Len
		}
		if c.Len > maxLen {
			maxLen = c.Len
		}
	}

	pd.numSyms = uint32(len(used))
	pd.minBits = minBits
	pd.chunkBits = maxLen
	if pd.chunkBits > maxChunkBits {
		pd.chunkBits = maxChunkBits
	}
	numChunks := 1 << pd.chunkBits
	pd.chunks = make([]uint16, numChunks)
	pd.chunkMask = uint32(numChunks - 1)

	pd.links = nil
	pd.linkMask = 0
	if pd.chunkBits < maxLen {
		numLinks := 1 << (maxLen - pd.chunkBits)
		pd.linkMask = uint32(numLinks - 1)

		// Allocate one link table per distinct low-chunkBits prefix that is
		// shared by a long code; Val is already bit-reversed (LSB-first), so
		// the low chunkBits of Val select the link table.
		seen := make(map[uint32]int)
		for _, c := range used {
			if c.Len <= pd.chunkBits {
				continue
			}
			prefix := c.Val & pd.chunkMask
			if _, ok := seen[prefix]; ok {
				continue
			}
			linkIdx := len(pd.links)
			seen[prefix] = linkIdx
			pd.links = append(pd.links, make([]uint16, numLinks))
			pd.chunks[prefix] = uint16(linkIdx<<countBits) | uint16(pd.chunkBits+1)
		}
	}

	for _, c := range used {
		chunk := uint16(c.Sym)<<countBits | uint16(c.Len)
		if c.Len <= pd.chunkBits {
			skip := 1 << c.Len
			for i := int(c.Val); i < len(pd.chunks); i += skip {
				pd.chunks[i] = chunk
			}
			continue
		}
		linkIdx := pd.chunks[c.Val&pd.chunkMask] >> countBits
		links := pd.links[linkIdx]
		skip := 1 << (c.Len - pd.chunkBits)
		for i := int(c.Val >> pd.chunkBits); i < len(links); i += skip {
			links[i] = chunk
		}
	}
}

// Lookup decodes one symbol from the low bits of peek, given that avail bits
// are actually valid in peek. It returns ok == false if avail is too small
// to resolve the code (the caller must feed more bits and retry); it never
// returns ok == false once avail >= maxBits.
func (pd *Decoder) Lookup(peek uint64, avail uint32) (sym uint32, nb uint32, ok bool) {
	if avail < pd.minBits || len(pd.chunks) == 0 {
		return 0, 0, false
	}
	chunk := pd.chunks[uint32(peek)&pd.chunkMask]
	nb = uint32(chunk) & countMask
	if nb > pd.chunkBits {
		if avail < pd.chunkBits {
			return 0, 0, false
		}
		linkIdx := uint32(chunk) >> countBits
		chunk = pd.links[linkIdx][(uint32(peek)>>pd.chunkBits)&pd.linkMask]
		nb = uint32(chunk) & countMask
	}
	if nb > avail {
		return 0, 0, false
	}
	return uint32(chunk) >> countBits, nb, true
}
