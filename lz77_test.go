package deflate

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decodeSymbols(t interface{ Fatalf(string, ...interface{}) }, syms []Symbol) []byte {
	var out []byte
	for _, s := range syms {
		switch s.Kind {
		case SymLiteral:
			out = append(out, s.Literal)
		case SymMatch:
			if int(s.Distance) > len(out) {
				t.Fatalf("match distance %d exceeds produced output length %d", s.Distance, len(out))
			}
			start := len(out) - int(s.Distance)
			for i := uint32(0); i < s.Length; i++ {
				out = append(out, out[start+int(i)])
			}
		case SymEndOfBlock:
			return out
		}
	}
	return out
}

func TestCompressReconstructsInput(t *testing.T) {
	inputs := [][]byte{
		nil,
		[]byte("a"),
		[]byte("abababababababab"),
		bytes.Repeat([]byte("mississippi"), 100),
		bytes.Repeat([]byte{0}, 5000),
	}
	for _, in := range inputs {
		syms := compress(in)
		if len(syms) == 0 || syms[len(syms)-1].Kind != SymEndOfBlock {
			t.Fatalf("compress(%q): last symbol is not SymEndOfBlock", in)
		}
		got := decodeSymbols(t, syms)
		if !bytes.Equal(got, in) {
			t.Fatalf("compress(%q) round trip mismatch: got %q", in, got)
		}
	}
}

func TestCompressFindsLongRepeats(t *testing.T) {
	in := append([]byte("prefix-"), bytes.Repeat([]byte{'x'}, 1000)...)
	syms := compress(in)

	var matched int
	for _, s := range syms {
		if s.Kind == SymMatch {
			matched += int(s.Length)
		}
	}
	if matched < 900 {
		t.Fatalf("expected most of the repeated run to be matched, got %d bytes matched", matched)
	}
}

func TestCompressMatchesSeedScenario(t *testing.T) {
	// spec.md §8 seed scenario 6: "ABABABABABAB" parses as two literals
	// followed by one long back-reference, not a string of short ones.
	got := compress([]byte("ABABABABABAB"))
	want := []Symbol{
		{Kind: SymLiteral, Literal: 'A'},
		{Kind: SymLiteral, Literal: 'B'},
		{Kind: SymMatch, Length: 10, Distance: 2},
		{Kind: SymEndOfBlock},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("compress(\"ABABABABABAB\") mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchLenAgreesWithBruteForce(t *testing.T) {
	src := []byte("abcabcabcabcxyzxyzabcabc")
	for a := 0; a < len(src); a++ {
		for b := a + 1; b < len(src); b++ {
			limit := len(src) - b
			got := matchLen(src, a, b, limit)

			want := 0
			for want < limit && src[a+want] == src[b+want] {
				want++
			}
			if got != want {
				t.Fatalf("matchLen(%d,%d,%d) = %d, want %d", a, b, limit, got, want)
			}
		}
	}
}
