package deflate

import (
	"bytes"
	"io"
	"testing"

	kflate "github.com/klauspost/compress/flate"
)

// There is no decode-direction counterpart to the test below: a
// general-purpose encoder like klauspost's, run at its default compression
// level, emits dynamic-Huffman blocks (BTYPE=10) for compressible input,
// and this package's Reader deliberately reports those as ErrUnsupported
// rather than decoding them (dynamic-block decoding is out of scope). The
// encode direction below is the interop check that can actually exercise
// this package's wire format against an independent implementation.

// TestInteropEncodeDecodedByKlauspost checks the encode direction: a stream
// this package's Writer produces decodes cleanly under an independent
// implementation, which is the real test of RFC 1951 conformance (a
// self-consistent but non-conformant pair would pass the package's own
// round-trip tests without ever being decodable elsewhere).
func TestInteropEncodeDecodedByKlauspost(t *testing.T) {
	input := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200)

	var buf bytes.Buffer
	zw := NewWriter(&buf)
	if _, err := zw.Write(input); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	kr := kflate.NewReader(&buf)
	defer kr.Close()
	got, err := io.ReadAll(kr)
	if err != nil {
		t.Fatalf("klauspost's Reader failed on this package's output: %v", err)
	}
	if !bytes.Equal(got, input) {
		t.Fatalf("decoded output mismatch, got %d bytes want %d", len(got), len(input))
	}
}
