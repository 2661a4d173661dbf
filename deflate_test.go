package deflate

import (
	"bytes"
	"io"
	"testing"

	"github.com/gocompress/deflate/internal/testutil"
)

func roundTrip(t *testing.T, input []byte) []byte {
	var buf bytes.Buffer
	zw := NewWriter(&buf)
	n, err := zw.Write(input)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != len(input) {
		t.Fatalf("Write count = %d, want %d", n, len(input))
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A canary byte after the compressed stream must survive untouched:
	// the reader must stop exactly at EndOfBlock and never overread.
	buf.WriteByte(0x7a)

	zr := NewReader(&buf)
	output, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(output, input) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d bytes", len(output), len(input))
	}

	if c, err := buf.ReadByte(); err != nil || c != 0x7a {
		t.Fatalf("canary byte lost: c=%x err=%v", c, err)
	}
	return output
}

func TestRoundTrip(t *testing.T) {
	tests := map[string][]byte{
		"empty":            nil,
		"single byte":      []byte("x"),
		"short literal":    []byte("hello, deflate"),
		"all same byte":    bytes.Repeat([]byte{'a'}, 10000),
		"repeating phrase": bytes.Repeat([]byte("the quick brown fox "), 2000),
		"two-byte period":  bytes.Repeat([]byte("ab"), 50000),
		"exact max match":  append([]byte{'z'}, bytes.Repeat([]byte{'y'}, 258)...),
		"past window size": append(bytes.Repeat([]byte{'q'}, 40000), []byte("qqqqqqqqqq")...),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) { roundTrip(t, data) })
	}
}

func TestRoundTripPseudoRandom(t *testing.T) {
	// An AES-keystream fill is incompressible and exercises the
	// literal-heavy path: no match will ever reach minMatchLen by chance.
	data := testutil.NewRand(1).Bytes(20000)
	roundTrip(t, data)
}

func TestRoundTripResizedCorpus(t *testing.T) {
	seed := []byte("The quick brown fox jumps over the lazy dog.")
	for _, n := range []int{0, 1, len(seed), 10000, 70000} {
		data := testutil.ResizeData(seed, n)
		roundTrip(t, data)
	}
}

func TestDynamicBlockUnsupported(t *testing.T) {
	// BFINAL=1, BTYPE=2 (dynamic), each field read LSB-first: bit0 =
	// BFINAL, bits1-2 = BTYPE with its low bit read first. Byte = 0x05.
	zr := NewReader(bytes.NewReader([]byte{0x05}))
	_, err := io.ReadAll(zr)
	if err != ErrUnsupported {
		t.Fatalf("error = %v, want ErrUnsupported", err)
	}
}

func TestReservedBlockTypeRejected(t *testing.T) {
	// BFINAL=1, BTYPE=3 (reserved), same LSB-first packing as above: 0x07.
	zr := NewReader(bytes.NewReader([]byte{0x07}))
	_, err := io.ReadAll(zr)
	if err != ErrInvalidBlockHeader {
		t.Fatalf("error = %v, want ErrInvalidBlockHeader", err)
	}
}

func TestStoredBlockLenMismatchRejected(t *testing.T) {
	// BFINAL=1, BTYPE=00 (stored): byte = 1. Then LEN=5, NLEN=5 (should be
	// the one's complement of LEN, so this is invalid).
	data := []byte{0x01, 5, 0, 5, 0, 'h', 'e', 'l', 'l', 'o'}
	zr := NewReader(bytes.NewReader(data))
	_, err := io.ReadAll(zr)
	if err != ErrInvalidBlockHeader {
		t.Fatalf("error = %v, want ErrInvalidBlockHeader", err)
	}
}

func TestStoredBlockRoundTrip(t *testing.T) {
	// BFINAL=1, BTYPE=00, then LEN=5, NLEN=^LEN, then 5 raw bytes.
	payload := []byte("hello")
	data := []byte{0x01, 5, 0, 0xfa, 0xff}
	data = append(data, payload...)

	zr := NewReader(bytes.NewReader(data))
	got, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestTruncatedStreamReportsUnexpectedEOF(t *testing.T) {
	var buf bytes.Buffer
	zw := NewWriter(&buf)
	if _, err := zw.Write([]byte("a reasonably long literal stream of text")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	truncated := buf.Bytes()[:buf.Len()-2]

	zr := NewReader(bytes.NewReader(truncated))
	if _, err := io.ReadAll(zr); err != io.ErrUnexpectedEOF {
		t.Fatalf("error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestUnderlyingReadErrorPropagates(t *testing.T) {
	var buf bytes.Buffer
	zw := NewWriter(&buf)
	if _, err := zw.Write(bytes.Repeat([]byte("propagate me "), 200)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	wantErr := Error("synthetic I/O failure")
	br := &testutil.BuggyReader{R: bytes.NewReader(buf.Bytes()), N: 3, Err: wantErr}
	zr := NewReader(br)
	if _, err := io.ReadAll(zr); err != wantErr {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
}

func TestInvalidBackReferenceRejected(t *testing.T) {
	var bw bitWriter
	bw.WriteBits(1, 1) // BFINAL
	bw.WriteBits(1, 2) // BTYPE = 01

	// A length/distance pair whose distance exceeds any history produced
	// so far: one literal byte of history, then a copy claiming distance 5.
	bw.WriteSymbol(&fixedLitEnc, 'a')
	lc := lenRanges.Symbol(10)
	bw.WriteSymbol(&fixedLitEnc, uint32(257+lc))
	bw.WriteOffset(lenRanges[lc], 10)
	dc := distRanges.Symbol(5)
	bw.WriteSymbol(&fixedDistEnc, uint32(dc))
	bw.WriteOffset(distRanges[dc], 5)
	bw.WriteSymbol(&fixedLitEnc, endBlockSym)

	zr := NewReader(bytes.NewReader(bw.Flush()))
	if _, err := io.ReadAll(zr); err != ErrInvalidBackReference {
		t.Fatalf("error = %v, want ErrInvalidBackReference", err)
	}
}
