package crc32

import (
	"bytes"
	"testing"
)

func TestChecksumKnownVectors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want uint32
	}{
		{"empty", nil, 0},
		{"ascii digits", []byte("123456789"), 0xcbf43926},
		{"300 zero bytes", bytes.Repeat([]byte{0}, 300), 0x9d6cdf7e},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Checksum(tc.data); got != tc.want {
				t.Fatalf("Checksum(%s) = %#08x, want %#08x", tc.name, got, tc.want)
			}
		})
	}
}

func TestUpdateMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	want := Checksum(data)

	var got uint32
	for i := 0; i < len(data); i += 7 {
		end := i + 7
		if end > len(data) {
			end = len(data)
		}
		got = Update(got, data[i:end])
	}
	if got != want {
		t.Fatalf("chunked Update = %#08x, want %#08x", got, want)
	}
}
