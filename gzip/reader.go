package gzip

import (
	"bytes"
	"io"

	"github.com/gocompress/deflate"
	"github.com/gocompress/deflate/internal/crc32"
)

// Reader decodes a single gzip member: it validates the header up front,
// decompresses the DEFLATE payload through deflate.Reader, and checks the
// trailer's CRC-32/ISIZE once the payload is exhausted.
//
// Unlike deflate.Reader, this Reader resolves everything eagerly in
// NewReader rather than lazily on the first Read: the trailer lives past
// the end of the DEFLATE stream, so there is no way to validate it without
// first running the payload to completion, and gzip members are small
// enough in this module's scope that buffering the decoded result is the
// simplest correct approach (the streaming deflate.Reader it wraps is
// still used to actually do the decompression).
type Reader struct {
	buf *bytes.Reader
}

// NewReader reads and validates an entire gzip member from r, decompressing
// its payload immediately.
func NewReader(r io.Reader) (*Reader, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, ErrHeaderMismatch
	}
	if header[0] != magic1 || header[1] != magic2 || header[2] != cmDeflate {
		return nil, ErrHeaderMismatch
	}
	if header[3] != 0 {
		// FLG bits beyond what this module ever writes (FEXTRA, FNAME,
		// FCOMMENT, FHCRC) would require skipping optional fields this
		// wrapper does not parse.
		return nil, ErrHeaderMismatch
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(rest) < trailerSize {
		return nil, ErrHeaderMismatch
	}
	payload, trailer := rest[:len(rest)-trailerSize], rest[len(rest)-trailerSize:]

	dr := deflate.NewReader(bytes.NewReader(payload))
	decoded, err := io.ReadAll(dr)
	if err != nil {
		return nil, err
	}

	wantCRC := getUint32LE(trailer[0:4])
	wantLen := getUint32LE(trailer[4:8])
	if crc32.Checksum(decoded) != wantCRC || uint32(len(decoded)) != wantLen {
		return nil, ErrTrailerMismatch
	}

	return &Reader{buf: bytes.NewReader(decoded)}, nil
}

func (zr *Reader) Read(p []byte) (int, error) {
	return zr.buf.Read(p)
}

func getUint32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
