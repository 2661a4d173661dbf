// Package gzip implements the thin RFC 1952 wrapper around this module's
// deflate package: a 10-byte header, a DEFLATE payload, and an 8-byte
// trailer carrying the CRC-32 and length of the uncompressed data.
package gzip

const (
	magic1 = 0x1f
	magic2 = 0x8b

	cmDeflate = 8

	headerSize  = 10
	trailerSize = 8
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "gzip: " + string(e) }

var (
	// ErrHeaderMismatch is returned when the magic bytes are wrong, CM is
	// not 8 (deflate), or the header is truncated.
	ErrHeaderMismatch error = Error("invalid gzip header")

	// ErrTrailerMismatch is returned when the trailer's CRC-32 or ISIZE
	// disagrees with what was actually decoded.
	ErrTrailerMismatch error = Error("gzip checksum or length mismatch")
)

// flags is the FLG byte this module always writes: no extra fields, name,
// comment, or header CRC, per RFC 1952 §2.3.1.
const flags = 0
