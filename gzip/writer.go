package gzip

import (
	"bytes"
	"io"

	"github.com/gocompress/deflate"
	"github.com/gocompress/deflate/internal/crc32"
)

// Writer produces a single gzip member: the RFC 1952 header, a DEFLATE
// payload, and the CRC-32/ISIZE trailer. Like deflate.Writer, it buffers
// everything written and does the actual work in Close.
type Writer struct {
	w      io.Writer
	buf    bytes.Buffer
	crc    uint32
	length uint32
	err    error
}

// NewWriter returns a Writer that writes a gzip member to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (zw *Writer) Write(p []byte) (int, error) {
	if zw.err != nil {
		return 0, zw.err
	}
	zw.crc = crc32.Update(zw.crc, p)
	zw.length += uint32(len(p))
	return zw.buf.Write(p)
}

// Close compresses everything written so far and flushes the complete gzip
// member (header, payload, trailer) to the underlying writer.
func (zw *Writer) Close() error {
	if zw.err != nil {
		return zw.err
	}

	header := []byte{
		magic1, magic2,
		cmDeflate,
		flags,
		0, 0, 0, 0, // MTIME, left as 0 (acceptable per RFC 1952 §2.3.1)
		0,    // XFL
		0xff, // OS: unknown
	}
	if _, err := zw.w.Write(header); err != nil {
		zw.err = err
		return err
	}

	dw := deflate.NewWriter(zw.w)
	if _, err := dw.Write(zw.buf.Bytes()); err != nil {
		zw.err = err
		return err
	}
	if err := dw.Close(); err != nil {
		zw.err = err
		return err
	}

	trailer := make([]byte, trailerSize)
	putUint32LE(trailer[0:4], zw.crc)
	putUint32LE(trailer[4:8], zw.length)
	if _, err := zw.w.Write(trailer); err != nil {
		zw.err = err
		return err
	}

	zw.err = io.ErrClosedPipe
	return nil
}

func putUint32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
