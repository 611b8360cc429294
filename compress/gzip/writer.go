// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/zflate/zflate/compress/flate"
)

// Writer is an io.WriteCloser: writes are DEFLATE-compressed and framed
// with the fixed 10-byte gzip header this package always emits, per RFC
// 1952 section 2.3 with every optional flag left unset.
type Writer struct {
	w           io.Writer
	level       int
	compressor  *flate.Writer
	digest      uint32
	size        uint32
	wroteHeader bool
	closed      bool
	err         error
}

// NewWriter returns a Writer at flate.DefaultCompression writing gzip data
// to w.
func NewWriter(w io.Writer) *Writer {
	return NewWriterLevel(w, flate.DefaultCompression)
}

// NewWriterLevel is like NewWriter but specifies the compression level.
func NewWriterLevel(w io.Writer, level int) *Writer {
	return &Writer{w: w, level: level, compressor: flate.NewWriter(w, level)}
}

func (z *Writer) writeHeader() error {
	var hdr [10]byte
	hdr[0] = gzipID1
	hdr[1] = gzipID2
	hdr[2] = gzipDeflate
	hdr[3] = 0 // FLG: no optional fields
	binary.LittleEndian.PutUint32(hdr[4:8], 0)
	hdr[8] = 0 // XFL
	hdr[9] = 3 // OS: unix, matching the fixed byte sequence this format uses
	_, err := z.w.Write(hdr[:])
	return err
}

// Write compresses p and writes it to the underlying writer, emitting the
// gzip header first if this is the first call.
func (z *Writer) Write(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if !z.wroteHeader {
		z.wroteHeader = true
		if z.err = z.writeHeader(); z.err != nil {
			return 0, z.err
		}
	}
	z.size += uint32(len(p))
	z.digest = crc32.Update(z.digest, crc32.IEEETable, p)
	n, err := z.compressor.Write(p)
	z.err = err
	return n, err
}

// Reset discards z's state and reconfigures it to write to w, as if newly
// constructed with the same level.
func (z *Writer) Reset(w io.Writer) {
	z.w = w
	z.compressor.Reset(w)
	z.digest = 0
	z.size = 0
	z.wroteHeader = false
	z.closed = false
	z.err = nil
}

// Flush flushes any pending compressed data without closing the stream.
func (z *Writer) Flush() error {
	if z.err != nil {
		return z.err
	}
	if !z.wroteHeader {
		if _, err := z.Write(nil); err != nil {
			return err
		}
	}
	z.err = z.compressor.Flush()
	return z.err
}

// Close flushes and writes the CRC-32/ISIZE footer. It does not close the
// underlying writer.
func (z *Writer) Close() error {
	if z.err != nil {
		return z.err
	}
	if z.closed {
		return nil
	}
	z.closed = true
	if !z.wroteHeader {
		if _, err := z.Write(nil); err != nil {
			return err
		}
	}
	if err := z.compressor.Close(); err != nil {
		z.err = err
		return err
	}
	var footer [8]byte
	binary.LittleEndian.PutUint32(footer[:4], z.digest)
	binary.LittleEndian.PutUint32(footer[4:], z.size)
	_, err := z.w.Write(footer[:])
	z.err = err
	return err
}
