// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"encoding/binary"
	"hash"
	"hash/adler32"
	"io"

	"github.com/zflate/zflate/compress/flate"
)

// Writer is an io.WriteCloser: writes are DEFLATE-compressed and framed
// with the fixed 2-byte zlib header and big-endian ADLER-32 footer RFC
// 1950 specifies.
type Writer struct {
	w           io.Writer
	compressor  *flate.Writer
	digest      hash.Hash32
	wroteHeader bool
	closed      bool
	err         error
}

// NewWriter returns a Writer at flate.DefaultCompression writing zlib
// data to w.
func NewWriter(w io.Writer) *Writer {
	return NewWriterLevel(w, flate.DefaultCompression)
}

// NewWriterLevel is like NewWriter but specifies the compression level.
func NewWriterLevel(w io.Writer, level int) *Writer {
	return &Writer{w: w, compressor: flate.NewWriter(w, level), digest: adler32.New()}
}

func (z *Writer) Write(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if !z.wroteHeader {
		z.wroteHeader = true
		if _, err := z.w.Write([]byte{zlibCMF, zlibFLG}); err != nil {
			z.err = err
			return 0, err
		}
	}
	z.digest.Write(p)
	n, err := z.compressor.Write(p)
	z.err = err
	return n, err
}

// Reset discards z's state and reconfigures it to write to w.
func (z *Writer) Reset(w io.Writer) {
	z.w = w
	z.compressor.Reset(w)
	z.digest = adler32.New()
	z.wroteHeader = false
	z.closed = false
	z.err = nil
}

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

// Close flushes and writes the big-endian ADLER-32 footer. It does not
// close the underlying writer.
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
	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], z.digest.Sum32())
	_, err := z.w.Write(footer[:])
	z.err = err
	return err
}
