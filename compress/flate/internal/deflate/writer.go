// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package deflate implements RFC 1951 DEFLATE compression.
package deflate

import "io"

// Writer dispatches to whichever LevelCompressor implements the requested
// compression level: stored-only, Huffman-only, or the full hash-chain
// LZ77 + Huffman tokenizer.
type Writer struct {
	lc LevelCompressor
}

// NewWriter creates a DEFLATE compressor for the given level. Level must be
// NoCompression, HuffmanOnly, DefaultCompression, or 4..9; levels above 9
// run as 9, and any other value (1..3 or another negative) runs as 4.
func NewWriter(under io.Writer, level int) *Writer {
	return &Writer{lc: newLevelCompressor(under, level)}
}

func newLevelCompressor(under io.Writer, level int) LevelCompressor {
	switch {
	case level == DefaultCompression:
		return NewCompressor(under, 6)
	case level == HuffmanOnly:
		return newHuffmanOnly(under)
	case level == NoCompression:
		return newStoredCompressor(under)
	case level < 4:
		return NewCompressor(under, 4)
	case level > 9:
		return NewCompressor(under, 9)
	default:
		return NewCompressor(under, level)
	}
}

func (w *Writer) Write(p []byte) (int, error) {
	return w.lc.Write(p)
}

func (w *Writer) Reset(under io.Writer) {
	w.lc.Reset(under)
}

func (w *Writer) Flush() error {
	return w.lc.Flush()
}

func (w *Writer) Close() error {
	return w.lc.Close()
}
