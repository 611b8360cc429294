// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"io"

	"github.com/zflate/zflate/compress/flate/internal/deflate"
)

// Compression level constants.
const (
	NoCompression      = deflate.NoCompression
	BestSpeed          = deflate.BestSpeed
	BestCompression    = deflate.BestCompression
	DefaultCompression = deflate.DefaultCompression
	HuffmanOnly        = deflate.HuffmanOnly
)

// Writer compresses data written to it and writes the DEFLATE stream to
// an underlying io.Writer.
type Writer = deflate.Writer

// NewWriter creates a new DEFLATE compressor at the given level, writing
// to under. Level may be NoCompression, HuffmanOnly, DefaultCompression,
// or 4..9; levels above 9 run as 9, and any other value (1..3 or another
// negative) runs as 4.
func NewWriter(under io.Writer, level int) *Writer {
	return deflate.NewWriter(under, level)
}
