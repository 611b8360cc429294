// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package zlib implements reading and writing of RFC 1950 zlib streams on
// top of this module's DEFLATE codec.
package zlib

import "errors"

const (
	// zlibCMF is CM=8 (deflate), CINFO=7 (32KiB window), the only window
	// size this codec's SlidingWindow supports.
	zlibCMF = 0x78
	// zlibFLG is the default-level FLG byte with FDICT unset. Combined
	// with zlibCMF, (CMF<<8|FLG) is a multiple of 31 as RFC 1950 requires.
	zlibFLG = 0x9c
)

var (
	// ErrBadHeader reports a stream that fails the zlib CMF/FLG check.
	ErrBadHeader = errors.New("zlib: invalid header")
	// ErrBadFooter reports an ADLER-32 mismatch at end of stream.
	ErrBadFooter = errors.New("zlib: invalid checksum")
	// ErrDictionary reports a header requesting FDICT, which this package
	// does not support.
	ErrDictionary = errors.New("zlib: preset dictionaries are not supported")
)
