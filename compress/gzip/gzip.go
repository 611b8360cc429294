// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package gzip implements reading and writing of RFC 1952 gzip files on
// top of this module's DEFLATE codec.
package gzip

import "errors"

// gzip magic and fixed header fields. The encoder always emits the same
// 10-byte header the wire format allows to omit: no FEXTRA, FNAME,
// FCOMMENT, or FHCRC.
const (
	gzipID1     = 0x1f
	gzipID2     = 0x8b
	gzipDeflate = 8

	flagText    = 1 << 0
	flagHCRC    = 1 << 1
	flagExtra   = 1 << 2
	flagName    = 1 << 3
	flagComment = 1 << 4
)

var (
	// ErrBadHeader reports a stream that does not begin with a valid gzip
	// magic and compression method.
	ErrBadHeader = errors.New("gzip: invalid header")
	// ErrBadFooter reports a CRC-32 or ISIZE mismatch at end of stream.
	ErrBadFooter = errors.New("gzip: invalid checksum")
)
