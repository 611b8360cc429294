// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/zflate/zflate/compress/flate"
)

// Reader is an io.ReadCloser decoding a single gzip member. It tolerates
// the optional FEXTRA/FNAME/FCOMMENT/FHCRC header fields even though this
// package's own Writer never emits them.
type Reader struct {
	r       *bufio.Reader
	decomp  io.ReadCloser
	digest  uint32
	size    uint32
	err     error
	trailer bool
}

// NewReader validates the gzip header and returns a Reader over the
// decompressed body.
func NewReader(r io.Reader) (*Reader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	z := &Reader{r: br}
	if err := z.readHeader(); err != nil {
		return nil, err
	}
	z.decomp = flate.NewReader(br)
	return z, nil
}

func (z *Reader) readHeader() error {
	var hdr [10]byte
	if _, err := io.ReadFull(z.r, hdr[:]); err != nil {
		return ErrBadHeader
	}
	if hdr[0] != gzipID1 || hdr[1] != gzipID2 || hdr[2] != gzipDeflate {
		return ErrBadHeader
	}
	flg := hdr[3]

	if flg&flagExtra != 0 {
		var xlenBuf [2]byte
		if _, err := io.ReadFull(z.r, xlenBuf[:]); err != nil {
			return ErrBadHeader
		}
		xlen := binary.LittleEndian.Uint16(xlenBuf[:])
		if _, err := io.CopyN(io.Discard, z.r, int64(xlen)); err != nil {
			return ErrBadHeader
		}
	}
	if flg&flagName != 0 {
		if err := skipNulTerminated(z.r); err != nil {
			return ErrBadHeader
		}
	}
	if flg&flagComment != 0 {
		if err := skipNulTerminated(z.r); err != nil {
			return ErrBadHeader
		}
	}
	if flg&flagHCRC != 0 {
		var crcBuf [2]byte
		if _, err := io.ReadFull(z.r, crcBuf[:]); err != nil {
			return ErrBadHeader
		}
	}
	return nil
}

func skipNulTerminated(r *bufio.Reader) error {
	for {
		b, err := r.ReadByte()
		if err != nil {
			return err
		}
		if b == 0 {
			return nil
		}
	}
}

// Read decompresses from the underlying reader, verifying the CRC-32 and
// ISIZE footer once the body is exhausted.
func (z *Reader) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	n, err := z.decomp.Read(p)
	z.digest = crc32.Update(z.digest, crc32.IEEETable, p[:n])
	z.size += uint32(n)
	if err == io.EOF {
		if ferr := z.readFooter(); ferr != nil {
			z.err = ferr
			return n, ferr
		}
		z.err = io.EOF
	} else if err != nil {
		z.err = err
	}
	return n, err
}

func (z *Reader) readFooter() error {
	if z.trailer {
		return nil
	}
	z.trailer = true
	var footer [8]byte
	if _, err := io.ReadFull(z.r, footer[:]); err != nil {
		return ErrBadFooter
	}
	wantCRC := binary.LittleEndian.Uint32(footer[:4])
	wantSize := binary.LittleEndian.Uint32(footer[4:])
	if wantCRC != z.digest || wantSize != z.size {
		return ErrBadFooter
	}
	return nil
}

func (z *Reader) Close() error {
	return z.decomp.Close()
}
