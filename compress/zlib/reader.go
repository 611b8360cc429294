// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bufio"
	"encoding/binary"
	"hash"
	"hash/adler32"
	"io"

	"github.com/zflate/zflate/compress/flate"
)

// Reader is an io.ReadCloser decoding a zlib stream.
type Reader struct {
	r       *bufio.Reader
	decomp  io.ReadCloser
	digest  hash.Hash32
	err     error
	trailer bool
}

// NewReader validates the zlib header and returns a Reader over the
// decompressed body. r is wrapped in a single shared *bufio.Reader that
// the header, the flate decoder, and the footer all read through, so
// bytes flate's bit reader pulls ahead of what it actually decodes stay
// available for the footer read instead of being stranded in a buffer
// only flate can see.
func NewReader(r io.Reader) (*Reader, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	var hdr [2]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, ErrBadHeader
	}
	cmf, flg := hdr[0], hdr[1]
	if cmf&0x0f != 8 {
		return nil, ErrBadHeader
	}
	if (uint16(cmf)<<8|uint16(flg))%31 != 0 {
		return nil, ErrBadHeader
	}
	if flg&0x20 != 0 {
		return nil, ErrDictionary
	}
	z := &Reader{r: br, decomp: flate.NewReader(br), digest: adler32.New()}
	return z, nil
}

func (z *Reader) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	n, err := z.decomp.Read(p)
	z.digest.Write(p[:n])
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
	var footer [4]byte
	if _, err := io.ReadFull(z.r, footer[:]); err != nil {
		return ErrBadFooter
	}
	if binary.BigEndian.Uint32(footer[:]) != z.digest.Sum32() {
		return ErrBadFooter
	}
	return nil
}

func (z *Reader) Close() error {
	return z.decomp.Close()
}
