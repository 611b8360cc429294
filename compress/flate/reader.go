// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package flate implements RFC 1951 DEFLATE compression and decompression,
// independent of any container framing (see compress/gzip and
// compress/zlib for RFC 1952/1950 framing on top of this package).
package flate

import "io"

// Resetter lets a Reader discard its state and start decoding a new
// stream from r, avoiding an allocation per stream.
type Resetter interface {
	Reset(r io.Reader) error
}

// CorruptInputError reports the input byte offset at which the stream was
// found to be malformed.
type CorruptInputError int64

func (e CorruptInputError) Error() string {
	return "flate: corrupt input before offset " + itoa(int64(e))
}

func itoa(v int64) string {
	if v == 0 {
		return "0"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// NewReader returns a new ReadCloser decoding a raw DEFLATE stream from r.
func NewReader(r io.Reader) io.ReadCloser {
	d := &decompressor{}
	d.Reset(r)
	return d
}

type decompressor struct {
	br      *bitReader
	out     *circularBuffer
	block   *blockDecoder
	started bool
	done    bool
	err     error
}

func (d *decompressor) Reset(r io.Reader) error {
	if d.br == nil {
		d.br = newBitReader(r)
		d.out = newCircularBuffer()
		d.block = newBlockDecoder(d.br, d.out)
	} else {
		d.br.reset(r)
		d.out.reset()
		d.block.reset(d.br, d.out)
	}
	d.started = false
	d.done = false
	d.err = nil
	return nil
}

func (d *decompressor) Close() error {
	return nil
}

func (d *decompressor) Read(p []byte) (int, error) {
	for {
		if d.out.hasPending() {
			n := d.out.drain(p)
			if n > 0 {
				return n, nil
			}
		}
		if d.err != nil {
			return 0, d.err
		}
		if d.done {
			return 0, io.EOF
		}
		bfinal, err := d.block.decodeBlock()
		if err != nil {
			d.err = err
			continue
		}
		if bfinal {
			d.done = true
		}
	}
}
