// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import "errors"

var (
	errCorruptedStream = errors.New("flate: corrupted stream")
	errUnexpectedEOF   = errors.New("flate: unexpected end of stream")
	errInvalidBlock    = errCorruptedStream
	errInvalidSymbol   = errCorruptedStream
	errInvalidLookBack = errCorruptedStream
)

const (
	windowSize  = 32 * 1024
	maxMatchLen = 258
	minMatchLen = 3
	endOfBlock  = 256
)

// lengthCodes and distCodes mirror the RFC 1951 section 3.2.5 tables used
// by the encoder; the decoder needs base+extra rather than symbol+extra.
var lengthBase = [29]uint32{
	3, 4, 5, 6, 7, 8, 9, 10,
	11, 13, 15, 17,
	19, 23, 27, 31,
	35, 43, 51, 59,
	67, 83, 99, 115,
	131, 163, 195, 227,
	258,
}
var lengthExtra = [29]uint8{
	0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1,
	2, 2, 2, 2,
	3, 3, 3, 3,
	4, 4, 4, 4,
	5, 5, 5, 5,
	0,
}
var distBase = [30]uint32{
	1, 2, 3, 4,
	5, 7,
	9, 13,
	17, 25,
	33, 49,
	65, 97,
	129, 193,
	257, 385,
	513, 769,
	1025, 1537,
	2049, 3073,
	4097, 6145,
	8193, 12289,
	16385, 24577,
}
var distExtra = [30]uint8{
	0, 0, 0, 0,
	1, 1,
	2, 2,
	3, 3,
	4, 4,
	5, 5,
	6, 6,
	7, 7,
	8, 8,
	9, 9,
	10, 10,
	11, 11,
	12, 12,
	13, 13,
}

// blockDecoder walks BFINAL/BTYPE blocks, feeding decoded bytes to a
// circularBuffer. One instance is reused across a stream's lifetime.
type blockDecoder struct {
	br   *bitReader
	out  *circularBuffer
	done bool
}

func newBlockDecoder(br *bitReader, out *circularBuffer) *blockDecoder {
	return &blockDecoder{br: br, out: out}
}

func (d *blockDecoder) reset(br *bitReader, out *circularBuffer) {
	d.br = br
	d.out = out
	d.done = false
}

// decodeBlock decodes exactly one DEFLATE block, returning bfinal.
func (d *blockDecoder) decodeBlock() (bfinal bool, err error) {
	bf, err := d.br.readBit()
	if err != nil {
		return false, err
	}
	btype, err := d.br.readBits(2)
	if err != nil {
		return false, err
	}
	switch btype {
	case 0:
		err = d.decodeStored()
	case 1:
		err = d.decodeHuffman(&fixedLitLenDecoder, &fixedDistDecoder)
	case 2:
		lit, dist, herr := readDynamicHeader(d.br)
		if herr != nil {
			return false, herr
		}
		err = d.decodeHuffman(lit, dist)
	default:
		return false, errCorruptedStream
	}
	return bf == 1, err
}

func (d *blockDecoder) decodeStored() error {
	d.br.alignToByte()
	var hdr [4]byte
	if err := d.br.readRaw(hdr[:]); err != nil {
		return err
	}
	length := uint16(hdr[0]) | uint16(hdr[1])<<8
	nlength := uint16(hdr[2]) | uint16(hdr[3])<<8
	if length != ^nlength {
		return errCorruptedStream
	}
	buf := make([]byte, length)
	if err := d.br.readRaw(buf); err != nil {
		return err
	}
	d.out.writeLiterals(buf)
	return nil
}

func (d *blockDecoder) decodeHuffman(lit, dist *huffmanDecoder) error {
	for {
		sym, err := lit.decode(d.br)
		if err != nil {
			return err
		}
		switch {
		case sym < 256:
			d.out.writeByte(byte(sym))
		case sym == endOfBlock:
			return nil
		default:
			li := sym - 257
			if li >= len(lengthBase) {
				return errCorruptedStream
			}
			length := lengthBase[li]
			if lengthExtra[li] > 0 {
				extra, err := d.br.readBits(uint(lengthExtra[li]))
				if err != nil {
					return err
				}
				length += extra
			}
			dsym, err := dist.decode(d.br)
			if err != nil {
				return err
			}
			if dsym >= len(distBase) {
				return errCorruptedStream
			}
			distance := distBase[dsym]
			if distExtra[dsym] > 0 {
				extra, err := d.br.readBits(uint(distExtra[dsym]))
				if err != nil {
					return err
				}
				distance += extra
			}
			if distance > windowSize || uint64(distance) > d.out.written {
				return errCorruptedStream
			}
			d.out.writeMatch(int(length), int(distance))
		}
	}
}
