// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import (
	"github.com/zflate/zflate/compress/flate/internal/huffman"
)

const (
	numRepeat3_6     = 16
	zeroRepeat3_10   = 17
	zeroRepeat11_138 = 18
)

var hclenOrder = [19]uint32{16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// dynamicHeader RLE-encodes a block's combined literal/length and distance
// code-length sequence per RFC 1951 section 3.2.7, Huffman-codes that
// sequence with the 19-symbol code-length alphabet, and writes the whole
// HLIT/HDIST/HCLEN header plus the encoded sequence to a bitWriter.
type dynamicHeader struct {
	generator huffman.TreeGenerator
	litNum    int
	distNum   int
	source    []uint8  // combined lit/len then dist code lengths, RLE input
	data      []uint8  // RLE output: code-length alphabet symbols + extras
	freq      [19]uint32
	codeLens  [19]uint32
	rcodes    [19]uint16
	cache     [(7 + 1) * 2]uint32
}

func newDynamicHeader() *dynamicHeader {
	return &dynamicHeader{
		generator: huffman.NewLenLimitedCode(),
		source:    make([]uint8, 286+30+1),
	}
}

// writeTo emits the dynamic-block header (BFINAL+BTYPE, HLIT, HDIST,
// HCLEN, and the RLE'd code-length sequence) given the already-computed
// literal/length and distance code lengths for this block.
func (c *dynamicHeader) writeTo(litLens, distLens []uint32, final bool, bw *bitWriter) {
	c.prepareAlphabets(litLens, distLens)

	copy(c.codeLens[:], c.freq[:])
	c.generator.Generate(7, c.codeLens[:], c.codeLens[:])
	codeSize := c.codeSize()
	c.rcodes = [19]uint16{}
	huffman.GenerateCode(c.cache[:], 7, c.codeLens[:], c.rcodes[:])

	if final {
		bw.writeBits(0b101, 3)
	} else {
		bw.writeBits(0b100, 3)
	}
	bw.writeBits(uint32(c.litNum)-257, 5)
	bw.writeBits(uint32(c.distNum)-1, 5)
	bw.writeBits(uint32(codeSize)-4, 4)
	for i := 0; i < codeSize; i++ {
		bw.writeBits(uint32(c.codeLens[hclenOrder[i]]), 3)
	}

	for i := 0; i < len(c.data); i++ {
		value := c.data[i]
		bw.writeBits(uint32(c.rcodes[value]), uint(c.codeLens[value]))
		switch value {
		case numRepeat3_6:
			i++
			bw.writeBits(uint32(c.data[i]), 2)
		case zeroRepeat3_10:
			i++
			bw.writeBits(uint32(c.data[i]), 3)
		case zeroRepeat11_138:
			i++
			bw.writeBits(uint32(c.data[i]), 7)
		}
	}
}

// codeSize is HCLEN+4: the number of code-length codes to actually
// transmit, trimming trailing zero-length entries in hclenOrder.
func (c *dynamicHeader) codeSize() (num int) {
	num = len(c.codeLens)
	for num > 4 && c.codeLens[hclenOrder[num-1]] == 0 {
		num--
	}
	return num
}

func (c *dynamicHeader) prepareAlphabets(litLens, distLens []uint32) {
	litNum, distNum := prepareLens(litLens, distLens, c.source)
	if distNum == 0 {
		c.source[litNum] = 1
		distNum = 1
	}
	c.litNum = int(litNum)
	c.distNum = int(distNum)

	c.data = c.data[:0]
	c.freq = [19]uint32{}
	c.alphabet(c.source[:litNum+1])
	c.alphabet(c.source[litNum : litNum+distNum+1])
}

func (c *dynamicHeader) alphabet(source []byte) {
	temp := source[len(source)-1]
	source[len(source)-1] = 255

	prev := uint8(0)
	start := 0
	for i, current := range source {
		if i == 0 {
			prev = current
			continue
		}
		if current == prev {
			continue
		}
		repeated := i - start
		if prev == 0 {
			c.zeroRepeat(repeated)
		} else {
			c.numRepeat(prev, repeated)
		}
		start = i
		prev = current
	}
	source[len(source)-1] = temp
}

func (c *dynamicHeader) numRepeat(num byte, repeated int) {
	for repeated != 0 {
		switch {
		case repeated <= 3:
			for i := 0; i < repeated; i++ {
				c.data = append(c.data, num)
			}
			c.freq[num] += uint32(repeated)
			repeated = 0
		case repeated <= 7:
			c.freq[num]++
			c.data = append(c.data, num)
			c.freq[numRepeat3_6]++
			c.data = append(c.data, numRepeat3_6, uint8(repeated-4))
			repeated = 0
		default:
			c.freq[num]++
			c.freq[numRepeat3_6]++
			c.data = append(c.data, num, numRepeat3_6, uint8(3))
			repeated -= 7
		}
	}
}

func (c *dynamicHeader) zeroRepeat(repeated int) {
	for repeated != 0 {
		switch {
		case repeated < 3:
			for i := 0; i < repeated; i++ {
				c.data = append(c.data, 0)
			}
			c.freq[0] += uint32(repeated)
			repeated = 0
		case repeated < 11:
			c.freq[zeroRepeat3_10]++
			c.data = append(c.data, zeroRepeat3_10, byte(repeated-3))
			repeated = 0
		case repeated < 139:
			c.freq[zeroRepeat11_138]++
			c.data = append(c.data, zeroRepeat11_138, byte(repeated-11))
			repeated = 0
		default:
			c.freq[zeroRepeat11_138]++
			c.data = append(c.data, zeroRepeat11_138, byte(138-11))
			repeated -= 138
		}
	}
}

// prepareLens flattens the lit/len and distance code-length arrays into a
// single RLE-input buffer, trimming trailing zero-length symbols.
func prepareLens(litLens, distLens []uint32, source []byte) (litNum, distNum uint16) {
	for i := len(litLens) - 1; i >= 0; i-- {
		if litLens[i] != 0 {
			litNum = uint16(i) + 1
			break
		}
	}
	if litNum < 257 {
		litNum = 257
	}
	for i := len(distLens) - 1; i >= 0; i-- {
		if distLens[i] != 0 {
			distNum = uint16(i) + 1
			break
		}
	}
	insertOneDistance := distNum == 0
	if insertOneDistance {
		distNum = 1
	}

	source = source[:litNum+distNum+1]
	for i := uint16(0); i < litNum; i++ {
		source[i] = uint8(litLens[i])
	}
	for i := uint16(0); i < distNum; i++ {
		source[litNum+i] = uint8(distLens[i])
	}
	if insertOneDistance {
		source[litNum] = 1
	}
	return litNum, distNum
}
