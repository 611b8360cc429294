// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// histogram counts token frequencies ahead of Huffman code construction:
// one bucket per literal/length symbol (0..255 literals, 256 end-of-block,
// 257..285 length codes) and one per distance symbol (0..29).
type histogram struct {
	litFreq  [286]uint32
	distFreq [30]uint32
}

func (h *histogram) reset() {
	for i := range h.litFreq {
		h.litFreq[i] = 0
	}
	for i := range h.distFreq {
		h.distFreq[i] = 0
	}
}

// lengthCode maps a match length (baseMatchLength..maxMatchLength) to its
// RFC 1951 length symbol, base length, and number of extra bits.
func lengthCode(length uint32) (sym, base, extraBits uint32) {
	if length == maxMatchLength {
		return 285, maxMatchLength, 0
	}
	for i, lc := range lengthCodes {
		if length < lc.base+(1<<lc.extraBits) || i == len(lengthCodes)-1 {
			return uint32(257 + i), lc.base, uint32(lc.extraBits)
		}
	}
	return 285, lengthCodes[len(lengthCodes)-1].base, 0
}

// distSymbol maps a match distance (1..32768) to its RFC 1951 distance
// symbol, base distance, and number of extra bits.
func distSymbol(dist uint32) (sym, base, extraBits uint32) {
	for i, dc := range distCodes {
		if dist < dc.base+(1<<dc.extraBits) || i == len(distCodes)-1 {
			return uint32(i), dc.base, uint32(dc.extraBits)
		}
	}
	return 29, distCodes[len(distCodes)-1].base, 0
}

type rfcCode struct {
	base      uint32
	extraBits uint8
}

// lengthCodes is the RFC 1951 section 3.2.5 length table, base length per
// symbol 257..285 and its extra-bit count, the last entry (285) is exact
// (0 extra bits, length 258).
var lengthCodes = [29]rfcCode{
	{3, 0}, {4, 0}, {5, 0}, {6, 0}, {7, 0}, {8, 0}, {9, 0}, {10, 0},
	{11, 1}, {13, 1}, {15, 1}, {17, 1},
	{19, 2}, {23, 2}, {27, 2}, {31, 2},
	{35, 3}, {43, 3}, {51, 3}, {59, 3},
	{67, 4}, {83, 4}, {99, 4}, {115, 4},
	{131, 5}, {163, 5}, {195, 5}, {227, 5},
	{258, 0},
}

// distCodes is the RFC 1951 section 3.2.5 distance table, symbols 0..29.
var distCodes = [30]rfcCode{
	{1, 0}, {2, 0}, {3, 0}, {4, 0},
	{5, 1}, {7, 1},
	{9, 2}, {13, 2},
	{17, 3}, {25, 3},
	{33, 4}, {49, 4},
	{65, 5}, {97, 5},
	{129, 6}, {193, 6},
	{257, 7}, {385, 7},
	{513, 8}, {769, 8},
	{1025, 9}, {1537, 9},
	{2049, 10}, {3073, 10},
	{4097, 11}, {6145, 11},
	{8193, 12}, {12289, 12},
	{16385, 13}, {24577, 13},
}

// countToken adds a single token's symbol(s) to the histogram.
func (h *histogram) countToken(t token) {
	if t.isLiteral() {
		h.litFreq[t.literal()]++
		return
	}
	lsym, _, _ := lengthCode(t.length() + baseMatchLength)
	h.litFreq[lsym]++
	dsym, _, _ := distSymbol(t.offset() + baseMatchOffset)
	h.distFreq[dsym]++
}
