// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package flate

// huffmanDecoder is a two-level canonical Huffman decode table: a fast
// table indexed by the next fastBits bits of the stream resolves every
// code of length <= fastBits in one lookup; longer codes chain through a
// sorted overflow list. Matches the short+long table layout suggested for
// the DEFLATE decode path (k=9 for the 286-symbol literal/length alphabet,
// k=6 for the 30-symbol distance alphabet).
type huffmanDecoder struct {
	fastBits uint
	fastSym  []uint16
	fastLen  []uint8

	// overflow holds every symbol whose code is longer than fastBits,
	// searched linearly per decode since overflow codes are rare.
	overflowCode []uint32
	overflowLen  []uint8
	overflowSym  []uint16
}

const maxCodeLen = 15

// build constructs the decode tables from a canonical code-length array
// (codeLens[sym] == 0 means the symbol is unused). fastBits should be at
// least the most common code length for the alphabet.
func (h *huffmanDecoder) build(codeLens []uint32, fastBits uint) bool {
	var count [maxCodeLen + 1]int
	maxLen := 0
	for _, l := range codeLens {
		if l == 0 {
			continue
		}
		if int(l) > maxCodeLen {
			return false
		}
		count[l]++
		if int(l) > maxLen {
			maxLen = int(l)
		}
	}
	h.fastBits = fastBits
	if maxLen == 0 {
		h.fastSym = make([]uint16, 1<<fastBits)
		h.fastLen = make([]uint8, 1<<fastBits)
		return true
	}

	var nextCode [maxCodeLen + 2]uint32
	code := uint32(0)
	for l := 1; l <= maxLen; l++ {
		code = (code + uint32(count[l-1])) << 1
		nextCode[l] = code
	}
	// Kraft inequality: an under- or oversubscribed code tree is corrupt,
	// except for a lone one-bit code, which RFC 1951 uses when a block has
	// only one distance code.
	total := uint32(0)
	for l := 1; l <= maxLen; l++ {
		total += uint32(count[l]) << uint(maxLen-l)
	}
	if total != 1<<uint(maxLen) && !(maxLen == 1 && count[1] == 1) {
		return false
	}

	if int(fastBits) > maxLen {
		fastBits = uint(maxLen)
	}
	h.fastBits = fastBits
	h.fastSym = make([]uint16, 1<<fastBits)
	h.fastLen = make([]uint8, 1<<fastBits)
	h.overflowCode = h.overflowCode[:0]
	h.overflowLen = h.overflowLen[:0]
	h.overflowSym = h.overflowSym[:0]

	assigned := make([]uint32, len(codeLens))
	for sym, l := range codeLens {
		if l == 0 {
			continue
		}
		assigned[sym] = nextCode[l]
		nextCode[l]++
	}

	for sym, l := range codeLens {
		if l == 0 {
			continue
		}
		rev := reverseBits(assigned[sym], uint(l))
		if l <= uint32(fastBits) {
			step := uint32(1) << l
			for v := rev; v < 1<<fastBits; v += step {
				h.fastSym[v] = uint16(sym)
				h.fastLen[v] = uint8(l)
			}
			continue
		}
		h.overflowCode = append(h.overflowCode, rev)
		h.overflowLen = append(h.overflowLen, uint8(l))
		h.overflowSym = append(h.overflowSym, uint16(sym))
	}
	return true
}

func reverseBits(v uint32, n uint) uint32 {
	var r uint32
	for i := uint(0); i < n; i++ {
		r = (r << 1) | (v & 1)
		v >>= 1
	}
	return r
}

// decode reads one symbol from br using this table. need's return value
// only says whether fastBits worth of lookahead was available; a
// shorter code can still be decodable past EOF, so every candidate is
// re-checked against br.nbits before being trusted, or the zero padding
// br.bits carries past the real end of input could masquerade as a
// valid short code (EOB is all-zero) instead of reporting EOF.
func (h *huffmanDecoder) decode(br *bitReader) (int, error) {
	br.need(uint(h.fastBits))
	idx := uint32(br.bits) & (1<<h.fastBits - 1)
	if int(idx) < len(h.fastSym) && h.fastLen[idx] != 0 {
		l := uint(h.fastLen[idx])
		if br.nbits < l {
			return 0, errUnexpectedEOF
		}
		br.bits >>= l
		br.nbits -= l
		return int(h.fastSym[idx]), nil
	}
	for i, l8 := range h.overflowLen {
		l := uint(l8)
		if br.nbits < l && !br.need(l) {
			continue
		}
		mask := uint32(1)<<l - 1
		if uint32(br.bits)&mask == h.overflowCode[i] {
			if br.nbits < l {
				return 0, errUnexpectedEOF
			}
			br.bits >>= l
			br.nbits -= l
			return int(h.overflowSym[i]), nil
		}
	}
	if br.nbits == 0 || br.err != nil {
		return 0, errUnexpectedEOF
	}
	return 0, errCorruptedStream
}
