// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import "github.com/zflate/zflate/compress/flate/internal/huffman"

const endOfBlock = 256

// fixedLitLens and fixedDistLens are the RFC 1951 section 3.2.6 fixed
// Huffman code lengths, precomputed once into canonical codes at package
// init since every fixed block in every stream uses the same table.
var (
	fixedLitLens  [288]uint32
	fixedDistLens [30]uint32
)

func init() {
	for i := range fixedLitLens {
		switch {
		case i < 144:
			fixedLitLens[i] = 8
		case i < 256:
			fixedLitLens[i] = 9
		case i < 280:
			fixedLitLens[i] = 7
		default:
			fixedLitLens[i] = 8
		}
	}
	for i := range fixedDistLens {
		fixedDistLens[i] = 5
	}
	huffman.GenerateCode2(fixedLitLens[:])
	huffman.GenerateCode2(fixedDistLens[:])
}

func unpackCode(v uint32) (code uint32, length uint) {
	return v & 0xffffff, uint(v >> 24)
}

// blockWriter turns one block's tokens (plus, for the stored-block option,
// the raw bytes they represent) into DEFLATE bits: it estimates the cost
// of stored/fixed/dynamic encodings and emits whichever is cheapest,
// breaking ties dynamic > fixed > stored.
type blockWriter struct {
	litGen, distGen *huffman.LenLimitedCode
	hdr             *dynamicHeader
	litLens         [286]uint32
	distLens        [30]uint32
	litCodes        [286]uint32
	distCodes       [30]uint32
	hist            histogram
}

func newBlockWriter() *blockWriter {
	return &blockWriter{
		litGen:  huffman.NewLenLimitedCode(),
		distGen: huffman.NewLenLimitedCode(),
		hdr:     newDynamicHeader(),
	}
}

// analyze scans tokens once, building the frequency histogram and the
// extra-bits total (the number of bits spent on length/distance extra
// fields, identical for the fixed and dynamic encodings of the same
// tokens).
func (b *blockWriter) analyze(tokens []token) (extraBits int) {
	b.hist.reset()
	for _, t := range tokens {
		if t.isLiteral() {
			b.hist.litFreq[t.literal()]++
			continue
		}
		length := t.length() + baseMatchLength
		lsym, _, lextra := lengthCode(length)
		b.hist.litFreq[lsym]++
		extraBits += int(lextra)

		offset := t.offset() + baseMatchOffset
		dsym, _, dextra := distSymbol(offset)
		b.hist.distFreq[dsym]++
		extraBits += int(dextra)
	}
	b.hist.litFreq[endOfBlock] = 1
	return extraBits
}

func fixedCost(hist *histogram) int {
	bits := 0
	for i, f := range hist.litFreq {
		bits += int(f) * int(fixedLitLens[i]>>24)
	}
	for i, f := range hist.distFreq {
		bits += int(f) * int(fixedDistLens[i]>>24)
	}
	return bits
}

func (b *blockWriter) dynamicPlan() (bits int) {
	copy(b.litLens[:], b.hist.litFreq[:])
	b.litGen.Generate(15, b.litLens[:], b.litLens[:])
	copy(b.distLens[:], b.hist.distFreq[:])
	b.distGen.Generate(15, b.distLens[:], b.distLens[:])

	for i, f := range b.hist.litFreq {
		bits += int(f) * int(b.litLens[i])
	}
	for i, f := range b.hist.distFreq {
		bits += int(f) * int(b.distLens[i])
	}
	return bits
}

// encodeBlock chooses an encoding for tokens and writes it, plus a raw
// byte fallback path (rawBytes, only usable when its length fits in the
// 16-bit stored-block LEN field).
func (b *blockWriter) encodeBlock(tokens []token, rawBytes []byte, final bool, bw *bitWriter) {
	extraBits := b.analyze(tokens)
	tokenBitsDynamic := b.dynamicPlan() + extraBits

	storedViable := len(rawBytes) <= 0xffff
	storedBits := 1 << 30
	if storedViable {
		storedBits = 8*len(rawBytes) + 32 // stored payload plus LEN/NLEN; header/padding is sub-byte and ignored in the comparison
	}
	fixedBits := fixedCost(&b.hist) + extraBits

	// crude but adequate estimate of the dynamic header's own size, so the
	// comparison does not always prefer dynamic on tiny blocks.
	dynamicHeaderBits := 17 + 19*3 + (b.litNumEstimate()+b.distNumEstimate())*3
	dynamicBits := dynamicHeaderBits + tokenBitsDynamic

	switch {
	case dynamicBits <= fixedBits && dynamicBits <= storedBits:
		b.writeDynamic(tokens, final, bw)
	case fixedBits <= storedBits:
		b.writeFixed(tokens, final, bw)
	default:
		b.writeStored(rawBytes, final, bw)
	}
}

func (b *blockWriter) litNumEstimate() int {
	for i := len(b.litLens) - 1; i >= 0; i-- {
		if b.litLens[i] != 0 {
			return i + 1
		}
	}
	return 0
}

func (b *blockWriter) distNumEstimate() int {
	for i := len(b.distLens) - 1; i >= 0; i-- {
		if b.distLens[i] != 0 {
			return i + 1
		}
	}
	return 0
}

func (b *blockWriter) writeStored(raw []byte, final bool, bw *bitWriter) {
	if final {
		bw.writeBits(0b001, 3)
	} else {
		bw.writeBits(0b000, 3)
	}
	bw.alignToByte()
	n := uint32(len(raw))
	bw.writeRaw([]byte{byte(n), byte(n >> 8), byte(^n), byte(^n >> 8)})
	bw.writeRaw(raw)
}

func (b *blockWriter) writeFixed(tokens []token, final bool, bw *bitWriter) {
	if final {
		bw.writeBits(0b011, 3)
	} else {
		bw.writeBits(0b010, 3)
	}
	b.writeTokens(tokens, fixedLitLens[:], fixedDistLens[:], bw)
}

func (b *blockWriter) writeDynamic(tokens []token, final bool, bw *bitWriter) {
	litLens := append([]uint32(nil), b.litLens[:]...)
	distLens := append([]uint32(nil), b.distLens[:]...)
	b.hdr.writeTo(litLens, distLens, final, bw)

	copy(b.litCodes[:], b.litLens[:])
	huffman.GenerateCode2(b.litCodes[:])
	copy(b.distCodes[:], b.distLens[:])
	huffman.GenerateCode2(b.distCodes[:])
	b.writeTokens(tokens, b.litCodes[:], b.distCodes[:], bw)
}

func (b *blockWriter) writeTokens(tokens []token, litCodes, distCodes []uint32, bw *bitWriter) {
	for _, t := range tokens {
		if t.isLiteral() {
			code, length := unpackCode(litCodes[t.literal()])
			bw.writeBits(code, length)
			continue
		}
		length := t.length() + baseMatchLength
		lsym, lbase, lextra := lengthCode(length)
		code, clen := unpackCode(litCodes[lsym])
		bw.writeBits(code, clen)
		if lextra > 0 {
			bw.writeBits(length-lbase, uint(lextra))
		}

		offset := t.offset() + baseMatchOffset
		dsym, dbase, dextra := distSymbol(offset)
		code, clen = unpackCode(distCodes[dsym])
		bw.writeBits(code, clen)
		if dextra > 0 {
			bw.writeBits(offset-dbase, uint(dextra))
		}
	}
	code, length := unpackCode(litCodes[endOfBlock])
	bw.writeBits(code, length)
}
