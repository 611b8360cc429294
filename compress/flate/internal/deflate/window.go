// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// slidingWindow holds the encoder's view of the input: a buffer twice the
// match-distance limit wide so that a match can always reach back
// windowSize bytes without the window needing to slide mid-match.
//
// fp <= rp <= wp at all times; wp-fp never exceeds len(buf).
type slidingWindow struct {
	buf []byte
	wp  int // next free byte
	rp  int // next byte the tokenizer has not yet consumed
	fp  int // first byte not yet handed to the block writer
}

func newSlidingWindow() *slidingWindow {
	return &slidingWindow{buf: make([]byte, 2*windowSize)}
}

func (w *slidingWindow) reset() {
	w.wp, w.rp, w.fp = 0, 0, 0
}

// writable returns the free suffix of the buffer that new input may be
// copied into.
func (w *slidingWindow) writable() []byte {
	return w.buf[w.wp:]
}

func (w *slidingWindow) written(n int) {
	w.wp += n
}

// activeLookahead returns the bytes still to be tokenized. During a normal
// (non-final) pass it withholds the last maxMatchLength-1 bytes, since a
// match starting there might extend past what has been read so far.
func (w *slidingWindow) activeLookahead(flush bool) []byte {
	if flush {
		return w.buf[w.rp:w.wp]
	}
	end := w.wp - (maxMatchLength - 1)
	if end <= w.rp {
		return nil
	}
	return w.buf[w.rp:end]
}

func (w *slidingWindow) advance(step int) {
	w.rp += step
}

// match extends a candidate match at prevPos against the lookahead starting
// at pos, byte by byte, up to maxMatchLength or the end of available data.
func (w *slidingWindow) match(prevPos, pos, minLen int) int {
	maxLen := w.wp - pos
	if maxLen > maxMatchLength {
		maxLen = maxMatchLength
	}
	if maxLen <= minLen {
		return 0
	}
	a, b := w.buf[prevPos:prevPos+maxLen], w.buf[pos:pos+maxLen]
	n := 0
	for n < maxLen && a[n] == b[n] {
		n++
	}
	return n
}

// tokensBuffer returns the literal bytes between the last flush point and
// the current read position, needed when the block writer picks a stored
// block.
func (w *slidingWindow) tokensBuffer() []byte {
	return w.buf[w.fp:w.rp]
}

func (w *slidingWindow) markFlushed() {
	w.fp = w.rp
}

// needsSlide reports whether the writable suffix has shrunk to the point
// that the tokenizer can no longer make progress.
func (w *slidingWindow) needsSlide() bool {
	return len(w.writable()) < maxMatchLength
}

// slide copies the upper half of the buffer down to the lower half and
// rebases every cursor by windowSize. The caller must slide the HashChain
// by the same amount in the same call.
func (w *slidingWindow) slide() int {
	copy(w.buf[:windowSize], w.buf[windowSize:])
	w.wp -= windowSize
	w.rp -= windowSize
	if w.fp >= windowSize {
		w.fp -= windowSize
	} else {
		w.fp = 0
	}
	return windowSize
}
