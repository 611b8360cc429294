// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

import "io"

const tokensCap = 1 << 15 // a block is flushed once this many tokens accumulate, win or not

var _ LevelCompressor = (*Compressor)(nil)

// Compressor runs the full hash-chain, lazy-matching tokenizer (levels
// 4..9) followed by the block writer's stored/fixed/dynamic choice.
type Compressor struct {
	w      io.Writer
	bw     *bitWriter
	window *slidingWindow
	chain  *hashChain
	block  *blockWriter
	args   levelArgs

	tokens []token

	hasPrevMatch   bool
	prevMatch      match
	hasPrevLiteral bool
	prevLiteral    byte

	closed bool
}

func NewCompressor(w io.Writer, level int) *Compressor {
	c := &Compressor{
		w:      w,
		bw:     newBitWriter(w),
		window: newSlidingWindow(),
		chain:  newHashChain(),
		block:  newBlockWriter(),
		args:   levels[level],
		tokens: make([]token, 0, tokensCap),
	}
	return c
}

func (c *Compressor) Reset(w io.Writer) {
	c.w = w
	c.bw.reset(w)
	c.window.reset()
	c.chain.reset()
	c.tokens = c.tokens[:0]
	c.hasPrevMatch = false
	c.hasPrevLiteral = false
	c.closed = false
}

func (c *Compressor) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if c.window.needsSlide() {
			// Sliding discards the lower half of the window; hand the
			// current block's bytes to the block writer while they are
			// still there.
			if c.window.fp < windowSize {
				if err := c.flushBlock(false); err != nil {
					return total - len(p), err
				}
			}
			n := c.window.slide()
			c.chain.slide(uint32(n))
		}
		n := copy(c.window.writable(), p)
		c.window.written(n)
		p = p[n:]
		if err := c.tokenize(false); err != nil {
			return total - len(p), err
		}
	}
	return total, c.bw.err
}

func (c *Compressor) Flush() error {
	if err := c.tokenize(true); err != nil {
		return err
	}
	if err := c.flushBlock(false); err != nil {
		return err
	}
	// An empty stored block byte-aligns the stream without ending it.
	c.block.writeStored(nil, false, c.bw)
	return c.bw.flush()
}

func (c *Compressor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if err := c.tokenize(true); err != nil {
		return err
	}
	return c.flushFinal()
}

// tokenize runs the lazy-matching loop from the current read position for
// as long as lookahead is available, accumulating tokens and flushing
// full blocks as it goes.
func (c *Compressor) tokenize(flush bool) error {
	for {
		lh := c.window.activeLookahead(flush)
		if len(lh) == 0 {
			break
		}
		pos := c.window.rp

		minLen := 0
		if c.hasPrevMatch {
			minLen = c.prevMatch.length
		}
		m, ok := findMatch(c.window, c.chain, pos, minLen, c.args.good, c.args.nice, c.args.chain)

		switch {
		case ok && m.length >= c.args.lazy:
			if c.hasPrevLiteral {
				c.emitLiteral(c.prevLiteral)
				c.hasPrevLiteral = false
			}
			c.emitMatch(m)
			c.advanceAndHash(pos, m.length)
			c.hasPrevMatch = false
		case ok:
			if c.hasPrevLiteral {
				c.emitLiteral(c.prevLiteral)
				c.hasPrevLiteral = false
			}
			c.prevMatch = m
			c.hasPrevMatch = true
			c.prevLiteral = c.window.buf[pos]
			c.hasPrevLiteral = true
			c.advanceAndHash(pos, 1)
		case c.hasPrevMatch:
			c.emitMatch(c.prevMatch)
			c.advanceAndHash(pos, c.prevMatch.length-1)
			c.hasPrevMatch = false
			c.hasPrevLiteral = false
		default:
			if c.hasPrevLiteral {
				c.emitLiteral(c.prevLiteral)
			}
			c.prevLiteral = c.window.buf[pos]
			c.hasPrevLiteral = true
			c.advanceAndHash(pos, 1)
		}

		if len(c.tokens) >= tokensCap-1 {
			if err := c.flushBlock(false); err != nil {
				return err
			}
		}
	}
	if flush {
		if c.hasPrevMatch {
			c.emitMatch(c.prevMatch)
			c.hasPrevMatch = false
		}
		if c.hasPrevLiteral {
			c.emitLiteral(c.prevLiteral)
			c.hasPrevLiteral = false
		}
	}
	return nil
}

func (c *Compressor) advanceAndHash(pos, step int) {
	if step > 1 {
		c.chain.bulkAdd(c.window.buf, step-1, pos+1)
	}
	c.window.advance(step)
}

func (c *Compressor) emitLiteral(b byte) {
	c.tokens = append(c.tokens, literalToken(uint32(b)))
}

func (c *Compressor) emitMatch(m match) {
	c.tokens = append(c.tokens, matchToken(uint32(m.length-baseMatchLength), uint32(m.offset-baseMatchOffset)))
}

func (c *Compressor) flushBlock(final bool) error {
	if len(c.tokens) == 0 && !final {
		return c.bw.err
	}
	// A pending literal (or the first byte of a pending match) sits at
	// rp-1 and belongs to the next block's tokens, not this one's.
	end := c.window.rp
	if c.hasPrevLiteral {
		end--
	}
	raw := c.window.buf[c.window.fp:end]
	c.block.encodeBlock(c.tokens, raw, final, c.bw)
	c.window.fp = end
	c.tokens = c.tokens[:0]
	return c.bw.err
}

func (c *Compressor) flushFinal() error {
	if err := c.flushBlock(true); err != nil {
		return err
	}
	return c.bw.flush()
}
