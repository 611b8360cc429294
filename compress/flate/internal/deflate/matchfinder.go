// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package deflate

// match is the best length/offset pair a matchFinder call produced.
type match struct {
	length int
	offset int
}

// findMatch pushes pos into the hash chain and walks it looking for the
// longest back-reference within maxMatchOffset of pos. good/nice/chain are
// the level-dependent tuning knobs from levelArgs: once the best match
// found so far reaches good, only chain/4 further candidates are tried;
// a match reaching nice ends the search immediately.
func findMatch(win *slidingWindow, hc *hashChain, pos int, minLen, good, nice, chainLimit int) (m match, ok bool) {
	lh := win.buf[pos:]
	if len(lh) < 4 {
		return m, false
	}
	prevHead := hc.add(lh, pos)

	tries := chainLimit
	best := minLen
	if best < minMatchLength-1 {
		best = minMatchLength - 1
	}
	candidate := prevHead
	for candidate != 0 && tries > 0 {
		distance := pos - int(candidate)
		if distance <= 0 || distance > maxMatchOffset {
			break
		}
		length := win.match(int(candidate), pos, best)
		if length > best {
			best = length
			m = match{length: length, offset: distance}
			ok = true
			if length >= nice {
				return m, true
			}
		}
		if best >= good {
			tries -= 4
		} else {
			tries--
		}
		candidate = hc.prev(candidate)
	}
	return m, ok
}
