// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package flate

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

// TestSelfOverlapMatch exercises the circularBuffer's self-overlapping
// back-reference path directly: a distance shorter than the requested
// length must repeat byte-by-byte, not read stale data past the write
// cursor.
func TestSelfOverlapMatch(t *testing.T) {
	c := newCircularBuffer()
	c.writeByte('a')
	c.writeMatch(9, 1)

	got := make([]byte, 10)
	n := c.drain(got)
	if n != 10 {
		t.Fatalf("drained %d bytes, want 10", n)
	}
	want := bytes.Repeat([]byte{'a'}, 10)
	if !bytes.Equal(got, want) {
		t.Fatalf("self-overlap decode = %q, want %q", got, want)
	}
}

// Hand-assembled fixed-Huffman blocks, one back-reference each: a literal 'a'
// followed by a length/distance pair and the end-of-block symbol. The
// distance-2 variant asks for a back-reference two bytes behind the
// write cursor when only one byte has been written, which no valid
// DEFLATE encoder would ever emit.
var (
	fixedBlockSelfRef    = []byte{0x4b, 0x04, 0x02, 0x00} // literal 'a', match(len=3,dist=1), EOB
	fixedBlockBadBackRef = []byte{0x4b, 0x04, 0x42, 0x00} // literal 'a', match(len=3,dist=2), EOB
)

func TestCorruptedBackReference(t *testing.T) {
	_, err := io.ReadAll(NewReader(bytes.NewReader(fixedBlockBadBackRef)))
	if !errors.Is(err, errCorruptedStream) {
		t.Fatalf("err = %v, want errCorruptedStream", err)
	}
}

// TestTruncatedInput checks that every strict prefix of a valid block
// fails with UnexpectedEndOfStream instead of silently accepting
// zero-padding left in the bit register as if it were real stream data.
func TestTruncatedInput(t *testing.T) {
	full := fixedBlockSelfRef
	for n := 1; n < len(full); n++ {
		prefix := full[:n]
		_, err := io.ReadAll(NewReader(bytes.NewReader(prefix)))
		if !errors.Is(err, errUnexpectedEOF) {
			t.Fatalf("prefix length %d: err = %v, want errUnexpectedEOF", n, err)
		}
	}

	// The complete stream, by contrast, must decode cleanly.
	got, err := io.ReadAll(NewReader(bytes.NewReader(full)))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "aaaa" {
		t.Fatalf("got %q, want %q", got, "aaaa")
	}
}
