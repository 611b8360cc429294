// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package flate_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/zflate/zflate/compress/flate"
	"github.com/zflate/zflate/compress/gzip"
	"github.com/zflate/zflate/compress/zlib"
)

// TestHelloWorldStoredBlock pins the exact byte-for-byte encoding of a
// 12-byte input as a single final stored block, in raw, gzip and zlib
// form, matching the literal scenario used to seed this codec's test
// suite.
func TestHelloWorldStoredBlock(t *testing.T) {
	want := []byte("Hello world\n")

	t.Run("raw", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := flate.NewWriter(buf, flate.NoCompression)
		if _, err := w.Write(want); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		wantHex := []byte{
			0x01, 0x0c, 0x00, 0xf3, 0xff,
			0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x20, 0x77, 0x6f, 0x72, 0x6c, 0x64, 0x0a,
		}
		if !bytes.Equal(buf.Bytes(), wantHex) {
			t.Fatalf("raw stored block = % x, want % x", buf.Bytes(), wantHex)
		}
		got, err := io.ReadAll(flate.NewReader(bytes.NewReader(buf.Bytes())))
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("decoded = %q, want %q", got, want)
		}
	})

	t.Run("gzip", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := gzip.NewWriterLevel(buf, flate.NoCompression)
		if _, err := w.Write(want); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		wantHex := []byte{
			0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x03,
			0x01, 0x0c, 0x00, 0xf3, 0xff,
			0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x20, 0x77, 0x6f, 0x72, 0x6c, 0x64, 0x0a,
			0xd5, 0xe0, 0x39, 0xb7, 0x0c, 0x00, 0x00, 0x00,
		}
		if !bytes.Equal(buf.Bytes(), wantHex) {
			t.Fatalf("gzip stream = % x, want % x", buf.Bytes(), wantHex)
		}
		r, err := gzip.NewReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("decoded = %q, want %q", got, want)
		}
	})

	t.Run("zlib", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := zlib.NewWriterLevel(buf, flate.NoCompression)
		if _, err := w.Write(want); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}
		wantHex := []byte{
			0x78, 0x9c,
			0x01, 0x0c, 0x00, 0xf3, 0xff,
			0x48, 0x65, 0x6c, 0x6c, 0x6f, 0x20, 0x77, 0x6f, 0x72, 0x6c, 0x64, 0x0a,
			0x1c, 0xf2, 0x04, 0x47,
		}
		if !bytes.Equal(buf.Bytes(), wantHex) {
			t.Fatalf("zlib stream = % x, want % x", buf.Bytes(), wantHex)
		}
		r, err := zlib.NewReader(bytes.NewReader(buf.Bytes()))
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(r)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("decoded = %q, want %q", got, want)
		}
	})
}
