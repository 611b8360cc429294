// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package gzip

import (
	"bytes"
	"io"
	"testing"

	realgzip "compress/gzip"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("Hello world\n"),
		bytes.Repeat([]byte("Blah blah blah blah blah!"), 200),
	}
	for _, want := range cases {
		buf := &bytes.Buffer{}
		w := NewWriter(buf)
		_, err := w.Write(want)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		r, err := NewReader(buf)
		require.NoError(t, err)
		got, err := io.ReadAll(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
		require.NoError(t, r.Close())
	}
}

func TestReaderToleratesRealGzipHeaders(t *testing.T) {
	want := []byte("Hello world\n")
	buf := &bytes.Buffer{}
	rw, err := realgzip.NewWriterLevel(buf, realgzip.DefaultCompression)
	require.NoError(t, err)
	rw.Name = "hello.txt"
	rw.Comment = "a friendly greeting"
	_, err = rw.Write(want)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	r, err := NewReader(buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReaderRejectsBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("not a gzip stream")))
	require.ErrorIs(t, err, ErrBadHeader)
}

func TestReaderRejectsCorruptFooter(t *testing.T) {
	buf := &bytes.Buffer{}
	w := NewWriter(buf)
	_, err := w.Write([]byte("Hello world\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xff

	r, err := NewReader(bytes.NewReader(corrupted))
	require.NoError(t, err)
	_, err = io.ReadAll(r)
	require.ErrorIs(t, err, ErrBadFooter)
}
