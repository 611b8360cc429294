// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bytes"
	"io"
	"testing"

	realzlib "compress/zlib"

	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		[]byte("Hello world\n"),
		bytes.Repeat([]byte("ABCDEABCD ABCDEABCD "), 500),
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
	}
}

func TestReaderReadsRealZlibStream(t *testing.T) {
	want := []byte("Hello world\n")
	buf := &bytes.Buffer{}
	rw := realzlib.NewWriter(buf)
	_, err := rw.Write(want)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	r, err := NewReader(buf)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReaderRejectsBadHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte{0x00, 0x00}))
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
