// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Command roundtrip compresses stdin, decompresses that result, and
// fails if the decoded bytes don't exactly match the input. On success
// it also copies the decoded bytes to stdout.
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/zflate/zflate/compress/flate"
	"github.com/zflate/zflate/compress/gzip"
	"github.com/zflate/zflate/compress/zlib"
	"github.com/zflate/zflate/internal/cmdutil"
)

var cli struct {
	Container string `help:"Container format to round-trip through." enum:"raw,gzip,zlib" default:"gzip" short:"c"`
	Level     int    `help:"Compression level, 0-9 (-2 for Huffman-only)." default:"6" short:"l"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("roundtrip"),
		kong.Description("Compress then decompress stdin, verifying byte-for-byte equality."),
		kong.UsageOnError(),
	)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		cmdutil.Fail("ReadFailed", err, nil)
	}

	compressed := &bytes.Buffer{}
	if err := compress(compressed, input); err != nil {
		cmdutil.Fail("WriteFailed", err, logrus.Fields{"container": cli.Container, "level": cli.Level})
	}

	decoded, err := decompress(compressed.Bytes())
	if err != nil {
		cmdutil.Fail("CorruptedStream", err, logrus.Fields{"container": cli.Container})
	}

	if !bytes.Equal(input, decoded) {
		cmdutil.Fail("CorruptedStream", fmt.Errorf("round trip mismatch: %d bytes in, %d bytes out", len(input), len(decoded)), logrus.Fields{"container": cli.Container})
	}

	if _, err := os.Stdout.Write(decoded); err != nil {
		cmdutil.Fail("WriteFailed", err, nil)
	}

	cmdutil.Log.WithFields(logrus.Fields{
		"container":  cli.Container,
		"level":      cli.Level,
		"raw_bytes":  len(input),
		"compressed": compressed.Len(),
	}).Info("roundtrip verified")
}

func compress(dst *bytes.Buffer, src []byte) error {
	var w io.WriteCloser
	switch cli.Container {
	case "raw":
		w = flate.NewWriter(dst, cli.Level)
	case "gzip":
		w = gzip.NewWriterLevel(dst, cli.Level)
	case "zlib":
		w = zlib.NewWriterLevel(dst, cli.Level)
	}
	if _, err := w.Write(src); err != nil {
		return err
	}
	return w.Close()
}

func decompress(src []byte) ([]byte, error) {
	var r io.Reader
	switch cli.Container {
	case "raw":
		r = flate.NewReader(bytes.NewReader(src))
	case "gzip":
		gr, err := gzip.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		r = gr
	case "zlib":
		zr, err := zlib.NewReader(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		r = zr
	}
	return io.ReadAll(r)
}
