// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Command decompress reads a compressed stream from stdin and writes the
// decoded bytes to stdout, for any of this module's three containers.
package main

import (
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
	Container string `help:"Container format of stdin." enum:"raw,gzip,zlib" default:"gzip" short:"c"`
}

func main() {
	kong.Parse(&cli,
		kong.Name("decompress"),
		kong.Description("Decode a raw/gzip/zlib stream from stdin to stdout."),
		kong.UsageOnError(),
	)

	var src io.Reader
	switch cli.Container {
	case "raw":
		src = flate.NewReader(os.Stdin)
	case "gzip":
		r, err := gzip.NewReader(os.Stdin)
		if err != nil {
			cmdutil.Fail("BadContainerHeader", err, logrus.Fields{"container": cli.Container})
		}
		src = r
	case "zlib":
		r, err := zlib.NewReader(os.Stdin)
		if err != nil {
			cmdutil.Fail("BadContainerHeader", err, logrus.Fields{"container": cli.Container})
		}
		src = r
	}

	n, err := io.Copy(os.Stdout, src)
	if err != nil {
		cmdutil.Fail("CorruptedStream", fmt.Errorf("at offset %d: %w", n, err), logrus.Fields{"container": cli.Container})
	}
	cmdutil.Log.WithFields(logrus.Fields{"container": cli.Container, "bytes": n}).Info("decompress complete")
}
