// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Command gunzip decompresses a .gz file produced by this module (or any
// conforming RFC 1952 encoder), mirroring gunzip(1)'s single-file
// behavior.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zflate/zflate/compress/gzip"
	"github.com/zflate/zflate/internal/cmdutil"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gunzip PATH.gz")
		os.Exit(2)
	}
	path := flag.Arg(0)
	if !strings.HasSuffix(path, ".gz") {
		cmdutil.Fail("BadContainerHeader", fmt.Errorf("%s: not a .gz file", path), nil)
	}
	dest := strings.TrimSuffix(path, ".gz")

	in, err := os.Open(path)
	if err != nil {
		cmdutil.Fail("ReadFailed", err, logrus.Fields{"path": path})
	}
	defer in.Close()

	r, err := gzip.NewReader(in)
	if err != nil {
		cmdutil.Fail(kindOf(err), err, logrus.Fields{"path": path})
	}
	defer r.Close()

	start := time.Now()
	var n int64
	err = cmdutil.WriteAtomic(dest, func(out *os.File) error {
		var copyErr error
		n, copyErr = io.Copy(out, r)
		if copyErr != nil {
			return fmt.Errorf("decompress %s: %w", path, copyErr)
		}
		return nil
	})
	if err != nil {
		cmdutil.Fail(kindOf(err), err, logrus.Fields{"path": path, "dest": dest})
	}

	cmdutil.Success("%s -> %s (%d bytes)", path, dest, n)
	cmdutil.Log.WithFields(logrus.Fields{
		"path": path, "dest": dest, "duration": time.Since(start),
	}).Info("gunzip complete")
}

// kindOf maps this module's sentinel container errors to the diagnostic
// kind names reported on failure; anything else is a generic
// read/decode failure.
func kindOf(err error) string {
	switch {
	case errors.Is(err, gzip.ErrBadHeader):
		return "BadContainerHeader"
	case errors.Is(err, gzip.ErrBadFooter):
		return "BadContainerFooter"
	default:
		return "CorruptedStream"
	}
}
