// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Command gzip compresses a file to gzip, mirroring the standard gzip(1)
// tool's single-file behavior.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/VividCortex/ewma"
	pb "github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"

	"github.com/zflate/zflate/compress/flate"
	"github.com/zflate/zflate/compress/gzip"
	"github.com/zflate/zflate/internal/cmdutil"
)

var (
	level = flag.Int("level", flate.DefaultCompression, "compression level, 0-9 (-2 for Huffman-only)")
	quiet = flag.Bool("q", false, "suppress the progress bar")
)

// meteredReader feeds each Read's instantaneous throughput into an EWMA, so
// the reported rate tracks recent speed rather than the whole-file average.
type meteredReader struct {
	r   io.Reader
	avg ewma.MovingAverage
}

func (m *meteredReader) Read(p []byte) (int, error) {
	start := time.Now()
	n, err := m.r.Read(p)
	if n > 0 {
		if elapsed := time.Since(start).Seconds(); elapsed > 0 {
			m.avg.Add(float64(n) / elapsed)
		}
	}
	return n, err
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: gzip [-level N] [-q] PATH")
		os.Exit(2)
	}
	path := flag.Arg(0)
	dest := path + ".gz"

	in, err := os.Open(path)
	if err != nil {
		cmdutil.Fail("ReadFailed", err, logrus.Fields{"path": path})
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		cmdutil.Fail("ReadFailed", err, logrus.Fields{"path": path})
	}

	start := time.Now()
	avg := ewma.NewMovingAverage()
	var reader io.Reader = &meteredReader{r: in, avg: avg}
	var bar *pb.ProgressBar
	if !*quiet && info.Size() > 0 {
		bar = pb.Full.Start64(info.Size())
		bar.Set(pb.Bytes, true)
		reader = bar.NewProxyReader(reader)
	}

	err = cmdutil.WriteAtomic(dest, func(out *os.File) error {
		w := gzip.NewWriterLevel(out, *level)
		_, copyErr := io.Copy(w, reader)
		if copyErr != nil {
			return fmt.Errorf("compress %s: %w", path, copyErr)
		}
		return w.Close()
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		cmdutil.Fail("WriteFailed", err, logrus.Fields{"path": path, "dest": dest})
	}

	cmdutil.Success("%s -> %s (avg %.0f B/s)", path, dest, avg.Value())
	cmdutil.Log.WithFields(logrus.Fields{
		"path": path, "dest": dest, "duration": time.Since(start),
	}).Info("gzip complete")
}
