// Copyright (c) 2024, zflate contributors.
// SPDX-License-Identifier: BSD-3-Clause

// Package cmdutil holds the small pieces of plumbing shared by the
// zflate command-line tools: atomic file output and a consistently
// formatted exit-on-error path.
package cmdutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Log is the shared logger every cmd/ tool reports through. Output goes
// to stderr so stdout stays free for piped compressed/decompressed data.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// WriteAtomic calls write with a handle to a temporary file alongside
// path, then renames it into place only once write returns nil. On any
// failure the temporary file is removed, so path either holds a
// complete prior version or nothing at all — never a partial write.
func WriteAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".zflate-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	succeeded := false
	defer func() {
		tmp.Close()
		if !succeeded {
			os.Remove(tmpName)
		}
	}()

	if err := write(tmp); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	succeeded = true
	return nil
}

// Fail logs err at Error level with kind and any extra fields, prints a
// colored one-line diagnostic to stderr, and exits the process with
// status 1. It never returns.
func Fail(kind string, err error, fields logrus.Fields) {
	if fields == nil {
		fields = logrus.Fields{}
	}
	fields["kind"] = kind
	Log.WithFields(fields).Error(err)
	fmt.Fprintln(os.Stderr, color.RedString("zflate: %s: %v", kind, err))
	os.Exit(1)
}

// Success prints a colored confirmation to stderr; purely cosmetic, the
// exit code and any logged fields are what scripts should rely on.
func Success(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, color.GreenString(format, args...))
}
