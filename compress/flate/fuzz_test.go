//go:build go1.18
// +build go1.18

package flate

import (
	"bytes"
	"io"
	"testing"
)

func FuzzInflate(f *testing.F) {
	data := opticks(f)
	f.Add(data)
	f.Fuzz(func(t *testing.T, source []byte) {
		input := compress(source)
		r := NewReader(bytes.NewReader(input))
		var err error
		data, err := io.ReadAll(r)
		n := len(data)
		if err != nil && err != io.EOF {
			t.Fatal(err, n, bytes.Equal(data[:n], source[:n]))
		}
		if !bytes.Equal(data[:n], source) {
			t.Fatal()
		}
	})
}

// FuzzRoundTrip exercises this package's own Writer against its own
// Reader at every level, unlike FuzzInflate which only checks that this
// decoder accepts the standard library's encoder output.
func FuzzRoundTrip(f *testing.F) {
	data := opticks(f)
	f.Add(data)
	levels := []int{HuffmanOnly, NoCompression, BestSpeed, DefaultCompression, BestCompression}
	f.Fuzz(func(t *testing.T, source []byte) {
		for _, lvl := range levels {
			buf := bytes.NewBuffer(nil)
			w := NewWriter(buf, lvl)
			if _, err := w.Write(source); err != nil {
				t.Fatal(lvl, err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(lvl, err)
			}
			got, err := io.ReadAll(NewReader(bytes.NewReader(buf.Bytes())))
			if err != nil {
				t.Fatal(lvl, err)
			}
			if !bytes.Equal(got, source) {
				t.Fatal(lvl, "round trip mismatch")
			}
		}
	})
}
