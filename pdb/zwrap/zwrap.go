// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Whether or not something is compressed is decided by looking at the
// first two bytes, so it works on streams that cannot seek.

package zwrap

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
)

var gzMagic = [2]byte{0x1f, 0x8b}

type FpGzip struct { // This is what we return.
	fp   io.ReadCloser
	rdr  io.Reader // where Read really comes from
	zrdr *gzip.Reader
}

// IsGzip says if b starts like a gzipped file.
func IsGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == gzMagic[0] && b[1] == gzMagic[1]
}

// Close closes the decompressor, then the underlying backing readCloser.
// It should work if the source is a file or an http stream.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	return fc.rdr.Read(p)
}

// Compressed says if we are reading through a decompressor.
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source like a file pointer or http stream and wraps it
// so the correct Close and Read will be called. If the source is not
// gzipped, that is an error.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, rdr: zrdr, zrdr: zrdr}, nil
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary.
// The magic bytes are peeked at through a buffer, so nothing is lost
// and the source does not have to seek.
func WrapMaybe(fp io.ReadCloser) (*FpGzip, error) {
	brdr := bufio.NewReader(fp)
	magic, err := brdr.Peek(len(gzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !IsGzip(magic) {
		return &FpGzip{fp: fp, rdr: brdr}, nil // Leave the zrdr nil
	}
	zrdr, err := gzip.NewReader(brdr)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, rdr: zrdr, zrdr: zrdr}, nil
}
