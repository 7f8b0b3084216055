// Package brokenio wraps an io.ReadCloser so that reads fail.
// Typical use: you have a file pointer, a reader from a compressed
// source or an http source. You write
// reader = brokenio.NewReader(reader, seed) to wrap the old reader.
// Everything then functions as before, but with artificial errors.
// When we damage data, we return an error. When we return nothing on
// the first read, there is no error. This is what one often sees on a
// zero length file.
// It is only meant for testing the coordinate and matrix readers.
package brokenio

import (
	"fmt"
	"io"
	"math/rand"
)

// A BrknRdrClsr is modelled on the various Readers in the standard
// library, but with variables controlling the frequency of errors.
// These values are the fraction of time an error will take place,
// so a value of 0.05 means failure in 5% of the cases.
type BrknRdrClsr struct {
	rdr_orig     io.ReadCloser // Wrapped reader
	rnd          *rand.Rand
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32
	fracFail     float32
	nCalled      int
	nByte        int
}

// SetFracFail sets the fraction of each damaged read that is wiped out.
func (r *BrknRdrClsr) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *BrknRdrClsr) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a read failing.
// It must be between zero and 1.
func (r *BrknRdrClsr) SetProbFail(prob float32) { r.probFail = prob }

// NBytes is how much came through from the wrapped reader.
func (r *BrknRdrClsr) NBytes() int { return r.nByte }

// NewReader returns a wrapper around rIn. The seed makes the failures
// repeatable. Until one of the Set functions is called, nothing fails.
func NewReader(rIn io.ReadCloser, seed int64) *BrknRdrClsr {
	return &BrknRdrClsr{
		rdr_orig: rIn,
		rnd:      rand.New(rand.NewSource(seed)),
		fracFail: 0.5,
	}
}

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	err := fmt.Errorf("brokenio: wiped out last %d of %d bytes", len(p)-nkeep, len(p))
	clear(p[nkeep:])
	return nkeep, err
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability given by probFail.
// On the first call, we might return zero data to simulate a zero length file.
func (r *BrknRdrClsr) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		return 0, io.EOF
	}
	n, err = r.rdr_orig.Read(p)
	r.nCalled++
	r.nByte += n
	if n > 0 && r.rnd.Float32() < r.probFail && r.fracFail > 0 {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *BrknRdrClsr) Close() error { return r.rdr_orig.Close() }
