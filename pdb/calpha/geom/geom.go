// Package geom checks the geometry of a CA trace. Consecutive alpha
// carbons should be about 3.8 Å apart. Much more means the chain is
// broken, much less means something is wrong with the coordinates.
package geom

import (
	"math"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
)

const (
	mindist  = 2.6
	mindist2 = mindist * mindist
	maxdist  = 4.1 // max dist for c_alpha to c_alpha
	maxdist2 = maxdist * maxdist
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrTooFar   = Error("CA atoms too far apart")
	ErrTooClose = Error("CA atoms too close")
)

// xyzhelper makes the code below a bit more compact. Returns distance
// squared in one dimension or an error if it is already too long.
func xyzhelper(r1, r2 float32) (float32, error) {
	r := r1 - r2
	r = r * r
	if r >= maxdist2 {
		return r, ErrTooFar
	}
	return r, nil
}

// XyzDist gets the distance between two neighbouring alpha carbons, but
// if it is bigger than maxdist or smaller than mindist, it returns
// an error. If the error is ErrTooFar, the distance is only a lower bound.
func XyzDist(x1, x2 cmmn.Xyz) (float32, error) {
	var xd, yd, zd float32
	var err error
	if xd, err = xyzhelper(x1.X, x2.X); err != nil {
		return float32(math.Sqrt(float64(xd))), err
	}
	if yd, err = xyzhelper(x1.Y, x2.Y); err != nil {
		return float32(math.Sqrt(float64(yd))), err
	}
	if zd, err = xyzhelper(x1.Z, x2.Z); err != nil {
		return float32(math.Sqrt(float64(zd))), err
	}
	r := xd + yd + zd
	d := float32(math.Sqrt(float64(r)))
	switch {
	case r >= maxdist2:
		return d, ErrTooFar
	case r <= mindist2:
		return d, ErrTooClose
	}
	return d, nil
}

// Break is a place where atom After and the next one are not properly
// bonded.
type Break struct {
	After int
	Dist  float32
	Err   error
}

// Breaks walks along a chain and reports every pair of neighbours that
// are too far apart or too close. Atoms with broken coordinates are
// skipped.
func Breaks(atoms []cmmn.CaAtom) []Break {
	var brks []Break
	for i := 1; i < len(atoms); i++ {
		a, b := &atoms[i-1], &atoms[i]
		if !a.Ok() || !b.Ok() {
			continue
		}
		if d, err := XyzDist(a.Xyz, b.Xyz); err != nil {
			brks = append(brks, Break{After: i - 1, Dist: d, Err: err})
		}
	}
	return brks
}
