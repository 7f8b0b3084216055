// Package super superimposes one set of points on another.
// It is the usual Kabsch method. Move both sets to their centres,
// get the 3x3 covariance matrix, take its singular value decomposition
// and build the rotation from that. If the rotation would be a
// reflection, flip the sign of the last singular vector.
// Kabsch, W. Acta Cryst. (1976) A32, 922-923.
package super

import (
	"errors"
	"fmt"
	"math"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"gonum.org/v1/gonum/mat"
)

// MinAtoms is the fewest points we will fit. With three, the
// answer is not really a superposition.
const MinAtoms = 4

var (
	ErrTooFew = errors.New("super: too few points to superimpose")
	ErrLength = errors.New("super: point sets differ in length")
	ErrSVD    = errors.New("super: singular value decomposition failed")
)

// Transform moves a point from the first set onto the second.
// Rot is row major.
type Transform struct {
	Rot   [9]float64 `json:"rot"`
	Trans [3]float64 `json:"trans"`
}

// Apply rotates then translates a single point.
func (t *Transform) Apply(p cmmn.Xyz) cmmn.Xyz {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	r := &t.Rot
	return cmmn.Xyz{
		X: float32(r[0]*x + r[1]*y + r[2]*z + t.Trans[0]),
		Y: float32(r[3]*x + r[4]*y + r[5]*z + t.Trans[1]),
		Z: float32(r[6]*x + r[7]*y + r[8]*z + t.Trans[2]),
	}
}

// centre returns the mean position and an n x 3 matrix of the points
// moved to that centre.
func centre(x cmmn.XyzSl) ([3]float64, *mat.Dense) {
	var c [3]float64
	for _, p := range x {
		c[0] += float64(p.X)
		c[1] += float64(p.Y)
		c[2] += float64(p.Z)
	}
	n := float64(len(x))
	for i := range c {
		c[i] /= n
	}
	d := mat.NewDense(len(x), 3, nil)
	for i, p := range x {
		d.Set(i, 0, float64(p.X)-c[0])
		d.Set(i, 1, float64(p.Y)-c[1])
		d.Set(i, 2, float64(p.Z)-c[2])
	}
	return c, d
}

// Superpose finds the rotation and translation that take x onto y
// with the smallest root mean square deviation and returns them with
// the deviation. x[i] is paired with y[i].
func Superpose(x, y cmmn.XyzSl) (Transform, float64, error) {
	var t Transform
	if len(x) != len(y) {
		return t, 0, fmt.Errorf("%w: %d and %d", ErrLength, len(x), len(y))
	}
	if len(x) < MinAtoms {
		return t, 0, fmt.Errorf("%w: have %d, need %d", ErrTooFew, len(x), MinAtoms)
	}
	cx, xc := centre(x)
	cy, yc := centre(y)

	var h mat.Dense
	h.Mul(xc.T(), yc)
	var svd mat.SVD
	if ok := svd.Factorize(&h, mat.SVDFull); !ok {
		return t, 0, ErrSVD
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	var vut mat.Dense
	vut.Mul(&v, u.T())
	d := 1.0
	if mat.Det(&vut) < 0 {
		d = -1
	}
	var vd, rot mat.Dense
	vd.Mul(&v, mat.NewDiagDense(3, []float64{1, 1, d}))
	rot.Mul(&vd, u.T())

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t.Rot[3*i+j] = rot.At(i, j)
		}
	}
	for i := 0; i < 3; i++ {
		t.Trans[i] = cy[i] - (t.Rot[3*i]*cx[0] + t.Rot[3*i+1]*cx[1] + t.Rot[3*i+2]*cx[2])
	}

	rmsd := fitRMSD(&t, x, y)
	if math.IsNaN(rmsd) || math.IsInf(rmsd, 0) {
		return Transform{}, 0, fmt.Errorf("%w: coordinates not finite", ErrSVD)
	}
	return t, rmsd, nil
}

// fitRMSD works in float64 so we do not lose the small deviations.
func fitRMSD(t *Transform, x, y cmmn.XyzSl) float64 {
	var sum float64
	r := &t.Rot
	for i, p := range x {
		px, py, pz := float64(p.X), float64(p.Y), float64(p.Z)
		dx := r[0]*px + r[1]*py + r[2]*pz + t.Trans[0] - float64(y[i].X)
		dy := r[3]*px + r[4]*py + r[5]*pz + t.Trans[1] - float64(y[i].Y)
		dz := r[6]*px + r[7]*py + r[8]*pz + t.Trans[2] - float64(y[i].Z)
		sum += dx*dx + dy*dy + dz*dz
	}
	return math.Sqrt(sum / float64(len(x)))
}

// RMSD is the deviation between two sets of points as they stand,
// without any fitting. Empty sets give zero.
func RMSD(x, y cmmn.XyzSl) (float64, error) {
	if len(x) != len(y) {
		return 0, fmt.Errorf("%w: %d and %d", ErrLength, len(x), len(y))
	}
	if len(x) == 0 {
		return 0, nil
	}
	var sum float64
	for i := range x {
		dx := float64(x[i].X) - float64(y[i].X)
		dy := float64(x[i].Y) - float64(y[i].Y)
		dz := float64(x[i].Z) - float64(y[i].Z)
		sum += dx*dx + dy*dy + dz*dz
	}
	return math.Sqrt(sum / float64(len(x))), nil
}
