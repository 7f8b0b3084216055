package super_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/super"
)

const eps = 1e-4

func approxEqual(a, b float64) bool { return math.Abs(a-b) < eps }

// Not all in one plane, otherwise a mirror image could be fitted.
var points = cmmn.XyzSl{
	{0, 0, 0}, {1, 0, 0}, {0, 2, 0}, {0, 0, 3}, {1, 1, 1},
}

func move(x cmmn.XyzSl, f func(cmmn.Xyz) cmmn.Xyz) cmmn.XyzSl {
	y := make(cmmn.XyzSl, len(x))
	for i, p := range x {
		y[i] = f(p)
	}
	return y
}

func rotz90(p cmmn.Xyz) cmmn.Xyz { return cmmn.Xyz{X: -p.Y, Y: p.X, Z: p.Z} }

// rotAny is a rotation by 30 degrees about x then 50 about z, then a shift.
func rotAny(p cmmn.Xyz) cmmn.Xyz {
	a, b := 30*math.Pi/180, 50*math.Pi/180
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	y, z = y*math.Cos(a)-z*math.Sin(a), y*math.Sin(a)+z*math.Cos(a)
	x, y = x*math.Cos(b)-y*math.Sin(b), x*math.Sin(b)+y*math.Cos(b)
	return cmmn.Xyz{X: float32(x + 10), Y: float32(y - 3), Z: float32(z + 0.5)}
}

func det3(r [9]float64) float64 {
	return r[0]*(r[4]*r[8]-r[5]*r[7]) -
		r[1]*(r[3]*r[8]-r[5]*r[6]) +
		r[2]*(r[3]*r[7]-r[4]*r[6])
}

func TestSuperpose(t *testing.T) {
	var tests = []struct {
		name string
		f    func(cmmn.Xyz) cmmn.Xyz
	}{
		{"same", func(p cmmn.Xyz) cmmn.Xyz { return p }},
		{"shift", func(p cmmn.Xyz) cmmn.Xyz { return cmmn.Xyz{X: p.X + 1, Y: p.Y - 2, Z: p.Z + 3} }},
		{"rotz90", rotz90},
		{"rotz90 and shift", func(p cmmn.Xyz) cmmn.Xyz {
			q := rotz90(p)
			return cmmn.Xyz{X: q.X + 5, Y: q.Y - 2, Z: q.Z + 1}
		}},
		{"any", rotAny},
	}
	for _, tt := range tests {
		y := move(points, tt.f)
		tr, rmsd, err := super.Superpose(points, y)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if !approxEqual(rmsd, 0) {
			t.Errorf("%s: rmsd %v, wanted 0", tt.name, rmsd)
		}
		if d := det3(tr.Rot); !approxEqual(d, 1) {
			t.Errorf("%s: determinant %v", tt.name, d)
		}
		moved := move(points, func(p cmmn.Xyz) cmmn.Xyz { return tr.Apply(p) })
		if r, _ := super.RMSD(moved, y); !approxEqual(r, rmsd) {
			t.Errorf("%s: applying transform gives %v, Superpose said %v", tt.name, r, rmsd)
		}
	}
}

func TestRot90(t *testing.T) {
	y := move(points, rotz90)
	tr, _, err := super.Superpose(points, y)
	if err != nil {
		t.Fatal(err)
	}
	want := [9]float64{0, -1, 0, 1, 0, 0, 0, 0, 1}
	for i := range want {
		if !approxEqual(tr.Rot[i], want[i]) {
			t.Fatalf("rotation got %v want %v", tr.Rot, want)
		}
	}
	for i := range tr.Trans {
		if !approxEqual(tr.Trans[i], 0) {
			t.Fatalf("translation got %v want zero", tr.Trans)
		}
	}
}

// A mirror image cannot be reached by a rotation, so we should get a
// proper rotation and a deviation that is clearly not zero.
func TestMirror(t *testing.T) {
	y := move(points, func(p cmmn.Xyz) cmmn.Xyz { return cmmn.Xyz{X: p.X, Y: p.Y, Z: -p.Z} })
	tr, rmsd, err := super.Superpose(points, y)
	if err != nil {
		t.Fatal(err)
	}
	if d := det3(tr.Rot); !approxEqual(d, 1) {
		t.Errorf("determinant %v, got a reflection", d)
	}
	if rmsd < 0.1 {
		t.Errorf("mirror image fitted too well, rmsd %v", rmsd)
	}
}

func TestErrors(t *testing.T) {
	three := points[:3]
	if _, _, err := super.Superpose(three, move(three, rotz90)); !errors.Is(err, super.ErrTooFew) {
		t.Errorf("three points wanted ErrTooFew, got %v", err)
	}
	if _, _, err := super.Superpose(points, points[:4]); !errors.Is(err, super.ErrLength) {
		t.Errorf("wanted ErrLength, got %v", err)
	}
	if _, err := super.RMSD(points, points[:1]); !errors.Is(err, super.ErrLength) {
		t.Errorf("wanted ErrLength from RMSD, got %v", err)
	}
	if r, err := super.RMSD(nil, nil); r != 0 || err != nil {
		t.Errorf("empty sets got %v %v", r, err)
	}
}

// Seven CA atoms from two real structures. The RMSD is what two other
// methods (quaternion and SVD) agree on.
func TestKnown(t *testing.T) {
	x := cmmn.XyzSl{
		{-2.803, -15.373, 24.556}, {0.893, -16.062, 25.147},
		{1.368, -12.371, 25.885}, {-1.651, -12.153, 28.177},
		{-0.440, -15.218, 30.068}, {2.551, -13.273, 31.372},
		{0.105, -11.330, 33.567},
	}
	y := cmmn.XyzSl{
		{-14.739, -18.673, 15.040}, {-12.473, -15.810, 16.074},
		{-14.802, -13.307, 14.408}, {-17.782, -14.852, 16.171},
		{-16.124, -14.617, 19.584}, {-15.029, -11.037, 18.902},
		{-18.577, -10.001, 17.996},
	}
	for _, p := range [][2]cmmn.XyzSl{{x, y}, {y, x}} {
		_, rmsd, err := super.Superpose(p[0], p[1])
		if err != nil {
			t.Fatal(err)
		}
		if !approxEqual(rmsd, 0.719106) {
			t.Errorf("rmsd %f wanted 0.719106", rmsd)
		}
	}
}

func ExampleRMSD() {
	x := cmmn.XyzSl{{0, 0, 0}, {1, 1, 1}}
	y := cmmn.XyzSl{{1, 0, 0}, {2, 1, 1}}
	r, _ := super.RMSD(x, y)
	fmt.Printf("%.2f\n", r)
	// Output: 1.00
}
