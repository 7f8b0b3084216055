// Feb 2018

// Package gotoh does local pair-wise alignments with affine gap
// penalties (Smith-Waterman with Gotoh's three matrices).
// The caller fills out a matrix of scores for every pair of residues,
// usually with submat.ScoreSeqs, and gets back the aligned pairs.
// Nothing is kept between calls, so one can align from as many
// goroutines as one likes.
package gotoh

import (
	"errors"
	"fmt"
	"math"

	"github.com/andrew-torda/matrix"
)

var (
	// ErrPenalty means a gap penalty was negative, infinite or not a number.
	ErrPenalty = errors.New("gotoh: gap penalties must be finite and not negative")
	// ErrShape means the score matrix has rows of different lengths.
	ErrShape = errors.New("gotoh: score matrix rows differ in length")
	// ErrTraceback means the traceback could not find where a score came
	// from. It should not happen.
	ErrTraceback = errors.New("gotoh: inconsistent traceback")
)

// Pnlty has the gap opening and extension costs. They are costs, so
// they are given as positive numbers and subtracted.
// A gap of length k costs Open + (k-1) * Ext.
type Pnlty struct {
	Open float32
	Ext  float32
}

// Validate says if the penalties can be used.
func (p Pnlty) Validate() error {
	for _, f := range []float32{p.Open, p.Ext} {
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) || f < 0 {
			return fmt.Errorf("%w: open %v extend %v", ErrPenalty, p.Open, p.Ext)
		}
	}
	return nil
}

type Match_scr struct {
	Match    float32 // matched characters
	Mismatch float32 // mismatched
}

// Gap marks the missing side of a Pair.
const Gap = -1

// Pair is one column of an alignment. I indexes the first sequence,
// J the second. One of them may be Gap, never both.
type Pair struct {
	I, J int
}

// IsGap is true if either side is missing.
func (p Pair) IsGap() bool { return p.I == Gap || p.J == Gap }

const (
	inM byte = iota // last move was a match / substitution
	inX             // residue from the first sequence against a gap
	inY             // residue from the second sequence against a gap
)

const bigf float32 = -1e+38

// IdentScore fills out a score matrix using identity. Values for match/mismatch
// come from the scr structure.
// for an M x N pair, we have an M x N matrix. There is no extra room
// at the start and end.
func IdentScore(s []byte, t []byte, scr *Match_scr) (smat *matrix.FMatrix2d) {
	smat = matrix.NewFMatrix2d(len(s), len(t))
	mat := smat.Mat
	for i, cs := range s {
		for j, ct := range t {
			if cs == ct {
				mat[i][j] = scr.Match
			} else {
				mat[i][j] = scr.Mismatch
			}
		}
	}
	return
}

// Strings gives the two gapped strings for an alignment. It is mainly
// for debugging and tests.
func Strings(pairlist []Pair, s, t []byte) (string, string) {
	outs1 := make([]byte, len(pairlist))
	outs2 := make([]byte, len(pairlist))
	for k, p := range pairlist {
		outs1[k], outs2[k] = '-', '-'
		if p.I != Gap {
			outs1[k] = s[p.I]
		}
		if p.J != Gap {
			outs2[k] = t[p.J]
		}
	}
	return string(outs1), string(outs2)
}

// dpMats holds the three dynamic programming matrices. Each is
// (n+1) x (m+1) with row and column zero set to bigf.
type dpMats struct {
	m, x, y  [][]float32
	opn, ext float32
}

func newDpMats(nrow, ncol int, pnlty Pnlty) *dpMats {
	d := &dpMats{
		m:   matrix.NewFMatrix2d(nrow+1, ncol+1).Mat,
		x:   matrix.NewFMatrix2d(nrow+1, ncol+1).Mat,
		y:   matrix.NewFMatrix2d(nrow+1, ncol+1).Mat,
		opn: pnlty.Open,
		ext: pnlty.Ext,
	}
	for _, mat := range [][][]float32{d.m, d.x, d.y} {
		for j := range mat[0] {
			mat[0][j] = bigf
		}
		for i := range mat {
			mat[i][0] = bigf
		}
	}
	return d
}

// fill walks along each row, left to right. In each recurrence the
// first term wins a tie and traceback tries the terms in the same order.
func (d *dpMats) fill(scr [][]float32) {
	m, x, y := d.m, d.x, d.y
	for i := 1; i < len(m); i++ {
		for j := 1; j < len(m[i]); j++ {
			best := float32(0) // Local alignment, so we can always restart
			if v := m[i-1][j-1]; v > best {
				best = v
			}
			if v := x[i-1][j-1]; v > best {
				best = v
			}
			if v := y[i-1][j-1]; v > best {
				best = v
			}
			m[i][j] = scr[i-1][j-1] + best

			p := m[i-1][j] - d.opn // gap in the second sequence
			if v := x[i-1][j] - d.ext; v > p {
				p = v
			}
			if v := y[i-1][j] - d.opn; v > p {
				p = v
			}
			x[i][j] = p

			q := m[i][j-1] - d.opn // gap in the first sequence
			if v := y[i][j-1] - d.ext; v > q {
				q = v
			}
			if v := x[i][j-1] - d.opn; v > q {
				q = v
			}
			y[i][j] = q
		}
	}
}

// best finds the highest cell. Scanning is row by row and a later cell
// has to be strictly bigger to win, so ties go to the first one seen.
// Within a cell, m comes before x and y.
func (d *dpMats) best() (max_scr float32, st byte, max_i, max_j int) {
	for i := 1; i < len(d.m); i++ {
		for j := 1; j < len(d.m[i]); j++ {
			if d.m[i][j] > max_scr {
				max_scr, st, max_i, max_j = d.m[i][j], inM, i, j
			}
			if d.x[i][j] > max_scr {
				max_scr, st, max_i, max_j = d.x[i][j], inX, i, j
			}
			if d.y[i][j] > max_scr {
				max_scr, st, max_i, max_j = d.y[i][j], inY, i, j
			}
		}
	}
	return
}

// traceback starts from cell i, j in matrix st and walks back until
// the zero restart. Each step recomputes the recurrence terms, so we
// need no matrix of directions.
func (d *dpMats) traceback(scr [][]float32, st byte, i, j int) ([]Pair, error) {
	m, x, y := d.m, d.x, d.y
	pairlist := make([]Pair, 0, i+j)
	for {
		if i < 1 || j < 1 {
			return nil, fmt.Errorf("%w: walked off the matrix", ErrTraceback)
		}
		switch st {
		case inM:
			pairlist = append(pairlist, Pair{i - 1, j - 1})
			s, v := scr[i-1][j-1], m[i][j]
			switch {
			case v == s: // restarted here
				reverse(pairlist)
				return pairlist, nil
			case s+m[i-1][j-1] == v:
				st = inM
			case s+x[i-1][j-1] == v:
				st = inX
			case s+y[i-1][j-1] == v:
				st = inY
			default:
				return nil, fmt.Errorf("%w at %d %d", ErrTraceback, i, j)
			}
			i--
			j--
		case inX:
			pairlist = append(pairlist, Pair{i - 1, Gap})
			v := x[i][j]
			switch {
			case m[i-1][j]-d.opn == v:
				st = inM
			case x[i-1][j]-d.ext == v:
				st = inX
			case y[i-1][j]-d.opn == v:
				st = inY
			default:
				return nil, fmt.Errorf("%w at %d %d", ErrTraceback, i, j)
			}
			i--
		case inY:
			pairlist = append(pairlist, Pair{Gap, j - 1})
			v := y[i][j]
			switch {
			case m[i][j-1]-d.opn == v:
				st = inM
			case y[i][j-1]-d.ext == v:
				st = inY
			case x[i][j-1]-d.opn == v:
				st = inX
			default:
				return nil, fmt.Errorf("%w at %d %d", ErrTraceback, i, j)
			}
			j--
		}
	}
}

func reverse(pairlist []Pair) {
	for i, j := 0, len(pairlist)-1; i < j; i, j = i+1, j-1 {
		pairlist[i], pairlist[j] = pairlist[j], pairlist[i]
	}
}

// Align finds the best local alignment given a matrix of scores
// (len(s) rows, len(t) columns) and gap penalties.
// It returns the aligned pairs in order and the score. If nothing
// scores above zero, the alignment is empty and the score is zero.
// Gotoh, O. J. Mol. Biol. (1982) 162, 705-708, without the bugs
// described by Flouri, Kobert, Rognes and Stamatakis (2015),
// doi: http://dx.doi.org/10.1101/031500
func Align(scr_mat *matrix.FMatrix2d, pnlty Pnlty) (pairlist []Pair, max_scr float32, err error) {
	if err = pnlty.Validate(); err != nil {
		return nil, 0, err
	}
	if scr_mat == nil || len(scr_mat.Mat) == 0 {
		return nil, 0, nil
	}
	scr := scr_mat.Mat
	ncol := len(scr[0])
	for _, row := range scr {
		if len(row) != ncol {
			return nil, 0, ErrShape
		}
	}
	if ncol == 0 {
		return nil, 0, nil
	}
	d := newDpMats(len(scr), ncol, pnlty)
	d.fill(scr)
	max_scr, st, max_i, max_j := d.best()
	if max_scr <= 0 {
		return nil, 0, nil
	}
	if pairlist, err = d.traceback(scr, st, max_i, max_j); err != nil {
		return nil, 0, err
	}
	return pairlist, max_scr, nil
}
