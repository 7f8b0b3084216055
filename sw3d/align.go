package sw3d

import (
	"fmt"

	"github.com/andrew-torda/sw3d/gotoh"
	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/submat"
	"github.com/andrew-torda/sw3d/super"
)

// Align aligns the sequences of ca1 and ca2 and superimposes the
// atoms of the aligned pairs.
// Either chain may be empty. That, or two chains with nothing in
// common, gives an empty alignment and not an error.
// On error, there is no result.
func Align(ca1, ca2 []cmmn.CaAtom, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	s1, s2 := cmmn.Seq(ca1), cmmn.Seq(ca2)
	scr_mat, err := p.matrix().ScoreSeqs(s1, s2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlignment, err)
	}
	pairs, score, err := gotoh.Align(scr_mat, p.Pnlty)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlignment, err)
	}

	prj := project(ca1, ca2, pairs, submat.Similar)
	r := newResult(len(ca1), len(ca2), score, prj)
	if prj.nAtom < super.MinAtoms {
		return r, nil
	}
	tr, rmsd, err := super.Superpose(prj.buf1, prj.buf2)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAlignment, err)
	}
	r.Rmsd, r.Transform = &rmsd, &tr
	return r, nil
}
