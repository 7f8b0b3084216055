package sw3d

import (
	"github.com/andrew-torda/sw3d/gotoh"
	"github.com/andrew-torda/sw3d/pdb/cmmn"
)

// Export some internals for testing

// Counts is the bookkeeping from walking along an alignment.
type Counts struct {
	NIdent, NSim, Pos, NAtom, NGaps int
	Seq1, Seq2, Symb                string
	NBuf                            int
}

func Project(ca1, ca2 []cmmn.CaAtom, pairs []gotoh.Pair, sim func(a, b byte) bool) Counts {
	p := project(ca1, ca2, pairs, sim)
	n := len(pairs)
	return Counts{
		NIdent: p.nIdent,
		NSim:   p.nSim,
		Pos:    p.pos,
		NAtom:  p.nAtom,
		NGaps:  p.nGaps,
		Seq1:   string(p.seq1[:n]),
		Seq2:   string(p.seq2[:n]),
		Symb:   string(p.symb[:n]),
		NBuf:   len(p.buf1),
	}
}
