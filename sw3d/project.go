package sw3d

import (
	"github.com/andrew-torda/sw3d/gotoh"
	"github.com/andrew-torda/sw3d/pdb/cmmn"
)

// Characters in the line between the two aligned sequences.
const (
	symbIdent   = '|'
	symbSimilar = ':'
	symbNone    = ' '
)

// projection is what we get by walking along an alignment.
// buf1[k] and buf2[k] are the coordinates of the k'th aligned pair.
type projection struct {
	buf1, buf2       cmmn.XyzSl
	se1, se2         []int  // one per column, -1 on the gap side
	seq1, seq2, symb []byte // n+m+1 long, zero after the last column
	nIdent, nSim     int
	pos              int // columns with a residue on both sides
	nAtom            int // same as pos, it is the length of buf1, buf2
	nGaps            int
}

// project turns a list of aligned pairs into coordinates, counts and
// strings. sim says if two different residues are similar.
func project(ca1, ca2 []cmmn.CaAtom, pairs []gotoh.Pair, sim func(a, b byte) bool) *projection {
	ncol := len(pairs)
	nbuf := len(ca1) + len(ca2) + 1
	p := &projection{
		buf1: make(cmmn.XyzSl, 0, ncol),
		buf2: make(cmmn.XyzSl, 0, ncol),
		se1:  make([]int, ncol),
		se2:  make([]int, ncol),
		seq1: make([]byte, nbuf),
		seq2: make([]byte, nbuf),
		symb: make([]byte, nbuf),
	}
	for k, pr := range pairs {
		p.se1[k], p.se2[k] = pr.I, pr.J
		p.symb[k] = symbNone
		if pr.IsGap() {
			p.nGaps++
			p.seq1[k], p.seq2[k] = cmmn.GapChar, cmmn.GapChar
			if pr.I != gotoh.Gap {
				p.seq1[k] = ca1[pr.I].OneLetter()
			}
			if pr.J != gotoh.Gap {
				p.seq2[k] = ca2[pr.J].OneLetter()
			}
			continue
		}
		a1, a2 := &ca1[pr.I], &ca2[pr.J]
		p.buf1 = append(p.buf1, a1.Xyz)
		p.buf2 = append(p.buf2, a2.Xyz)
		c1, c2 := a1.OneLetter(), a2.OneLetter()
		p.seq1[k], p.seq2[k] = c1, c2
		switch {
		case c1 == c2:
			p.nIdent++
			p.nSim++
			p.symb[k] = symbIdent
		case sim(c1, c2):
			p.nSim++
			p.symb[k] = symbSimilar
		}
		p.pos++
		p.nAtom++
	}
	return p
}

// ratios gives identity and similarity as fractions of the aligned
// (not gapped) positions. With nothing aligned, both are zero.
func (p *projection) ratios() (identity, similarity float64) {
	if p.pos == 0 {
		return 0, 0
	}
	n := float64(p.pos)
	return float64(p.nIdent) / n, float64(p.nSim) / n
}
