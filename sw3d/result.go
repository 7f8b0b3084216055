package sw3d

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/sw3d/super"
)

const (
	AlgorithmName = "Smith-Waterman superposition"
	Version       = "1.1"
)

// Result is everything we know about one alignment.
// AlignSe1 and AlignSe2 have one entry per column and are -1 where
// that chain has a gap. AlnSeq1, AlnSeq2 and AlnSymb are
// Ca1Length+Ca2Length+1 bytes long and zero after the last column;
// Query, Target and Symbols give just the used part.
// Rmsd and Transform are nil if fewer than super.MinAtoms pairs were
// aligned. Transform moves the first chain onto the second.
type Result struct {
	AlgorithmName string           `json:"algorithm"`
	Version       string           `json:"version"`
	Score         float64          `json:"score"`
	Ca1Length     int              `json:"ca1_length"`
	Ca2Length     int              `json:"ca2_length"`
	AlnLength     int              `json:"aln_length"` // columns, including gaps
	OptLength     int              `json:"opt_length"` // columns without gaps
	GapLen        int              `json:"gap_len"`
	AlnBeg1       int              `json:"aln_beg1"` // first residue used, -1 if nothing aligned
	AlnBeg2       int              `json:"aln_beg2"`
	Identity      float64          `json:"identity"`
	Similarity    float64          `json:"similarity"`
	Rmsd          *float64         `json:"rmsd,omitempty"`
	Transform     *super.Transform `json:"transform,omitempty"`
	AlignSe1      []int            `json:"align_se1"`
	AlignSe2      []int            `json:"align_se2"`
	AlnSeq1       []byte           `json:"-"`
	AlnSeq2       []byte           `json:"-"`
	AlnSymb       []byte           `json:"-"`
}

// newResult puts the pieces together. Nothing is calculated here
// except the ratios.
func newResult(n1, n2 int, score float32, p *projection) *Result {
	r := &Result{
		AlgorithmName: AlgorithmName,
		Version:       Version,
		Score:         float64(score),
		Ca1Length:     n1,
		Ca2Length:     n2,
		AlnLength:     len(p.se1),
		OptLength:     p.nAtom,
		GapLen:        p.nGaps,
		AlnBeg1:       -1,
		AlnBeg2:       -1,
		AlignSe1:      p.se1,
		AlignSe2:      p.se2,
		AlnSeq1:       p.seq1,
		AlnSeq2:       p.seq2,
		AlnSymb:       p.symb,
	}
	if len(p.se1) > 0 {
		r.AlnBeg1, r.AlnBeg2 = p.se1[0], p.se2[0]
	}
	r.Identity, r.Similarity = p.ratios()
	return r
}

func (r *Result) used(b []byte) string {
	if r.AlnLength > len(b) {
		return string(b)
	}
	return string(b[:r.AlnLength])
}

// Query is the first sequence as aligned, with gaps.
func (r *Result) Query() string { return r.used(r.AlnSeq1) }

// Target is the second sequence as aligned.
func (r *Result) Target() string { return r.used(r.AlnSeq2) }

// Symbols is the line that goes between them.
func (r *Result) Symbols() string { return r.used(r.AlnSymb) }

// String gives a short summary, followed by the alignment.
func (r *Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s score %.1f\n", r.AlgorithmName, r.Version, r.Score)
	fmt.Fprintf(&b, "lengths %d %d aligned %d of %d columns, %d gaps\n",
		r.Ca1Length, r.Ca2Length, r.OptLength, r.AlnLength, r.GapLen)
	rmsd := "-"
	if r.Rmsd != nil {
		rmsd = fmt.Sprintf("%.2f", *r.Rmsd)
	}
	fmt.Fprintf(&b, "identity %.3f similarity %.3f rmsd %s\n", r.Identity, r.Similarity, rmsd)
	if r.AlnLength == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "%6d %s\n", r.AlnBeg1+1, r.Query())
	fmt.Fprintf(&b, "%6s %s\n", "", r.Symbols())
	fmt.Fprintf(&b, "%6d %s\n", r.AlnBeg2+1, r.Target())
	return b.String()
}
