// 23 Feb 2018
// Read a substitution matrix and use it to score pairs of residues.

package submat

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/andrew-torda/matrix"
)

// ErrUnknownSym is returned when we are asked to score a character
// which is not in the matrix alphabet.
var ErrUnknownSym = errors.New("submat: symbol not in substitution matrix")

// Submat is the export type. it internals do not have to be exported.
type Submat struct {
	mat   *matrix.FMatrix2d
	cmap  [128]int8
	alfbt []byte // the symbols in the order of the file
	name  string
}

const notset int8 = -1

// String prints out a substitution matrix. Useful during debugging.
func (submat *Submat) String() (s string) {
	s = "Matrix " + submat.name + "\n"
	s += fmt.Sprintf("%4s", " ")
	for _, c := range submat.alfbt {
		s += fmt.Sprintf("%4s", string(c))
	}
	s += "\n"
	for i, c := range submat.alfbt {
		s += fmt.Sprintf("%4s", string(c))
		for j := range submat.alfbt {
			s += fmt.Sprintf("%4.0f", submat.mat.Mat[i][j])
		}
		s += "\n"
	}
	return s
}

// Name is whatever the matrix was read from.
func (submat *Submat) Name() string { return submat.name }

// Alphabet returns a copy of the symbols the matrix knows about.
func (submat *Submat) Alphabet() []byte {
	return append([]byte(nil), submat.alfbt...)
}

// CmmtScanner is a wrapper around bufio.Scanner that will ignore anything
// after a comment character and remove leading and trailing white space.
type CmmtScanner struct {
	*bufio.Scanner
	cmmt byte // Comment character
	n    int  // line number, for error messages
}

// NewCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes leading spaces
//   - removes anything after a comment character
func NewCmmtScanner(r io.Reader, cmmt byte) *CmmtScanner {
	return &CmmtScanner{Scanner: bufio.NewScanner(r), cmmt: cmmt}
}

// Scan counts lines as it goes past them.
func (s *CmmtScanner) Scan() bool {
	ok := s.Scanner.Scan()
	if ok {
		s.n++
	}
	return ok
}

// CBytes presents exactly the same interface as scanner.Bytes, but
// has to do a bit more work.
// Before returning, we remove anything after the comment symbol and
// strip leading and trailing white space.
// If this leaves us with an empty string, we call Scan again.
// Like the Bytes function, this works directly in the i/o buffer
// and does not allocate any memory. If you like the string it returns,
// you have to save it somewhere.
func (s *CmmtScanner) CBytes() []byte {
	ok := true
	for b := s.Bytes(); ok; ok, b = s.Scan(), s.Bytes() {
		if i := bytes.IndexByte(b, s.cmmt); i >= 0 {
			b = b[:i]
		}
		b = bytes.TrimSpace(b)
		if len(b) > 0 {
			return b
		}
	}
	return nil
}

// The first non-comment line  of the substitution matrix file
// contains a list of the allowed characters. Each field has to be
// one character long
func alfbt_line(inline []byte, submat *Submat) (n_alfbt int, err error) {
	cmap := submat.cmap[:]
	for i := range submat.cmap {
		cmap[i] = notset
	}
	f := bytes.Fields(inline)
	if len(f) == 0 {
		return 0, errors.New("alfbt_line: no alphabet line")
	}
	if len(f) > 127 {
		return 0, errors.New("alfbt_line: too many symbols")
	}
	for _, c := range f {
		if len(c) != 1 {
			err = errors.New("alfbt_line: expected a single character, got " + string(c))
			return
		}
		if c[0] >= 128 {
			err = errors.New("alfbt_line: saw a non-ascii character in " + string(inline))
			return
		}
		if cmap[c[0]] != notset {
			err = errors.New("alfbt_line: symbol repeated " + string(c))
			return
		}
		cmap[c[0]] = int8(len(submat.alfbt))
		submat.alfbt = append(submat.alfbt, c[0])
	}
	for i, c := range f { // If not set, set both upper and lower case
		l := (bytes.ToLower(c))[0] // This is safe, since we have checked
		u := (bytes.ToUpper(c))[0] // that c is one-byte long
		if cmap[l] == notset {     // Lower case index
			cmap[l] = int8(i)
		}
		if cmap[u] == notset { //     Corresponding upper case index
			cmap[u] = int8(i)
		}
	}

	return len(f), err
}

// Read will read a substitution matrix from a filename.
// Return a pointer to a Submat structure.
func Read(fname string) (*Submat, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	return ReadFrom(fp, fname)
}

// ReadFrom reads a matrix in the blast/matblas format from r.
// name is only used for error messages.
// Only the lower triangle is needed. If the whole matrix is there,
// the last value seen for a pair wins, so an asymmetric file gets
// made symmetric.
func ReadFrom(r io.Reader, name string) (*Submat, error) {
	var n_alfbt int
	var err error
	submat := &Submat{name: name}
	scnr := NewCmmtScanner(r, '#')
	scnr.Scan()
	if n_alfbt, err = alfbt_line(scnr.CBytes(), submat); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	submat.mat = matrix.NewFMatrix2d(n_alfbt, n_alfbt)
	seen := make([]bool, n_alfbt)
	nc := 0
	for scnr.Scan() {
		line := scnr.CBytes()
		if line == nil {
			break
		}
		fields := bytes.Fields(line)
		if len(fields) < 2 || len(fields) > n_alfbt+1 {
			return nil, fmt.Errorf("reading %s line %d. Wrong number of items: %s",
				name, scnr.n, line)
		}
		c := fields[0][0]
		if len(fields[0]) != 1 || c >= 128 || submat.cmap[c] == notset {
			return nil, fmt.Errorf("reading %s line %d. Invalid row label: %s",
				name, scnr.n, fields[0])
		}
		i := submat.cmap[c]
		if seen[i] {
			return nil, fmt.Errorf("reading %s line %d. Row %c repeated", name, scnr.n, c)
		}
		if len(fields)-1 < int(i)+1 {
			return nil, fmt.Errorf("reading %s line %d. Row %c is too short", name, scnr.n, c)
		}
		seen[i] = true
		for j := 0; j < len(fields)-1; j++ {
			f, e := strconv.ParseFloat(string(fields[j+1]), 32)
			if e != nil {
				return nil, fmt.Errorf("reading %s line %d: %w", name, scnr.n, e)
			}
			x := float32(f)
			submat.mat.Mat[i][j], submat.mat.Mat[j][i] = x, x
		}
		nc++
	}
	if err = scnr.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if nc != n_alfbt {
		return nil, fmt.Errorf("reading %s: found %d rows, wanted %d", name, nc, n_alfbt)
	}
	return submat, nil
}

// index finds the row/column for a character.
func (submat *Submat) index(a byte) (int8, error) {
	if a >= 128 || submat.cmap[a] == notset {
		return notset, fmt.Errorf("%w: %q in %s", ErrUnknownSym, a, submat.name)
	}
	return submat.cmap[a], nil
}

// Score returns the similarity score of bytes a and b, given
// a specific scoring matrix.
func (submat *Submat) Score(a, b byte) (float32, error) {
	i, err := submat.index(a)
	if err != nil {
		return 0, err
	}
	j, err := submat.index(b)
	if err != nil {
		return 0, err
	}
	return submat.mat.Mat[i][j], nil
}

// ScoreSeqs will take two sequences and calculate a similarity matrix
// based on the substitution matrix.
// We return an M x N matrix, where M and N are the lengths of first
// and second sequences respectively. Any character not in the
// alphabet is an error, wrapping ErrUnknownSym.
func (submat *Submat) ScoreSeqs(s, t []byte) (*matrix.FMatrix2d, error) {
	ti := make([]int8, len(t))
	for j, ct := range t {
		var err error
		if ti[j], err = submat.index(ct); err != nil {
			return nil, fmt.Errorf("second sequence position %d: %w", j, err)
		}
	}
	scr_mat := matrix.NewFMatrix2d(len(s), len(t))
	mat := scr_mat.Mat
	for i, cs := range s {
		si, err := submat.index(cs)
		if err != nil {
			return nil, fmt.Errorf("first sequence position %d: %w", i, err)
		}
		row := submat.mat.Mat[si]
		for j := range t {
			mat[i][j] = row[ti[j]]
		}
	}
	return scr_mat, nil
}

//go:embed blosum62.txt
var blosum62Text []byte

var (
	blosum62     *Submat
	blosum62Once sync.Once
)

// Blosum62 returns the BLOSUM62 matrix which is compiled into the
// package. It is parsed once and must not be modified.
func Blosum62() *Submat {
	blosum62Once.Do(func() {
		var err error
		if blosum62, err = ReadFrom(bytes.NewReader(blosum62Text), "blosum62"); err != nil {
			panic("built in blosum62: " + err.Error())
		}
	})
	return blosum62
}

// Similar says whether two residues have a positive BLOSUM62 score.
// It does not depend on whatever matrix was used for an alignment and
// anything BLOSUM62 does not know about is not similar.
func Similar(a, b byte) bool {
	f, err := Blosum62().Score(a, b)
	return err == nil && f > 0
}
