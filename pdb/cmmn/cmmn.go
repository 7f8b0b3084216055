// Package pdb/cmmn has common definitions for coordinates, residues
// and chains. The readers fill these out and the aligner consumes them.
package cmmn

import (
	"math"

	"github.com/andrew-torda/sw3d/pdb/resname"
)

// GapChar is used for gaps in any printed alignment.
const GapChar byte = '-'

type Xyz struct{ X, Y, Z float32 }
type XyzSl []Xyz // xyz's are coordinates

var BrokenXyz = Xyz{math.MaxFloat32, 0, -math.MaxFloat32}

func (xyz *Xyz) Ok() bool {
	if *xyz != BrokenXyz {
		return true
	}
	return false
}

// CaAtom is the one atom we keep per residue, normally the alpha carbon.
type CaAtom struct {
	Xyz
	ResName string // three letter name as it came from the file, "ALA"
	ResNum  int    // residue number from file. Not a real index
	InsCode byte   // Insertion code, ' ' if there was none
	Code    byte   // one letter code. Zero means look it up from ResName
}

// OneLetter returns the upper case one letter code of the residue.
// If Code was never set, it comes from the residue name and anything
// we cannot recognise is an 'X'.
func (a *CaAtom) OneLetter() byte {
	c := a.Code
	if c == 0 {
		return resname.Code(a.ResName)
	}
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c
}

// A simple structure for one model, one chain and its residues.
type Chain struct {
	ChainID string // Name, like "A" or "B"
	MdlNum  int16  // Model number
	Atoms   []CaAtom
}

// This is obviously just a slice of chains, but we have to define a type
// if we want to define a method on it
type ChnSl []Chain

// ChainNames returns a slice with the names of the chains.
func (chns ChnSl) ChainNames() (ret []string) {
	ret = make([]string, 0, len(chns))
	for _, k := range chns {
		ret = append(ret, k.ChainID)
	}
	return
}

// Find returns the chain called id. An empty id gives the first chain.
func (chns ChnSl) Find(id string) (*Chain, bool) {
	if len(chns) == 0 {
		return nil, false
	}
	if id == "" {
		return &chns[0], true
	}
	for i := range chns {
		if chns[i].ChainID == id {
			return &chns[i], true
		}
	}
	return nil, false
}

// Seq returns the one letter sequence of a set of atoms. It is
// always the same length as atoms.
func Seq(atoms []CaAtom) []byte {
	s := make([]byte, len(atoms))
	for i := range atoms {
		s[i] = atoms[i].OneLetter()
	}
	return s
}

// Coords pulls the coordinates out of a set of atoms.
func Coords(atoms []CaAtom) XyzSl {
	x := make(XyzSl, len(atoms))
	for i := range atoms {
		x[i] = atoms[i].Xyz
	}
	return x
}
