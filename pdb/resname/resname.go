// Package resname maps three letter residue names, as they appear in
// PDB and mmCIF files, to one letter codes.
// Modified amino acids that turn up often in the PDB are mapped to
// their parent residue, so they can be scored with an ordinary
// substitution matrix.
package resname

import "strings"

// Unknown is returned for anything we cannot map.
const Unknown byte = 'X'

var three2one = map[string]byte{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLN": 'Q', "GLU": 'E', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"ASX": 'B', "GLX": 'Z', "UNK": 'X',

	"MSE": 'M', // selenomethionine
	"SEC": 'C', // selenocysteine
	"PYL": 'K', // pyrrolysine
	"SEP": 'S', // phosphoserine
	"TPO": 'T', // phosphothreonine
	"PTR": 'Y', // phosphotyrosine
	"HYP": 'P', // hydroxyproline
	"MLY": 'K', // dimethyllysine
	"KCX": 'K', // carbamylated lysine
	"CSO": 'C', // hydroxycysteine
	"CME": 'C',
	"CSD": 'C',
	"OCS": 'C',
	"LLP": 'K',
	"M3L": 'K',
	"HIC": 'H',
	"PCA": 'E', // pyroglutamate
}

// OneLetter returns the one letter code for a residue name. Case and
// surrounding white space are ignored. ok is false if the name is not
// a residue we know.
func OneLetter(name string) (c byte, ok bool) {
	c, ok = three2one[strings.ToUpper(strings.TrimSpace(name))]
	return c, ok
}

// Code is like OneLetter, but gives Unknown instead of failing.
func Code(name string) byte {
	if c, ok := OneLetter(name); ok {
		return c
	}
	return Unknown
}

// IsAmino says if a residue name is an amino acid we know about.
// The readers use it to decide which HETATM records to keep.
func IsAmino(name string) bool {
	_, ok := OneLetter(name)
	return ok
}
