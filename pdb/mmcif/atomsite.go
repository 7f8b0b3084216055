// This file is for parsing atomsite lines and storing coordinates.
package mmcif

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/pdb/resname"
)

type cifCol struct {
	cifName  string // name in mmcif file, like auth_asym_id
	altName  string // an alternative, label_asym_id is the alt for auth_asym_id
	optional bool   // we can live without it
	n        int    // where we found the column, -1 if absent
}

// acn has the atom site columns we look at.
type acn struct {
	group,
	atomId,
	compId,
	asymId,
	seqId,
	insCode,
	cartnX,
	cartnY,
	cartnZ,
	mdlNum cifCol
}

// sliceAfterASite changes _atom_site.foo to foo
func sliceAfterASite(s bSlice) string {
	const slen = len("_atom_site.")
	if len(s) < slen {
		return ""
	}
	return string(s[slen:])
}

// getColPos looks for the column in the headers. If a name is not
// found, we do not return an error. We set the error that was given
// to us, unless the column is optional.
func (cf *cifCol) getColPos(headers []bSlice, err *error) {
	cf.n = -1
	if *err != nil {
		return
	}
	for _, name := range []string{cf.cifName, cf.altName} {
		if name == "" {
			continue
		}
		for i, h := range headers {
			if sliceAfterASite(h) == name {
				cf.n = i
				return
			}
		}
	}
	if !cf.optional {
		*err = errors.New("Could not find atomsite column: " + cf.cifName)
	}
}

// find fills out the column positions. Author names are preferred
// over label names, since those are what people see in PDB files.
// If getColPos trips an error, subsequent calls will be no-ops, so we just
// check once at the end if an error occurred.
func (a *acn) find(headers []bSlice) error {
	*a = acn{
		group:   cifCol{cifName: "group_PDB", optional: true},
		atomId:  cifCol{cifName: "auth_atom_id", altName: "label_atom_id"},
		compId:  cifCol{cifName: "auth_comp_id", altName: "label_comp_id"},
		asymId:  cifCol{cifName: "auth_asym_id", altName: "label_asym_id"},
		seqId:   cifCol{cifName: "auth_seq_id", altName: "label_seq_id"},
		insCode: cifCol{cifName: "pdbx_PDB_ins_code", optional: true},
		cartnX:  cifCol{cifName: "Cartn_x"},
		cartnY:  cifCol{cifName: "Cartn_y"},
		cartnZ:  cifCol{cifName: "Cartn_z"},
		mdlNum:  cifCol{cifName: "pdbx_PDB_model_num", optional: true},
	}
	var err error
	for _, cf := range []*cifCol{&a.group, &a.atomId, &a.compId,
		&a.asymId, &a.seqId, &a.insCode, &a.cartnX, &a.cartnY,
		&a.cartnZ, &a.mdlNum} {
		cf.getColPos(headers, &err)
	}
	return err
}

// isDotOrQ returns true if the string is a dot or question mark
func isDotOrQ(s bSlice) bool {
	return len(s) == 1 && (s[0] == '.' || s[0] == '?')
}

func wrongNum(got, want int) string {
	return fmt.Sprintf("found %d fields in atom line, wanted %d", got, want)
}

func getFloat(s bSlice, name string) (float32, error) {
	f, err := strconv.ParseFloat(string(s), 32)
	if err != nil {
		return 0, fmt.Errorf("bad %s coordinate %q", name, s)
	}
	return float32(f), nil
}

func getxyz(cmpnt [][]byte, acn *acn) (xyz cmmn.Xyz, err error) {
	if xyz.X, err = getFloat(cmpnt[acn.cartnX.n], "x"); err != nil {
		return
	}
	if xyz.Y, err = getFloat(cmpnt[acn.cartnY.n], "y"); err != nil {
		return
	}
	xyz.Z, err = getFloat(cmpnt[acn.cartnZ.n], "z")
	return
}

// boringLine is true if this is not a CA from an amino acid.
func boringLine(cmpnt [][]byte, acn *acn) bool {
	if string(cmpnt[acn.atomId.n]) != "CA" {
		return true
	}
	if acn.group.n >= 0 && string(cmpnt[acn.group.n]) == "HETATM" {
		return !resname.IsAmino(string(cmpnt[acn.compId.n]))
	}
	return false
}

// getMdlNum returns the model number. Without the column, everything
// is model 1.
func getMdlNum(cmpnt [][]byte, acn *acn) (int16, error) {
	if acn.mdlNum.n < 0 {
		return 1, nil
	}
	s := cmpnt[acn.mdlNum.n]
	i, err := strconv.ParseInt(string(s), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("bad model number %q", s)
	}
	return int16(i), nil
}

func getInsCode(cmpnt [][]byte, acn *acn) byte {
	if acn.insCode.n < 0 {
		return ' '
	}
	s := cmpnt[acn.insCode.n]
	if len(s) == 0 || isDotOrQ(s) {
		return ' '
	}
	return s[0]
}

// addAtom looks at one line of the atom site table and keeps it if
// it is a CA from the first model. If a residue has alternative
// locations, the first one wins.
func (mr *Reader) addAtom(cmpnt [][]byte, acn *acn) error {
	if boringLine(cmpnt, acn) {
		return nil
	}
	mdlNum, err := getMdlNum(cmpnt, acn)
	if err != nil {
		return err
	}
	if !mr.haveMdl {
		mr.mdlNum, mr.haveMdl = mdlNum, true
	} else if mdlNum != mr.mdlNum {
		return nil
	}
	s := cmpnt[acn.seqId.n]
	resNum, err := strconv.Atoi(string(s))
	if err != nil {
		return fmt.Errorf("bad residue number %q", s)
	}
	insCode := getInsCode(cmpnt, acn)
	xyz, err := getxyz(cmpnt, acn)
	if err != nil {
		return err
	}

	chainID := string(cmpnt[acn.asymId.n])
	ndx, ok := mr.chnNdx[chainID]
	if !ok {
		ndx = len(mr.chains)
		mr.chnNdx[chainID] = ndx
		mr.chains = append(mr.chains, cmmn.Chain{ChainID: chainID, MdlNum: mdlNum})
	}
	chn := &mr.chains[ndx]
	if n := len(chn.Atoms); n > 0 {
		last := &chn.Atoms[n-1]
		if last.ResNum == resNum && last.InsCode == insCode {
			return nil // second altloc of the same residue
		}
	}
	rname := string(cmpnt[acn.compId.n])
	chn.Atoms = append(chn.Atoms, cmmn.CaAtom{
		Xyz:     xyz,
		ResName: rname,
		ResNum:  resNum,
		InsCode: insCode,
		Code:    resname.Code(rname),
	})
	mr.nAtom++
	return nil
}
