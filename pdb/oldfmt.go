package pdb

// Read the old, fixed column PDB format.

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/pdb/resname"
)

// Columns in an ATOM record, counting from zero.
const (
	colAtName  = 12 // to 16
	colResName = 17 // to 20
	colChain   = 21
	colResNum  = 22 // to 26
	colInsCode = 26
	colX       = 30 // each coordinate is eight wide
	minAtomLen = 54
)

// column gives a trimmed field, coping with short lines.
func column(line []byte, start, end int) string {
	if start >= len(line) {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(string(line[start:end]))
}

// oldCoord reads the three coordinates from an ATOM line.
func oldCoord(line []byte) (xyz cmmn.Xyz, err error) {
	var f [3]float64
	for i := range f {
		s := column(line, colX+8*i, colX+8*(i+1))
		if f[i], err = strconv.ParseFloat(s, 32); err != nil {
			return xyz, fmt.Errorf("bad coordinate %q", s)
		}
	}
	return cmmn.Xyz{X: float32(f[0]), Y: float32(f[1]), Z: float32(f[2])}, nil
}

// readOld reads the CA atoms from the first model of a PDB file. HETATM
// records are only used if they are modified amino acids. If a residue
// has alternative locations, the first wins.
func readOld(r io.Reader) (cmmn.ChnSl, error) {
	var chains cmmn.ChnSl
	chnNdx := make(map[string]int)
	var mdlNum int16 = 1
	var seenModel bool
	scnnr := bufio.NewScanner(r)
	for n := 1; scnnr.Scan(); n++ {
		line := scnnr.Bytes()
		switch {
		case bytes.HasPrefix(line, []byte("MODEL ")):
			if seenModel {
				return chains, nil
			}
			seenModel = true
			if i, err := strconv.ParseInt(column(line, 10, 14), 10, 16); err == nil {
				mdlNum = int16(i)
			}
			continue
		case bytes.HasPrefix(line, []byte("ENDMDL")), bytes.Equal(bytes.TrimSpace(line), []byte("END")):
			return chains, nil
		case bytes.HasPrefix(line, []byte("ATOM  ")):
		case bytes.HasPrefix(line, []byte("HETATM")):
			if !resname.IsAmino(column(line, colResName, colResName+3)) {
				continue
			}
		default:
			continue
		}
		if column(line, colAtName, colAtName+4) != "CA" {
			continue
		}
		if len(line) < minAtomLen {
			return nil, fmt.Errorf("line %d: atom record too short", n)
		}
		s := column(line, colResNum, colResNum+4)
		resNum, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad residue number %q", n, s)
		}
		xyz, err := oldCoord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		insCode := line[colInsCode]
		if insCode == 0 || insCode == '\t' {
			insCode = ' '
		}

		chainID := column(line, colChain, colChain+1)
		ndx, ok := chnNdx[chainID]
		if !ok {
			ndx = len(chains)
			chnNdx[chainID] = ndx
			chains = append(chains, cmmn.Chain{ChainID: chainID, MdlNum: mdlNum})
		}
		chn := &chains[ndx]
		if k := len(chn.Atoms); k > 0 {
			last := &chn.Atoms[k-1]
			if last.ResNum == resNum && last.InsCode == insCode {
				continue // alternative location
			}
		}
		rname := column(line, colResName, colResName+3)
		chn.Atoms = append(chn.Atoms, cmmn.CaAtom{
			Xyz:     xyz,
			ResName: rname,
			ResNum:  resNum,
			InsCode: insCode,
			Code:    resname.Code(rname),
		})
	}
	return chains, scnnr.Err()
}
