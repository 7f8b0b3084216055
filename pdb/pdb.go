// Package pdb is the upper level for reading PDB files.
// Decide if a file is compressed or not, and what format
// we are going to read. Then call the corresponding pdb or mmcif
// format reader. We only keep the CA atoms.
package pdb

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
	"github.com/andrew-torda/sw3d/pdb/mmcif"
	"github.com/andrew-torda/sw3d/pdb/zwrap"
	"github.com/edsrzf/mmap-go"
)

const (
	old_fmt byte = iota
	mmcif_fmt
	unk_fmt
)

var (
	ErrFormat  = errors.New("pdb: cannot read coordinates")
	ErrNoChain = errors.New("pdb: chain not found")
)

// comparefirst says if a line starts with a word.
func comparefirst(s, w string) bool {
	return len(s) >= len(w) && s[:len(w)] == w
}

// lookInFile guesses if the text is in old PDB format or in mmcif.
func lookInFile(r io.Reader) byte {
	pdbWords := []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "HETATM", "ATOM", "MODEL"}
	mmcifWords := []string{"data_", "_entry.id", "loop_"}

	const maxTestLines = 5000
	scnnr := bufio.NewScanner(r)
	for i := 0; scnnr.Scan() && i < maxTestLines; i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if comparefirst(s, w) {
				return mmcif_fmt
			}
		}
		for _, w := range pdbWords {
			if comparefirst(s, w) {
				return old_fmt
			}
		}
	}
	return unk_fmt
}

// oldOrMmcif decides what format we will use from the file name.
// We cannot use the function from filepath to get the file type,
// since it will return .gz if we feed it a.pdb.gz.
// If the name does not help, it returns unk_fmt and the caller has
// to look inside.
func oldOrMmcif(fname string) byte {
	s := filepath.Base(fname)
	i := strings.IndexByte(s, '.')
	if i == -1 {
		return unk_fmt
	}
	s = strings.ToLower(s[i+1:]) // change .ent to ent
	switch {
	case strings.Contains(s, "cif"):
		return mmcif_fmt
	case strings.Contains(s, "pdb") || strings.Contains(s, "ent"):
		return old_fmt
	}
	return unk_fmt
}

// LogWhere decides where to send output.
// "" throws it away, "stdout" and "stderr" are what they say and
// anything else is a file name which we append to.
func LogWhere(outinfo string) (*log.Logger, error) {
	var iowriter io.Writer
	switch outinfo { // Decide where to send the logged output
	case "":
		iowriter = io.Discard
	case "stdout":
		iowriter = os.Stdout
	case "stderr":
		iowriter = os.Stderr
	default:
		var err error
		iowriter, err = os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
	}
	prefix := ""
	return log.New(iowriter, prefix, log.Lshortfile), nil
}

// readChains picks the reader for the format. fname is only used to
// guess the format and for messages.
func readChains(fname string, data []byte) (cmmn.ChnSl, error) {
	typ := oldOrMmcif(fname)
	if typ == unk_fmt {
		typ = lookInFile(bytes.NewReader(data))
	}
	var chains cmmn.ChnSl
	var err error
	switch typ {
	case old_fmt:
		chains, err = readOld(bytes.NewReader(data))
	case mmcif_fmt:
		chains, err = mmcif.NewReader(bytes.NewReader(data)).ReadCA()
	default:
		return nil, fmt.Errorf("%w: %s: cannot recognise format", ErrFormat, fname)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, fname, err)
	}
	return chains, nil
}

// readFile gets the contents of a file. Plain files are mapped into
// memory, compressed ones are decompressed into a buffer. The caller
// has to call the returned function when finished with the bytes.
func readFile(fname string) ([]byte, func(), error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	info, err := fp.Stat()
	if err != nil {
		fp.Close()
		return nil, nil, err
	}
	if !info.Mode().IsRegular() {
		fp.Close()
		return nil, nil, fmt.Errorf("%w: %s is not a regular file", ErrFormat, fname)
	}
	if info.Size() == 0 {
		fp.Close()
		return nil, func() {}, nil
	}
	magic := make([]byte, 2)
	if _, err := fp.ReadAt(magic, 0); err != nil && err != io.EOF {
		fp.Close()
		return nil, nil, err
	}
	if zwrap.IsGzip(magic) {
		rdr, err := zwrap.Wrap(fp)
		if err != nil {
			fp.Close()
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrFormat, fname, err)
		}
		defer rdr.Close()
		data, err := io.ReadAll(rdr)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrFormat, fname, err)
		}
		return data, func() {}, nil
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, err
	}
	return mm, func() { mm.Unmap() }, nil
}

// ReadChains reads a coordinate file, compressed or not, in PDB or
// mmcif format and returns every chain of the first model.
func ReadChains(fname string) (cmmn.ChnSl, error) {
	data, done, err := readFile(fname)
	if err != nil {
		return nil, err
	}
	defer done()
	return readChains(fname, data)
}

// ReadCA returns the CA atoms of one chain. An empty chain name means
// the first chain in the file.
func ReadCA(fname, chain string) ([]cmmn.CaAtom, error) {
	chains, err := ReadChains(fname)
	if err != nil {
		return nil, err
	}
	return pickChain(fname, chains, chain)
}

func pickChain(fname string, chains cmmn.ChnSl, chain string) ([]cmmn.CaAtom, error) {
	c, ok := chains.Find(chain)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no chain %q, only %v",
			ErrNoChain, fname, chain, chains.ChainNames())
	}
	return c.Atoms, nil
}

// NatomsTot returns the total number of valid atoms and the number of invalid
// atoms in a set of chains. We cannot write it as a method, since it
// would have to be in the cmmn sub package.
func NatomsTot(chns cmmn.ChnSl) (int, int) {
	var jValid, jInvalid int
	for _, c := range chns {
		for i := range c.Atoms {
			if c.Atoms[i].Ok() {
				jValid++
			} else {
				jInvalid++
			}
		}
	}
	return jValid, jInvalid
}
