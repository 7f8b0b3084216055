package mmcif

import (
	"bufio"
	"bytes"
	"io"

	"github.com/andrew-torda/sw3d/pdb/cmmn"
)

type bSlice []byte // byte slice

// cmmtScanner is a wrapper around bufio.Scanner that will ignore lines
// starting with a comment character.
// It also counts newlines in scanner.n, so we can print out the line
// number in error messages.
type cmmtScanner struct {
	*bufio.Scanner           // standard library scanner
	l_err          readError // fill this out as soon as an error happens
	ctoken         []byte    // Store the bytes that will be returned by cbytes()
	n              int       // line number in the mmcif file
	cmmt           byte      // Comment character
	ok             bool      // Are we OK or have we had an error ?
}

// newCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - jumps over lines starting with a comment character
//
// A Reader contains a cmmtScanner.
func newCmmtScanner(r io.Reader, cmmt byte) cmmtScanner {
	const maxLine = 1024 * 1024 // text fields can have very long lines
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 4096), maxLine)
	return cmmtScanner{
		Scanner: s,
		cmmt:    cmmt,
		ok:      true,
	}
}

// cscan is a wrapper around the library Scan(). It adds a newline counter
// for error messages. It jumps over blank lines and lines starting
// with a comment character. Comment characters are only recognised as the
// first character, since they are legitimate elsewhere in the text.
// When finished, it sets "ctoken" to point to the slice. At the end of
// the file, ctoken is nil.
func (s *cmmtScanner) cscan() (ok bool) {
	var b []byte
	if !s.ok { // We have already had an error, but nobody has noticed.
		s.ctoken = nil
		s.fill("pre-existing error missed. Small bug ?", false)
		return false // Just get out of here
	}
	for len(b) == 0 {
		if !s.Scan() { //             This is false on EOF
			s.ctoken = nil //         but Err() is nil, it is just EOF
			if s.Err() != nil {
				s.fill(s.Err().Error(), true) // This is a real error
				return false
			}
			return true // No error, just EOF
		}
		s.n++ //                      Counter for error messages
		b = bytes.TrimRight(s.Bytes(), " \t\r")
		if len(b) > 0 && b[0] == s.cmmt { // Comment,
			b = nil
		}
	}
	s.ctoken = b
	return true
}

// cbytes is like Bytes from the library, but returns the processed characters.
func (s *cmmtScanner) cbytes() []byte {
	return s.ctoken
}

// Reader pulls CA atoms out of an mmcif file.
type Reader struct {
	cmmtScanner
	headers []bSlice
	scrtch  [][]byte
	chains  cmmn.ChnSl
	chnNdx  map[string]int // where each chain is in chains
	mdlNum  int16          // model we are keeping, set by the first atom
	haveMdl bool
	nAtom   int // CA atoms kept
}

// NewReader returns an object to read mmcif files.
// It is given a reader, so the caller must have decided if it is
// a file, compressed file, whatever.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		cmmtScanner: newCmmtScanner(r, '#'),
		scrtch:      make([][]byte, 0, 25),
		chnNdx:      make(map[string]int),
	}
}

// stateFn is the type of state function. It returns the next
// state function that should act on its input.
type stateFn func(*Reader) stateFn

// startsWith is true if the line starts with the word.
func startsWith(b []byte, w string) bool {
	return bytes.HasPrefix(b, []byte(w))
}

// isSpecial returns true if the input in inline is not simply
// more of a table. Usually this means there is a new directive
// coming.
// If we have end of file, we also return true, so a caller knows
// it has to do something special.
// We do not stop if we see "data", since it is sometimes present in tables.
func isSpecial(inline []byte) bool {
	switch {
	case inline == nil:
		return true
	case startsWith(inline, "_"):
		return true
	case startsWith(inline, "loop_"):
		return true
	case startsWith(inline, "data_"):
		return true
	default:
		return false
	}
}

// skipText is called on a line starting with a semicolon. It reads
// up to and including the closing semicolon line.
func (mr *Reader) skipText() bool {
	for mr.cscan() {
		b := mr.cbytes()
		if b == nil {
			mr.fill("end of file inside text field", true)
			return false
		}
		if b[0] == ';' {
			return mr.cscan()
		}
	}
	return false
}

// stateTop is where we are between tables. Anything that is not a
// loop is ignored.
func stateTop(mr *Reader) stateFn {
	b := mr.cbytes()
	switch {
	case b == nil:
		return nil // finished
	case b[0] == ';':
		if !mr.skipText() {
			return nil
		}
		return stateTop
	case startsWith(b, "loop_"):
		if !mr.cscan() {
			return nil
		}
		return stateLoopHdr
	}
	if !mr.cscan() {
		return nil
	}
	return stateTop
}

// stateLoopHdr gets the headers from a loop directive
// It also gets to make a decision about what to do next.
// If the headers are for atoms, it calls stateAtomTable,
// otherwise stateSkipLoopTable.
func stateLoopHdr(mr *Reader) stateFn {
	mr.headers = mr.headers[:0]
	for b := mr.cbytes(); b != nil && b[0] == '_'; b = mr.cbytes() {
		s := make([]byte, len(b))
		copy(s, b)
		mr.headers = append(mr.headers, s)
		if !mr.cscan() {
			return nil
		}
	}
	if len(mr.headers) < 1 {
		mr.fill("no contents found while reading loop headers", true)
		return nil
	}
	if startsWith(mr.headers[0], "_atom_site.") {
		return stateAtomTable
	}
	return stateSkipLoopTable
}

// stateSkipLoopTable jumps over the contents of a table we do not want.
func stateSkipLoopTable(mr *Reader) stateFn {
	for b := mr.cbytes(); !isSpecial(b); b = mr.cbytes() {
		if b[0] == ';' {
			if !mr.skipText() {
				return nil
			}
			continue
		}
		if !mr.cscan() {
			return nil
		}
	}
	return stateTop
}

// stateAtomTable reads the coordinates, one atom per line.
func stateAtomTable(mr *Reader) stateFn {
	var acn acn
	if err := acn.find(mr.headers); err != nil {
		mr.fill(err.Error(), true)
		return nil
	}
	ncol := len(mr.headers)
	for b := mr.cbytes(); !isSpecial(b); b = mr.cbytes() {
		cmpnt, err := splitCifLine(b, mr.scrtch)
		if err != nil {
			mr.fill(err.Error(), true)
			return nil
		}
		mr.scrtch = cmpnt[:0]
		if len(cmpnt) != ncol {
			mr.fill(wrongNum(len(cmpnt), ncol), true)
			return nil
		}
		if err := mr.addAtom(cmpnt, &acn); err != nil {
			mr.fill(err.Error(), true)
			return nil
		}
		if !mr.cscan() {
			return nil
		}
	}
	return stateTop
}

// ReadCA reads the whole file and returns the chains with their CA
// atoms. Chains are in the order they appear in the file. A file
// without any CA atoms gives no chains and no error.
func (mr *Reader) ReadCA() (cmmn.ChnSl, error) {
	if !mr.cscan() {
		return nil, mr.l_err
	}
	for state := stateTop; state != nil; {
		state = state(mr)
	}
	if !mr.ok {
		return nil, mr.l_err
	}
	return mr.chains, nil
}

// NAtom says how many CA atoms were kept.
func (mr *Reader) NAtom() int { return mr.nAtom }
