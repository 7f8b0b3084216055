package mmcif

import "io"

// Export some internal functions for testing

func (s *cmmtScanner) Cbytes() []byte   { return s.cbytes() }
func (s *cmmtScanner) Cscan() (ok bool) { return s.cscan() }

func NewCmmtScanner(r io.Reader, cmmt byte) *cmmtScanner {
	s := newCmmtScanner(r, cmmt)
	return &s
}

var SplitCifLine = splitCifLine

type ReadError = readError
