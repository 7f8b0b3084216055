package pdb

// Export some internal functions for testing

const (
	OldFmt   = old_fmt
	MmcifFmt = mmcif_fmt
	UnkFmt   = unk_fmt
)

var (
	OldOrMmcif = oldOrMmcif
	LookInFile = lookInFile
	ReadOld    = readOld
)
