// 19 Oct 2026

/*
Sw3d aligns the sequences of two protein chains and superimposes them.

The sequences come from the CA atoms of the two structures. They are
aligned with a local (Smith and Waterman) alignment and affine gap
penalties. The CA atoms of every aligned pair are then superimposed and
the RMSD reported.

Usage:
	sw3d [flags] file1 file2
	sw3d -fetch [flags] 1abc 2xyz

Files may be in the old PDB format or mmcif and may be gzipped. The
format is guessed from the name and, if that does not help, by looking
inside. With -fetch, the arguments are four letter PDB codes and the
structures are downloaded.

Flags:
	-o 8       gap opening penalty
	-e 1       gap extension penalty
	-m file    substitution matrix (default BLOSUM62)
	-c1 A      chain from the first structure (default, the first chain)
	-c2 B      chain from the second structure
	-json      write the result as json
	-l where   log to "stdout", "stderr" or a file. Chain breaks are
	           reported here.
	-fetch     arguments are PDB codes
	-site 0    which PDB site to download from

Gap penalties are costs, so they are positive numbers. A gap of length k
costs open + (k-1) * ext.
*/
package main
