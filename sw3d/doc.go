// Package sw3d superimposes two protein chains using nothing but their
// sequences.
//
// The sequences of the two chains are aligned with a local
// (Smith-Waterman) alignment and affine gap penalties. Every column of
// the alignment where both chains have a residue gives a pair of
// atoms. These pairs are superimposed and we report the RMSD together
// with identity, similarity and the aligned strings.
//
// This is a cheap structural alignment. It is only sensible when the
// sequences are clearly related, but it is fast and it is a baseline
// for proper structure based methods.
//
// Nothing is kept between calls to Align, so one can call it from as
// many goroutines as one likes.
package sw3d
