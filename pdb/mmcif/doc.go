// Package mmcif reads the alpha carbons from a file in mmcif/cif format.
// Reading mmcif files is interesting because they are so big,
// but we do not want much information from them.
// We could tokenise everything.
// If one looks at the format there are some features that make it
// simpler.
// 1. The first character on the line is decisive. If it is a data item
// it has to be a "_". A loop starts with loop_
// 2. The pdb promises that they will restrict themselves to a certain
// style. In the ATOM records, every atom is on one line.
// Text fields, which start and end with a line beginning with ";",
// are jumped over. According to
// https://www.iucr.org/resources/cif/spec/version1.1/cifsyntax,
// these lines
// ;a
//   b
//;
// are one value, so a line inside one must not be mistaken for a
// directive.
//
// Overall structure
// There is a lot of information that will never be of interest to us (solvents,
// crystallisation details, ..). We only look inside the _atom_site loop.
// From there we keep CA atoms from amino acids in the first model and
// the first alternative location of each residue.
package mmcif
