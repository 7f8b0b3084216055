package sw3d

import (
	"errors"
	"fmt"

	"github.com/andrew-torda/sw3d/gotoh"
	"github.com/andrew-torda/sw3d/submat"
)

var (
	// ErrInvalidConfig means the parameters were rejected before any
	// work was done.
	ErrInvalidConfig = errors.New("sw3d: invalid parameters")
	// ErrAlignment wraps anything that went wrong while scoring,
	// aligning or superimposing.
	ErrAlignment = errors.New("sw3d: alignment failed")
)

// Default gap costs.
const (
	DefaultOpen = 8
	DefaultExt  = 1
)

// Params controls one call to Align. It is passed by value, so a call
// cannot change what the caller holds.
// A nil Submat means BLOSUM62.
type Params struct {
	Pnlty  gotoh.Pnlty
	Submat *submat.Submat
}

// DefaultParams gives the penalties and matrix we use if the caller
// has no better idea.
func DefaultParams() Params {
	return Params{
		Pnlty:  gotoh.Pnlty{Open: DefaultOpen, Ext: DefaultExt},
		Submat: submat.Blosum62(),
	}
}

// Validate checks the penalties.
func (p Params) Validate() error {
	if err := p.Pnlty.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (p Params) matrix() *submat.Submat {
	if p.Submat == nil {
		return submat.Blosum62()
	}
	return p.Submat
}
