// Package ops is a small register-machine operation set for basic blocks.
// Registers hold 256-bit unsigned integers with wrapping arithmetic.
package ops

import (
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

var (
	ErrBadFrame    = errors.New("execution state is not an ops frame")
	ErrRegister    = errors.New("register index out of range")
	ErrCheckFailed = errors.New("check failed: register is zero")
	ErrUnreachable = errors.New("reached unreachable terminator")
)

// Frame is the execution state shared by the operations of one call.
type Frame struct {
	Regs []uint256.Int
}

// NewFrame allocates a frame with n zeroed registers.
func NewFrame(n int) *Frame {
	return &Frame{Regs: make([]uint256.Int, n)}
}

// Reg returns register i.
func (f *Frame) Reg(i int) (*uint256.Int, error) {
	if i < 0 || i >= len(f.Regs) {
		return nil, errors.Wrapf(ErrRegister, "r%d (frame has %d)", i, len(f.Regs))
	}
	return &f.Regs[i], nil
}

// Set copies v into register i.
func (f *Frame) Set(i int, v *uint256.Int) error {
	r, err := f.Reg(i)
	if err != nil {
		return err
	}
	r.Set(v)
	return nil
}

func frameOf(state any) (*Frame, error) {
	f, ok := state.(*Frame)
	if !ok || f == nil {
		return nil, errors.Wrapf(ErrBadFrame, "got %T", state)
	}
	return f, nil
}
