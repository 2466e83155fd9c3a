package cfg

import (
	"github.com/cockroachdb/errors"
)

var (
	ErrNilTerminator    = errors.New("basic block has no terminator")
	ErrNoBlocks         = errors.New("function has no basic blocks")
	ErrDuplicateBlock   = errors.New("duplicate basic block id")
	ErrUnknownSuccessor = errors.New("successor names no block of the function")
	ErrBlockAttached    = errors.New("basic block already belongs to a function")
)

// ControlTransfer marks an error value as a non-local control-flow signal
// (function return, unwind to a handler elsewhere) rather than a fault.
// Blocks propagate such values unmodified.
type ControlTransfer interface {
	error
	ControlTransfer()
}

// IsControlTransfer reports whether err is, or wraps, a control-transfer
// signal.
func IsControlTransfer(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(ControlTransfer); ok {
		return true
	}
	var ct ControlTransfer
	return errors.As(err, &ct)
}

// successorOutOfRange builds the value a block panics with when its
// terminator breaks the index contract.
func successorOutOfRange(id, index, count int) error {
	return errors.AssertionFailedf("basic block %d: terminator returned successor index %d, want [0, %d)", id, index, count)
}
