package cfg

import (
	"fmt"
	"sync/atomic"

	"github.com/bnb-chain/blockprof/log"
	"github.com/cockroachdb/errors"
)

var controlTransferLogFilter = &log.EveryN{N: controlTransferLogInterval}

// BasicBlock is a straight-line run of operations ending in one terminator.
//
// The operations, terminator and successor list are fixed at construction
// and read without synchronisation, so one block may be executed from many
// goroutines at once. The only mutable state is the branch profile, the
// control-transfer counter and the lazily computed source section.
type BasicBlock struct {
	id         int
	operations []Operation
	terminator Terminator
	successors []int
	profile    *BranchProfile

	fn        *Function
	firstTake FirstTakeHandler

	controlTransfers atomic.Uint64
	section          atomic.Pointer[SourceSection]
}

// NewBasicBlock creates a block with the given id, operations in execution
// order and terminator. The successor list is captured from the terminator.
func NewBasicBlock(id int, operations []Operation, terminator Terminator) (*BasicBlock, error) {
	if terminator == nil {
		return nil, errors.Wrapf(ErrNilTerminator, "basic block %d", id)
	}
	ops := make([]Operation, len(operations))
	copy(ops, operations)
	succ := append([]int(nil), terminator.Successors()...)
	return &BasicBlock{
		id:         id,
		operations: ops,
		terminator: terminator,
		successors: succ,
		profile:    NewBranchProfile(len(succ)),
	}, nil
}

// SetFirstTakeHandler installs h to be notified, synchronously from
// Execute, whenever a successor is about to be taken for the first time.
// It must be called before the block is shared between goroutines.
func (b *BasicBlock) SetFirstTakeHandler(h FirstTakeHandler) { b.firstTake = h }

// Execute runs the operations in order against state, resolves the
// successor through the terminator, records it in the branch profile and
// returns its index.
//
// A ControlTransfer returned by an operation or the terminator is passed
// through unchanged and stops the block. Other errors are faults; they are
// wrapped with the block's source section when one is available. A
// terminator index outside [0, SuccessorCount()) is a defect and panics.
func (b *BasicBlock) Execute(state any) (int, error) {
	for i, op := range b.operations {
		if err := op.Execute(state); err != nil {
			return 0, b.fail(i, err)
		}
	}
	idx, err := b.terminator.Resolve(state)
	if err != nil {
		return 0, b.fail(len(b.operations), err)
	}
	if idx < 0 || idx >= len(b.successors) {
		b.inconsistent(idx)
	}
	if b.profile.IsFirstTake(idx) {
		b.escalate(idx)
	}
	b.profile.Record(idx)
	return idx, nil
}

// fail is the cold path for an error leaving position pos (an operation
// index, or len(operations) for the terminator).
func (b *BasicBlock) fail(pos int, err error) error {
	if IsControlTransfer(err) {
		b.controlTransfers.Add(1)
		controlTransferMeter.Mark(1)
		log.TraceBy(controlTransferLogFilter, "Control transfer leaving basic block", "block", b.id, "pos", pos, "signal", err)
		return err
	}
	faultCounter.Inc(1)
	if !FaultContextEnabled() {
		return err
	}
	section := b.SourceSection()
	if section == nil {
		return err
	}
	cfgDebugWarn("Fault in basic block", "block", b.id, "pos", pos, "err", err)
	return errors.Wrapf(err, "error in %s in %s", section.Identifier, section.SourceName)
}

func (b *BasicBlock) inconsistent(idx int) {
	err := successorOutOfRange(b.id, idx, len(b.successors))
	cfgDebugError("Inconsistent terminator", "block", b.id, "index", idx, "successors", len(b.successors))
	panic(err)
}

func (b *BasicBlock) escalate(idx int) {
	firstTakeCounter.Inc(1)
	if b.firstTake != nil {
		b.firstTake.OnFirstTake(b, idx)
	}
}

// ID returns the block id, unique within its function.
func (b *BasicBlock) ID() int { return b.id }

// Operations returns a copy of the operation list.
func (b *BasicBlock) Operations() []Operation {
	return append([]Operation(nil), b.operations...)
}

// NumOperations returns the number of operations before the terminator.
func (b *BasicBlock) NumOperations() int { return len(b.operations) }

// Terminator returns the block's terminator.
func (b *BasicBlock) Terminator() Terminator { return b.terminator }

// Successors returns a copy of the successor block ids. Execute returns
// indices into this list.
func (b *BasicBlock) Successors() []int {
	return append([]int(nil), b.successors...)
}

// SuccessorCount returns the number of possible successors.
func (b *BasicBlock) SuccessorCount() int { return len(b.successors) }

// Profile returns the block's branch profile.
func (b *BasicBlock) Profile() *BranchProfile { return b.profile }

// Probability returns the observed probability of successor i.
func (b *BasicBlock) Probability(i int) float64 { return b.profile.Probability(i) }

// IsFirstTake reports whether successor i has never been taken.
func (b *BasicBlock) IsFirstTake(i int) bool { return b.profile.IsFirstTake(i) }

// ControlTransfers returns how many control-transfer signals left the block.
func (b *BasicBlock) ControlTransfers() uint64 { return b.controlTransfers.Load() }

// Function returns the enclosing function, or nil for a detached block.
func (b *BasicBlock) Function() *Function { return b.fn }

// SourceSection returns the block's location, or nil when the block is not
// part of a function. The section is computed on first use; racing callers
// may compute it twice, which is harmless since the result is identical.
func (b *BasicBlock) SourceSection() *SourceSection {
	if s := b.section.Load(); s != nil {
		return s
	}
	if b.fn == nil {
		return nil
	}
	s := newSourceSection(b.id, b.fn)
	b.section.Store(s)
	return s
}

// BlockProfile is a snapshot of one block's profile.
type BlockProfile struct {
	ID         int
	Successors []int
	ProfileSnapshot
}

// ProfileSnapshot copies the block's profile.
func (b *BasicBlock) ProfileSnapshot() BlockProfile {
	return BlockProfile{
		ID:              b.id,
		Successors:      b.Successors(),
		ProfileSnapshot: b.profile.Snapshot(),
	}
}

func (b *BasicBlock) String() string {
	return fmt.Sprintf("basic block %d (#operations: %d, successors: %v)", b.id, len(b.operations), b.successors)
}
