package cfg

// Operation is a single non-branching step of a basic block. It runs
// against the execution state borrowed for one Execute call and may return
// a ControlTransfer signal or any other error (a fault).
type Operation interface {
	Execute(state any) error
}

// OperationFunc adapts a plain function to the Operation interface.
type OperationFunc func(state any) error

func (f OperationFunc) Execute(state any) error { return f(state) }

// Terminator selects which successor runs after a block's operations.
//
// Successors must return the same ordered block ids for the lifetime of the
// terminator. Resolve returns an index into that list and follows the same
// signal/fault contract as Operation.
type Terminator interface {
	Successors() []int
	Resolve(state any) (int, error)
}
