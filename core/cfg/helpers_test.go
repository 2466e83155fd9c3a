package cfg

import (
	"errors"
	"fmt"
)

// trace is the execution state used by the tests in this package.
type trace struct {
	calls []string
	pick  int
}

func record(name string) Operation {
	return OperationFunc(func(state any) error {
		st := state.(*trace)
		st.calls = append(st.calls, name)
		return nil
	})
}

func failWith(name string, err error) Operation {
	return OperationFunc(func(state any) error {
		st := state.(*trace)
		st.calls = append(st.calls, name)
		return err
	})
}

type testSignal struct{ target string }

func (s *testSignal) Error() string    { return fmt.Sprintf("unwind to %s", s.target) }
func (s *testSignal) ControlTransfer() {}

// pickTerm returns the index stored in the trace, recording its own call.
type pickTerm struct {
	succ []int
	err  error
}

func (t *pickTerm) Successors() []int { return t.succ }

func (t *pickTerm) Resolve(state any) (int, error) {
	st := state.(*trace)
	st.calls = append(st.calls, "term")
	if t.err != nil {
		return 0, t.err
	}
	return st.pick, nil
}

var errBoom = errors.New("boom")

func mustBlock(id int, ops []Operation, term Terminator) *BasicBlock {
	b, err := NewBasicBlock(id, ops, term)
	if err != nil {
		panic(err)
	}
	return b
}
