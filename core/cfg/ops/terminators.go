package ops

import (
	"fmt"

	"github.com/bnb-chain/blockprof/core/cfg"
	"github.com/holiman/uint256"
)

// ReturnSignal is the control transfer raised by Return. It carries the
// returned value to whatever drives the blocks.
type ReturnSignal struct {
	Value uint256.Int
}

func (r *ReturnSignal) Error() string    { return fmt.Sprintf("return %s", r.Value.Dec()) }
func (r *ReturnSignal) ControlTransfer() {}

var _ cfg.ControlTransfer = (*ReturnSignal)(nil)

// Br jumps unconditionally to Target.
type Br struct {
	Target int
}

func (t Br) Successors() []int { return []int{t.Target} }

func (t Br) Resolve(state any) (int, error) {
	if _, err := frameOf(state); err != nil {
		return 0, err
	}
	return cfg.DefaultSuccessor, nil
}

// CondBr takes Then (index 0) when Cond is non-zero and Else (index 1)
// otherwise.
type CondBr struct {
	Cond       int
	Then, Else int
}

func (t CondBr) Successors() []int { return []int{t.Then, t.Else} }

func (t CondBr) Resolve(state any) (int, error) {
	f, err := frameOf(state)
	if err != nil {
		return 0, err
	}
	v, err := f.Reg(t.Cond)
	if err != nil {
		return 0, err
	}
	if v.IsZero() {
		return 1, nil
	}
	return 0, nil
}

// SwitchCase maps a constant to a target block.
type SwitchCase struct {
	Value  uint64
	Target int
}

// Switch compares a register against each case in order; the first match
// wins. Case i resolves to index i and the default to the last index. The
// cases are fixed when the switch is built.
type Switch struct {
	reg   int
	cases []SwitchCase
	def   int
}

// NewSwitch builds a switch on register reg. The cases are copied.
func NewSwitch(reg int, cases []SwitchCase, def int) *Switch {
	return &Switch{reg: reg, cases: append([]SwitchCase(nil), cases...), def: def}
}

func (t *Switch) Reg() int { return t.reg }

// Cases returns a copy of the case list.
func (t *Switch) Cases() []SwitchCase { return append([]SwitchCase(nil), t.cases...) }

func (t *Switch) Default() int { return t.def }

func (t *Switch) Successors() []int {
	succ := make([]int, 0, len(t.cases)+1)
	for _, c := range t.cases {
		succ = append(succ, c.Target)
	}
	return append(succ, t.def)
}

func (t *Switch) Resolve(state any) (int, error) {
	f, err := frameOf(state)
	if err != nil {
		return 0, err
	}
	v, err := f.Reg(t.reg)
	if err != nil {
		return 0, err
	}
	if v.IsUint64() {
		n := v.Uint64()
		for i, c := range t.cases {
			if c.Value == n {
				return i, nil
			}
		}
	}
	return len(t.cases), nil
}

// Return leaves the function with the value of Reg. It has no successors.
type Return struct {
	Reg int
}

func (Return) Successors() []int { return nil }

func (t Return) Resolve(state any) (int, error) {
	f, err := frameOf(state)
	if err != nil {
		return 0, err
	}
	v, err := f.Reg(t.Reg)
	if err != nil {
		return 0, err
	}
	sig := new(ReturnSignal)
	sig.Value.Set(v)
	return 0, sig
}

// Unreachable marks a path that must never execute.
type Unreachable struct{}

func (Unreachable) Successors() []int { return nil }

func (Unreachable) Resolve(state any) (int, error) {
	return 0, ErrUnreachable
}
