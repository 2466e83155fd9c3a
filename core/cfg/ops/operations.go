package ops

import (
	"fmt"

	"github.com/bnb-chain/blockprof/core/cfg"
	"github.com/cockroachdb/errors"
	"github.com/holiman/uint256"
)

// Operand is either a register or a constant.
type Operand struct {
	reg   int
	konst *uint256.Int
}

// R refers to register i.
func R(i int) Operand { return Operand{reg: i} }

// K is a constant operand.
func K(v uint64) Operand { return Operand{konst: uint256.NewInt(v)} }

// KU is a constant operand holding a copy of v.
func KU(v *uint256.Int) Operand { return Operand{konst: new(uint256.Int).Set(v)} }

// IsConst reports whether the operand is a constant.
func (o Operand) IsConst() bool { return o.konst != nil }

func (o Operand) String() string {
	if o.konst != nil {
		return o.konst.Dec()
	}
	return fmt.Sprintf("r%d", o.reg)
}

// Nop does nothing.
type Nop struct{}

func (Nop) Execute(state any) error {
	_, err := frameOf(state)
	return err
}

// Const loads a constant into Dst.
type Const struct {
	Dst int
	Val uint256.Int
}

func (c *Const) Execute(state any) error {
	f, err := frameOf(state)
	if err != nil {
		return err
	}
	return f.Set(c.Dst, &c.Val)
}

// Mov copies Src into Dst.
type Mov struct {
	Dst, Src int
}

func (m Mov) Execute(state any) error {
	f, err := frameOf(state)
	if err != nil {
		return err
	}
	v, err := f.Reg(m.Src)
	if err != nil {
		return err
	}
	return f.Set(m.Dst, v)
}

// Check faults with ErrCheckFailed when Reg holds zero.
type Check struct {
	Reg int
}

func (c Check) Execute(state any) error {
	f, err := frameOf(state)
	if err != nil {
		return err
	}
	v, err := f.Reg(c.Reg)
	if err != nil {
		return err
	}
	if v.IsZero() {
		return errors.Wrapf(ErrCheckFailed, "r%d", c.Reg)
	}
	return nil
}

// NewBinOp returns an operation computing a <kind> b into register dst.
// The concrete variant is chosen from the operand shapes: two constants
// fold into a Const, mixed shapes keep the constant pre-decoded, two
// registers read both from the frame.
func NewBinOp(kind Kind, dst int, a, b Operand) (cfg.Operation, error) {
	if kind > EQ {
		return nil, errors.Newf("ops: unknown binary operation %d", byte(kind))
	}
	switch {
	case a.IsConst() && b.IsConst():
		c := &Const{Dst: dst}
		kind.eval(&c.Val, a.konst, b.konst)
		return c, nil
	case !a.IsConst() && b.IsConst():
		return &binOpRK{kind: kind, dst: dst, a: a.reg, b: *b.konst}, nil
	case a.IsConst() && !b.IsConst():
		return &binOpKR{kind: kind, dst: dst, a: *a.konst, b: b.reg}, nil
	default:
		return &binOpRR{kind: kind, dst: dst, a: a.reg, b: b.reg}, nil
	}
}

type binOpRR struct {
	kind      Kind
	dst, a, b int
}

func (o *binOpRR) Execute(state any) error {
	f, err := frameOf(state)
	if err != nil {
		return err
	}
	a, err := f.Reg(o.a)
	if err != nil {
		return err
	}
	b, err := f.Reg(o.b)
	if err != nil {
		return err
	}
	var tmp uint256.Int
	return f.Set(o.dst, o.kind.eval(&tmp, a, b))
}

type binOpRK struct {
	kind   Kind
	dst, a int
	b      uint256.Int
}

func (o *binOpRK) Execute(state any) error {
	f, err := frameOf(state)
	if err != nil {
		return err
	}
	a, err := f.Reg(o.a)
	if err != nil {
		return err
	}
	var tmp uint256.Int
	return f.Set(o.dst, o.kind.eval(&tmp, a, &o.b))
}

type binOpKR struct {
	kind   Kind
	dst, b int
	a      uint256.Int
}

func (o *binOpKR) Execute(state any) error {
	f, err := frameOf(state)
	if err != nil {
		return err
	}
	b, err := f.Reg(o.b)
	if err != nil {
		return err
	}
	var tmp uint256.Int
	return f.Set(o.dst, o.kind.eval(&tmp, &o.a, b))
}
