package ops

import (
	"testing"

	"github.com/bnb-chain/blockprof/core/cfg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binop(t *testing.T, k Kind, dst int, a, b Operand) cfg.Operation {
	t.Helper()
	op, err := NewBinOp(k, dst, a, b)
	require.NoError(t, err)
	return op
}

func block(t *testing.T, id int, term cfg.Terminator, operations ...cfg.Operation) *cfg.BasicBlock {
	t.Helper()
	b, err := cfg.NewBasicBlock(id, operations, term)
	require.NoError(t, err)
	return b
}

// sumTo builds
//
//	0: r0 = 0; r1 = 1                      -> 1
//	1: r2 = r1 <= n (as !(r1 > n))         -> cond r2 ? 2 : 3
//	2: r0 += r1; r1 += 1                   -> 1
//	3: return r0
func sumTo(t *testing.T, n uint64) *cfg.Function {
	t.Helper()
	fn, err := cfg.NewFunction("sum", "sum.ir", []*cfg.BasicBlock{
		block(t, 0, Br{Target: 1}, binop(t, ADD, 0, K(0), K(0)), binop(t, ADD, 1, K(0), K(1))),
		block(t, 1, CondBr{Cond: 2, Then: 2, Else: 3},
			binop(t, GT, 2, R(1), K(n)),
			binop(t, EQ, 2, R(2), K(0))),
		block(t, 2, Br{Target: 1}, binop(t, ADD, 0, R(0), R(1)), binop(t, ADD, 1, R(1), K(1))),
		block(t, 3, Return{Reg: 0}),
	})
	require.NoError(t, err)
	return fn
}

// run drives fn from its entry until a block raises a control transfer.
func run(fn *cfg.Function, f *Frame) error {
	b := fn.Entry()
	for {
		idx, err := b.Execute(f)
		if err != nil {
			return err
		}
		b, _ = fn.Block(b.Successors()[idx])
	}
}

func TestSumLoopProfile(t *testing.T) {
	fn := sumTo(t, 10)
	f := NewFrame(3)
	err := run(fn, f)
	var ret *ReturnSignal
	require.ErrorAs(t, err, &ret)
	assert.Equal(t, uint64(55), ret.Value.Uint64())

	head, _ := fn.Block(1)
	assert.Equal(t, uint64(11), head.Profile().Total())
	assert.InDelta(t, 10.0/11.0, head.Probability(0), 1e-12)
	assert.InDelta(t, 1.0/11.0, head.Probability(1), 1e-12)

	exit, _ := fn.Block(3)
	assert.Equal(t, uint64(1), exit.ControlTransfers())
	assert.Equal(t, uint64(0), exit.Profile().Total())
	assert.Equal(t, []int{0, 1, 2, 3}, fn.HotLayout())
}

func TestFaultCarriesBlockContext(t *testing.T) {
	fn, err := cfg.NewFunction("guarded", "guarded.ir", []*cfg.BasicBlock{
		block(t, 0, Br{Target: 1}, Nop{}),
		block(t, 1, Unreachable{}, Check{Reg: 0}),
	})
	require.NoError(t, err)

	err = run(fn, NewFrame(1))
	require.ErrorIs(t, err, ErrCheckFailed)
	assert.Contains(t, err.Error(), "basic block 1 in function guarded in guarded.ir")

	f := NewFrame(1)
	f.Regs[0].SetOne()
	err = run(fn, f)
	require.ErrorIs(t, err, ErrUnreachable)
	assert.Contains(t, err.Error(), "basic block 1 in function guarded")
}
