package ops

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Kind names a binary operation.
type Kind byte

const (
	ADD Kind = iota
	SUB
	MUL
	DIV
	MOD
	AND
	OR
	XOR
	LT
	GT
	EQ
)

func (k Kind) String() string {
	switch k {
	case ADD:
		return "ADD"
	case SUB:
		return "SUB"
	case MUL:
		return "MUL"
	case DIV:
		return "DIV"
	case MOD:
		return "MOD"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case XOR:
		return "XOR"
	case LT:
		return "LT"
	case GT:
		return "GT"
	case EQ:
		return "EQ"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// eval stores a <k> b into out. Division and modulo by zero yield zero.
func (k Kind) eval(out, a, b *uint256.Int) *uint256.Int {
	switch k {
	case ADD:
		return out.Add(a, b)
	case SUB:
		return out.Sub(a, b)
	case MUL:
		return out.Mul(a, b)
	case DIV:
		return out.Div(a, b)
	case MOD:
		return out.Mod(a, b)
	case AND:
		return out.And(a, b)
	case OR:
		return out.Or(a, b)
	case XOR:
		return out.Xor(a, b)
	case LT:
		return setBool(out, a.Lt(b))
	case GT:
		return setBool(out, a.Gt(b))
	case EQ:
		return setBool(out, a.Eq(b))
	}
	panic(fmt.Sprintf("ops: unknown kind %d", byte(k)))
}

func setBool(out *uint256.Int, v bool) *uint256.Int {
	if v {
		return out.SetOne()
	}
	return out.Clear()
}
