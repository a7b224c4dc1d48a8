package core

import (
	"fmt"
	"math/big"
)

// Operation is the arithmetic the deducer applies when filling a missing
// operand: the forward operation of a builtin (Add/Mul) or its inverse
// (Sub/DivMod) used to recover "a" or "b" from "c".
type Operation int

const (
	OpAdd Operation = iota
	OpSub
	OpMul
	OpDivMod
)

// String mirrors the operator glyph used in security-check error messages.
func (op Operation) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDivMod:
		return "/"
	default:
		return "?"
	}
}

// ApplyOp evaluates lhs `op` rhs mod modulus, using a Field so Add/Sub/Mul
// and the DivMod inverse all go through the same reduction logic
// (big.Int.Mod always returns a non-negative representative for a
// positive modulus, which is what resolves the signed/unsigned
// subtraction ambiguity: Sub may go negative, but the subsequent
// reduction always lands back in [0, p)). The caller always gets a
// value already reduced into [0, p).
func ApplyOp(lhs, rhs *big.Int, op Operation, modulus *big.Int) (*big.Int, error) {
	field, err := NewField(modulus)
	if err != nil {
		return nil, fmt.Errorf("apply_op: %w", err)
	}
	a := field.NewElement(lhs)
	b := field.NewElement(rhs)

	switch op {
	case OpAdd:
		return a.Add(b).Big(), nil
	case OpSub:
		return a.Sub(b).Big(), nil
	case OpMul:
		return a.Mul(b).Big(), nil
	case OpDivMod:
		result, err := a.Div(b)
		if err != nil {
			return nil, fmt.Errorf("div_mod: division by %s is undefined mod %s: %w", rhs, modulus, err)
		}
		return result.Big(), nil
	default:
		return nil, fmt.Errorf("unknown operation %d", op)
	}
}

// DivModUnsigned computes (a * b^-1) mod p, the inverse operation
// mul_mod's deducer uses to recover a missing factor.
func DivModUnsigned(a, b, p *big.Int) (*big.Int, error) {
	return ApplyOp(a, b, OpDivMod, p)
}
