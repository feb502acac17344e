// Package math provides the checked fixed-point arithmetic shared by the
// swap curve and the vault share accounting. All cross products are widened
// to 128 bits before narrowing back to u64, and every narrowing that does
// not fit reports ErrMathOverflow instead of wrapping. Division truncates
// toward zero, so the pool side absorbs rounding loss.
package math

import (
	"errors"
	"math/big"
)

var (
	// ErrMathOverflow is returned when a checked operation exceeds its domain.
	ErrMathOverflow = errors.New("math overflow")
	// ErrMathUnderflow is returned when a checked subtraction would go negative.
	ErrMathUnderflow = errors.New("math underflow")
	// ErrDivideByZero is returned on division with a zero denominator.
	ErrDivideByZero = errors.New("divide by zero")
)

// CheckedAdd returns a+b or ErrMathOverflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrMathOverflow
	}
	return sum, nil
}

// CheckedSub returns a-b or ErrMathUnderflow.
func CheckedSub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrMathUnderflow
	}
	return a - b, nil
}

// CheckedMul returns a*b or ErrMathOverflow.
func CheckedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrMathOverflow
	}
	return product, nil
}

// CheckedDiv returns floor(a/b) or ErrDivideByZero.
func CheckedDiv(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// MulDiv computes floor(a*b/denominator) with a 128-bit intermediate.
func MulDiv(a, b, denominator uint64) (uint64, error) {
	if denominator == 0 {
		return 0, ErrDivideByZero
	}
	out := new(big.Int).Mul(new(big.Int).SetUint64(a), new(big.Int).SetUint64(b))
	out.Div(out, new(big.Int).SetUint64(denominator))
	return ToU64(out)
}

// ToU64 narrows a big.Int to u64, failing if the value does not fit.
func ToU64(v *big.Int) (uint64, error) {
	if v.Sign() < 0 {
		return 0, ErrMathUnderflow
	}
	if !v.IsUint64() {
		return 0, ErrMathOverflow
	}
	return v.Uint64(), nil
}

// BigMulDiv computes floor(a*b/denominator) over big.Int operands.
func BigMulDiv(a, b, denominator *big.Int) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, ErrDivideByZero
	}
	out := new(big.Int).Mul(a, b)
	return out.Div(out, denominator), nil
}

// U64 is shorthand for big.Int construction from a u64.
func U64(v uint64) *big.Int {
	return new(big.Int).SetUint64(v)
}

// AbsDiff returns |a-b| without allocating sign handling at call sites.
func AbsDiff(a, b *big.Int) *big.Int {
	out := new(big.Int).Sub(a, b)
	return out.Abs(out)
}
