// Package combinatorics implements the counting, Euclid and set
// calculators.
package combinatorics

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

type Kind string

const (
	Permutation           Kind = "permutation"
	PermutationRepetition Kind = "permutation_repetition"
	Combination           Kind = "combination"
	CombinationRepetition Kind = "combination_repetition"
)

// MaxOperand bounds n and r so a single request cannot build huge numbers.
const MaxOperand = 5000

var (
	ErrNegative    = errors.New("n and r must be non-negative")
	ErrRange       = errors.New("r cannot be greater than n")
	ErrTooLarge    = fmt.Errorf("operands must not exceed %d", MaxOperand)
	ErrUnknownKind = errors.New("unknown calculation kind")
)

// ParseKind normalizes a kind name; dashes and spaces count as underscores.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s))))
	switch k {
	case Permutation, PermutationRepetition, Combination, CombinationRepetition:
		return k, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Result is a count together with the formula used to obtain it.
type Result struct {
	Kind    Kind
	N, R    int64
	Formula string
	Value   *big.Int
}

func (r Result) String() string {
	return fmt.Sprintf("%s\nResult: %s", r.Formula, r.Value)
}

// Factorial returns n! exactly.
func Factorial(n int64) (*big.Int, error) {
	if n < 0 {
		return nil, ErrNegative
	}
	if n > MaxOperand {
		return nil, ErrTooLarge
	}
	return new(big.Int).MulRange(1, n), nil
}

// Count computes the selected permutation or combination count.
func Count(kind Kind, n, r int64) (Result, error) {
	if n < 0 || r < 0 {
		return Result{}, ErrNegative
	}
	if n > MaxOperand || r > MaxOperand {
		return Result{}, ErrTooLarge
	}
	res := Result{Kind: kind, N: n, R: r}

	switch kind {
	case Permutation:
		if r > n {
			return Result{}, fmt.Errorf("permutation without repetition: %w", ErrRange)
		}
		res.Formula = fmt.Sprintf("P(%d,%d) = %d! / (%d-%d)!", n, r, n, n, r)
		res.Value = new(big.Int).MulRange(n-r+1, n)
	case PermutationRepetition:
		res.Formula = fmt.Sprintf("n^r = %d^%d", n, r)
		res.Value = new(big.Int).Exp(big.NewInt(n), big.NewInt(r), nil)
	case Combination:
		if r > n {
			return Result{}, fmt.Errorf("combination without repetition: %w", ErrRange)
		}
		res.Formula = fmt.Sprintf("C(%d,%d) = %d! / (%d! * %d!)", n, r, n, r, n-r)
		res.Value = new(big.Int).Binomial(n, r)
	case CombinationRepetition:
		if n < 1 {
			return Result{}, errors.New("combination with repetition needs n >= 1")
		}
		res.Formula = fmt.Sprintf("C(%d+%d-1,%d) = (%d)! / (%d! * (%d)!)", n, r, r, n+r-1, r, n-1)
		res.Value = new(big.Int).Binomial(n+r-1, r)
	default:
		return Result{}, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
	return res, nil
}
