package algebra

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
)

type Method string

const (
	MethodGaussJordan Method = "gauss-jordan"
	MethodCramer      Method = "cramer"
)

// ParseMethod accepts the method names case-insensitively; empty means
// Gauss-Jordan.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case "", MethodGaussJordan:
		return MethodGaussJordan, nil
	case MethodCramer:
		return MethodCramer, nil
	}
	return "", fmt.Errorf("unknown method %q", s)
}

type Status string

const (
	StatusUnique       Status = "unique"
	StatusInfinite     Status = "infinite"
	StatusNone         Status = "none"
	StatusUndetermined Status = "undetermined"
)

func (s Status) Describe() string {
	switch s {
	case StatusUnique:
		return "unique solution"
	case StatusInfinite:
		return "infinite solutions (indeterminate system)"
	case StatusNone:
		return "no solution (inconsistent system)"
	default:
		return "undetermined case"
	}
}

type Solution struct {
	Status        Status
	Method        Method
	Determinant   float64
	X             []float64
	RankA         int
	RankAugmented int
}

// Solve classifies A*x = b and, when det(A) is non-zero, solves it with
// the requested method. Singular systems are classified by comparing
// rank(A) with rank([A|b]).
func Solve(a mat.Matrix, b []float64, method Method) (Solution, error) {
	if err := checkSquare(a); err != nil {
		return Solution{}, err
	}
	n, _ := a.Dims()
	if len(b) != n {
		return Solution{}, fmt.Errorf("vector b must have %d rows, got %d: %w", n, len(b), ErrShape)
	}
	if method == "" {
		method = MethodGaussJordan
	}
	if method != MethodGaussJordan && method != MethodCramer {
		return Solution{}, fmt.Errorf("unknown method %q", method)
	}

	if err := checkValues(b); err != nil {
		return Solution{}, fmt.Errorf("vector b: %w", err)
	}

	bb := make([]float64, n)
	copy(bb, b)
	det, err := Determinant(a)
	if err != nil {
		return Solution{}, err
	}
	sol := Solution{Method: method, Determinant: det}

	if !IsZero(det) {
		if method == MethodCramer {
			sol.X = cramer(a, bb, det)
		} else {
			sol.X, err = solveDirect(a, bb)
		}
		if err != nil {
			return Solution{}, err
		}
		if err := checkValues(sol.X); err != nil {
			return Solution{}, fmt.Errorf("solution: %w", err)
		}
		sol.Status = StatusUnique
		sol.RankA, sol.RankAugmented = n, n
		return sol, nil
	}

	var aug mat.Dense
	aug.Augment(a, mat.NewVecDense(n, bb))
	rankA, err := Rank(a)
	if err != nil {
		return Solution{}, err
	}
	rankAb, err := Rank(&aug)
	if err != nil {
		return Solution{}, err
	}
	sol.RankA, sol.RankAugmented = rankA, rankAb

	switch {
	case rankA < rankAb:
		sol.Status = StatusNone
	case rankA == rankAb && rankA < n:
		sol.Status = StatusInfinite
	default:
		sol.Status = StatusUndetermined
	}
	return sol, nil
}

func solveDirect(a mat.Matrix, b []float64) ([]float64, error) {
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(len(b), b)); err != nil && !isConditionErr(err) {
		return nil, fmt.Errorf("solve: %w", err)
	}
	return mat.Col(nil, 0, &x), nil
}

// cramer replaces column i of A with b and divides by det(A), for each i.
func cramer(a mat.Matrix, b []float64, det float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	for i := 0; i < n; i++ {
		ai := mat.DenseCopyOf(a)
		ai.SetCol(i, b)
		x[i] = mat.Det(ai) / det
	}
	return x
}
