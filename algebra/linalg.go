package algebra

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DetTolerance is the absolute bound under which a determinant is zero.
const DetTolerance = 1e-8

var ErrSingular = errors.New("matrix has no inverse (determinant = 0)")

var epsilon = math.Nextafter(1, 2) - 1

// IsZero reports whether det is zero within DetTolerance.
func IsZero(det float64) bool {
	return math.Abs(det) <= DetTolerance
}

func Determinant(a mat.Matrix) (float64, error) {
	if err := checkSquare(a); err != nil {
		return 0, err
	}
	det := mat.Det(a)
	if !isFinite(det) {
		return 0, fmt.Errorf("determinant: %w", ErrNonFinite)
	}
	return det, nil
}

// Inverse returns the inverse of a square matrix with a non-zero determinant.
func Inverse(a mat.Matrix) (*mat.Dense, error) {
	det, err := Determinant(a)
	if err != nil {
		return nil, err
	}
	if IsZero(det) {
		return nil, ErrSingular
	}
	var inv mat.Dense
	if err := inv.Inverse(a); err != nil && !isConditionErr(err) {
		return nil, fmt.Errorf("invert: %w", err)
	}
	if err := checkFinite(&inv); err != nil {
		return nil, fmt.Errorf("inverse: %w", err)
	}
	return &inv, nil
}

// Multiply returns a*b; the columns of a must match the rows of b.
func Multiply(a, b mat.Matrix) (*mat.Dense, error) {
	_, ac := a.Dims()
	br, _ := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("columns of A (%d) != rows of B (%d): %w", ac, br, ErrShape)
	}
	var out mat.Dense
	out.Mul(a, b)
	if err := checkFinite(&out); err != nil {
		return nil, fmt.Errorf("product: %w", err)
	}
	return &out, nil
}

// Rank counts singular values above max(sv) * max(rows, cols) * eps.
func Rank(a mat.Matrix) (int, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDNone) {
		return 0, errors.New("singular value decomposition failed")
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, nil
	}
	r, c := a.Dims()
	tol := values[0] * float64(max(r, c)) * epsilon
	rank := 0
	for _, v := range values {
		if v > tol {
			rank++
		}
	}
	return rank, nil
}

// gonum reports ill-conditioned but usable results as mat.Condition.
func isConditionErr(err error) bool {
	var cond mat.Condition
	return errors.As(err, &cond)
}
