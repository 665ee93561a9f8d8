// Package algebra holds the matrix calculator: parsing, inverse,
// determinant, products and linear system classification.
package algebra

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrEmpty     = errors.New("empty input")
	ErrShape     = errors.New("matrix shape mismatch")
	ErrNotSquare = errors.New("matrix must be square")
	ErrNonFinite = errors.New("value is not a finite number")
)

// ParseMatrix reads one row per line with values separated by spaces.
// Blank lines are ignored and every row must have the same width.
func ParseMatrix(text string) (*mat.Dense, error) {
	var rows [][]float64
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row, err := parseValues(fields)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}

// ParseVector reads every value in text, across lines, as one column.
func ParseVector(text string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, ErrEmpty
	}
	return parseValues(fields)
}

func parseValues(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || !isFinite(v) {
			return nil, fmt.Errorf("invalid number %q", f)
		}
		out[i] = v
	}
	return out, nil
}

// FromRows builds a dense matrix from row slices.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i+1, len(r), cols, ErrShape)
		}
		if err := checkValues(r); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		data = append(data, r...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// ToRows copies m into row slices.
func ToRows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// Format renders m with the given number of decimals, one row per line.
func Format(m mat.Matrix, precision int) string {
	return fmt.Sprintf("%.*f", precision, mat.Formatted(m, mat.Squeeze()))
}

// FormatVector renders v as a single row.
func FormatVector(v []float64, precision int) string {
	if len(v) == 0 {
		return ""
	}
	row := make([]float64, len(v))
	copy(row, v)
	return Format(mat.NewDense(1, len(row), row), precision)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkValues(v []float64) error {
	for _, x := range v {
		if !isFinite(x) {
			return ErrNonFinite
		}
	}
	return nil
}

// checkFinite fails when any entry of m overflowed or is NaN.
func checkFinite(m mat.Matrix) error {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !isFinite(m.At(i, j)) {
				return ErrNonFinite
			}
		}
	}
	return nil
}

func checkSquare(a mat.Matrix) error {
	r, c := a.Dims()
	if r != c {
		return fmt.Errorf("%dx%d: %w", r, c, ErrNotSquare)
	}
	return nil
}
