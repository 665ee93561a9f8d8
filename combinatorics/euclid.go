package combinatorics

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Trace is the step-by-step run of Euclid's algorithm.
type Trace struct {
	A, B  int64
	GCD   int64
	Steps []string
}

func (t Trace) String() string {
	var sb strings.Builder
	sb.WriteString("Euclid's algorithm:\n")
	sb.WriteString(strings.Join(t.Steps, "\n"))
	fmt.Fprintf(&sb, "\n\ngcd(%d, %d) = %d", t.A, t.B, t.GCD)
	return sb.String()
}

// GCD runs Euclid's algorithm on |a| and |b|, recording each division as
// "x = y * (q) + r". GCD(0, 0) is 0 with no steps.
func GCD(a, b int64) (Trace, error) {
	if a == math.MinInt64 || b == math.MinInt64 {
		return Trace{}, errors.New("operand out of range")
	}
	x, y := abs(a), abs(b)
	var steps []string
	for y != 0 {
		steps = append(steps, fmt.Sprintf("%d = %d * (%d) + %d", x, y, x/y, x%y))
		x, y = y, x%y
	}
	return Trace{A: a, B: b, GCD: x, Steps: steps}, nil
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
