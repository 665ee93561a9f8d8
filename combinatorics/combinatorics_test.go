package combinatorics

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "1"},
		{1, "1"},
		{5, "120"},
		{25, "15511210043330985984000000"},
	}
	for _, tt := range tests {
		got, err := Factorial(tt.n)
		if err != nil {
			t.Fatalf("factorial(%d): %v", tt.n, err)
		}
		if got.String() != tt.want {
			t.Fatalf("factorial(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
	if _, err := Factorial(-1); !errors.Is(err, ErrNegative) {
		t.Fatalf("negative err = %v", err)
	}
	if _, err := Factorial(MaxOperand + 1); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("large err = %v", err)
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		kind    Kind
		n, r    int64
		want    string
		formula string
	}{
		{Permutation, 5, 2, "20", "P(5,2) = 5! / (5-2)!"},
		{PermutationRepetition, 5, 2, "25", "n^r = 5^2"},
		{Combination, 5, 2, "10", "C(5,2) = 5! / (2! * 3!)"},
		{CombinationRepetition, 5, 2, "15", "C(5+2-1,2) = (6)! / (2! * (4)!)"},
		{Permutation, 4, 0, "1", "P(4,0) = 4! / (4-0)!"},
		{Combination, 0, 0, "1", "C(0,0) = 0! / (0! * 0!)"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			got, err := Count(tt.kind, tt.n, tt.r)
			if err != nil {
				t.Fatalf("count: %v", err)
			}
			if got.Value.String() != tt.want {
				t.Fatalf("value = %s, want %s", got.Value, tt.want)
			}
			if got.Formula != tt.formula {
				t.Fatalf("formula = %q, want %q", got.Formula, tt.formula)
			}
			if !strings.HasSuffix(got.String(), "Result: "+tt.want) {
				t.Fatalf("string = %q", got.String())
			}
		})
	}
}

func TestCountErrors(t *testing.T) {
	if _, err := Count(Permutation, 2, 5); !errors.Is(err, ErrRange) {
		t.Fatalf("r > n permutation err = %v", err)
	}
	if _, err := Count(Combination, 2, 5); !errors.Is(err, ErrRange) {
		t.Fatalf("r > n combination err = %v", err)
	}
	if _, err := Count(Combination, -1, 0); !errors.Is(err, ErrNegative) {
		t.Fatalf("negative err = %v", err)
	}
	if _, err := Count(CombinationRepetition, 0, 0); err == nil {
		t.Fatal("expected error for n = 0 with repetition")
	}
	if _, err := Count(Kind("arrangement"), 3, 1); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("unknown kind err = %v", err)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Combination-Repetition")
	if err != nil {
		t.Fatalf("parse kind: %v", err)
	}
	if k != CombinationRepetition {
		t.Fatalf("kind = %s", k)
	}
	if _, err := ParseKind("nope"); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v", err)
	}
}

func TestGCD(t *testing.T) {
	tr, err := GCD(48, 18)
	if err != nil {
		t.Fatalf("gcd: %v", err)
	}
	if tr.GCD != 6 {
		t.Fatalf("gcd = %d, want 6", tr.GCD)
	}
	wantSteps := []string{
		"48 = 18 * (2) + 12",
		"18 = 12 * (1) + 6",
		"12 = 6 * (2) + 0",
	}
	if !slices.Equal(tr.Steps, wantSteps) {
		t.Fatalf("steps = %q, want %q", tr.Steps, wantSteps)
	}
	if !strings.HasSuffix(tr.String(), "gcd(48, 18) = 6") {
		t.Fatalf("string = %q", tr.String())
	}
}

func TestGCDEdges(t *testing.T) {
	tests := []struct {
		a, b  int64
		want  int64
		steps int
	}{
		{0, 0, 0, 0},
		{7, 0, 7, 0},
		{0, 9, 9, 1},
		{-48, 18, 6, 3},
		{17, 5, 1, 3},
	}
	for _, tt := range tests {
		tr, err := GCD(tt.a, tt.b)
		if err != nil {
			t.Fatalf("gcd(%d, %d): %v", tt.a, tt.b, err)
		}
		if tr.GCD != tt.want || len(tr.Steps) != tt.steps {
			t.Fatalf("gcd(%d, %d) = %d with %d steps, want %d with %d", tt.a, tt.b, tr.GCD, len(tr.Steps), tt.want, tt.steps)
		}
	}
}

func TestSets(t *testing.T) {
	a := ParseSet("a b c")
	b := ParseSet("b, c,d")

	if got, want := Union(a, b), []string{"a", "b", "c", "d"}; !slices.Equal(got, want) {
		t.Fatalf("union = %v, want %v", got, want)
	}
	if got, want := Intersection(a, b), []string{"b", "c"}; !slices.Equal(got, want) {
		t.Fatalf("intersection = %v, want %v", got, want)
	}
	if got, want := Difference(a, b), []string{"a"}; !slices.Equal(got, want) {
		t.Fatalf("difference = %v, want %v", got, want)
	}
}

func TestParseSetDeduplicates(t *testing.T) {
	if got, want := ParseSet("x y x\ny"), []string{"x", "y"}; !slices.Equal(got, want) {
		t.Fatalf("parse = %v, want %v", got, want)
	}
	if got := ParseSet("  "); len(got) != 0 {
		t.Fatalf("parse blank = %v", got)
	}
}
