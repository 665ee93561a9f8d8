package combinatorics

import (
	"maps"
	"slices"
	"strings"
)

// ParseSet splits text on whitespace and commas into a sorted set of tokens.
func ParseSet(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	return sorted(toSet(fields))
}

func Union(a, b []string) []string {
	set := toSet(a)
	for _, v := range b {
		set[v] = struct{}{}
	}
	return sorted(set)
}

func Intersection(a, b []string) []string {
	in := toSet(b)
	out := map[string]struct{}{}
	for _, v := range a {
		if _, ok := in[v]; ok {
			out[v] = struct{}{}
		}
	}
	return sorted(out)
}

// Difference returns the tokens of a that are not in b.
func Difference(a, b []string) []string {
	out := toSet(a)
	for _, v := range b {
		delete(out, v)
	}
	return sorted(out)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sorted(set map[string]struct{}) []string {
	out := slices.Sorted(maps.Keys(set))
	if out == nil {
		return []string{}
	}
	return out
}
