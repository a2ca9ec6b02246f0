package table

import (
	"fmt"
	"time"
)

// Kind is the declared scalar kind of a column's literal value.
type Kind int

const (
	// KindAny is a literal whose kind is only known at runtime.
	KindAny Kind = iota
	KindNumber
	KindString
	KindTime
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value describes how a column reads a row. Literal is the canonical value
// used for sorting and summaries; Display only changes what is shown.
// A literal that panics or yields nil, NaN, ±Inf or a non-scalar is
// malformed: it sorts lowest, sums as zero and renders as "--".
type Value[T any] struct {
	Kind    Kind
	Literal func(T) any
	Display func(T) string
	// Percentage formats a numeric literal as a percentage of 1.
	Percentage bool
}

// WithDisplay returns a copy of v rendered through fn.
func (v Value[T]) WithDisplay(fn func(T) string) Value[T] {
	v.Display = fn
	return v
}

// AsPercentage returns a copy of v formatted as a percentage.
func (v Value[T]) AsPercentage() Value[T] {
	v.Percentage = true
	return v
}

// Number declares a floating point literal.
func Number[T any](fn func(T) float64) Value[T] {
	v := Value[T]{Kind: KindNumber}
	if fn != nil {
		v.Literal = func(row T) any { return fn(row) }
	}
	return v
}

// Int declares an integer literal.
func Int[T any](fn func(T) int) Value[T] {
	v := Value[T]{Kind: KindNumber}
	if fn != nil {
		v.Literal = func(row T) any { return fn(row) }
	}
	return v
}

// String declares a string literal, ordered lexicographically.
func String[T any](fn func(T) string) Value[T] {
	v := Value[T]{Kind: KindString}
	if fn != nil {
		v.Literal = func(row T) any { return fn(row) }
	}
	return v
}

// Time declares a time literal, ordered chronologically.
func Time[T any](fn func(T) time.Time) Value[T] {
	v := Value[T]{Kind: KindTime}
	if fn != nil {
		v.Literal = func(row T) any { return fn(row) }
	}
	return v
}

// Bool declares a boolean literal; false orders before true.
func Bool[T any](fn func(T) bool) Value[T] {
	v := Value[T]{Kind: KindBool}
	if fn != nil {
		v.Literal = func(row T) any { return fn(row) }
	}
	return v
}

// Any declares a literal of dynamic kind. Pointers are dereferenced and a
// nil result is treated as a missing value.
func Any[T any](fn func(T) any) Value[T] {
	return Value[T]{Kind: KindAny, Literal: fn}
}
