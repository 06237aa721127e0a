// Package threshold provides ordered breakpoint tables used to map a continuous
// scalar onto named values.
//
// A Table is built once from constant data and is read-only afterwards, so it can
// be shared between goroutines without locking. Two layouts are supported:
//
//   - Anchored: one value per breakpoint. A query lands in the bracket between two
//     breakpoints and yields both anchors plus the fractional position, which
//     callers blend.
//   - Bucketed: one value per bucket, i.e. len(breakpoints)+1 values including the
//     two open-ended tails. A query yields exactly one value.
package threshold

import (
	"math"
	"sort"

	"github.com/litescript/ls-skydome/internal/skyerr"
)

// Direction is the ordering of a table's breakpoints.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ascending"
	case Descending:
		return "descending"
	default:
		return "unknown"
	}
}

// Layout describes how values are bound to breakpoints.
type Layout int

const (
	Anchored Layout = iota // len(values) == len(breakpoints)
	Bucketed               // len(values) == len(breakpoints)+1
)

// Table is an immutable ordered breakpoint lookup.
type Table[T any] struct {
	breakpoints []float64
	keys        []float64 // breakpoints mapped to ascending order
	values      []T
	dir         Direction
	layout      Layout
}

// New validates the breakpoints and values and builds a table.
// The layout is inferred from the number of values.
func New[T any](breakpoints []float64, values []T, dir Direction) (*Table[T], error) {
	if dir != Ascending && dir != Descending {
		return nil, skyerr.Domain("threshold", "unknown direction %d", int(dir))
	}
	n := len(breakpoints)
	if n < 2 {
		return nil, skyerr.Domain("threshold", "need at least 2 breakpoints, got %d", n)
	}

	var layout Layout
	switch len(values) {
	case n:
		layout = Anchored
	case n + 1:
		layout = Bucketed
	default:
		return nil, skyerr.Domain("threshold",
			"%d values do not fit %d breakpoints (want %d or %d)", len(values), n, n, n+1)
	}

	keys := make([]float64, n)
	for i, b := range breakpoints {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, skyerr.Domain("threshold", "breakpoint %d is not finite", i)
		}
		keys[i] = b
		if dir == Descending {
			keys[i] = -b
		}
		if i > 0 && keys[i] <= keys[i-1] {
			return nil, skyerr.Domain("threshold",
				"breakpoints not strictly %s at index %d (%v after %v)", dir, i, b, breakpoints[i-1])
		}
	}

	t := &Table[T]{
		breakpoints: append([]float64(nil), breakpoints...),
		keys:        keys,
		values:      append([]T(nil), values...),
		dir:         dir,
		layout:      layout,
	}
	return t, nil
}

// MustNew is New for package-level constant tables; it panics on a malformed table.
func MustNew[T any](breakpoints []float64, values []T, dir Direction) *Table[T] {
	t, err := New(breakpoints, values, dir)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of breakpoints.
func (t *Table[T]) Len() int { return len(t.breakpoints) }

// Brackets returns the number of intervals between consecutive breakpoints.
func (t *Table[T]) Brackets() int { return len(t.breakpoints) - 1 }

// Direction returns the table's ordering.
func (t *Table[T]) Direction() Direction { return t.dir }

// Layout returns how values are bound to breakpoints.
func (t *Table[T]) Layout() Layout { return t.layout }

// Breakpoints returns a copy of the breakpoints in table order.
func (t *Table[T]) Breakpoints() []float64 {
	return append([]float64(nil), t.breakpoints...)
}

// Value returns the i-th value.
func (t *Table[T]) Value(i int) T { return t.values[i] }

// Values returns a copy of all values.
func (t *Table[T]) Values() []T { return append([]T(nil), t.values...) }

func (t *Table[T]) key(x float64) float64 {
	if t.dir == Descending {
		return -x
	}
	return x
}

// Locate returns the bracket containing x and x's fractional position within it,
// measured from the bracket's first breakpoint in table order (0) to its second
// (1). Values outside the table saturate to the edge brackets. A value equal to
// an interior breakpoint lands at fraction 0 of the bracket that starts there.
//
// NaN inputs are not rejected here; they land in bracket 0 with fraction 0.
// Callers validate scalars before lookup.
func (t *Table[T]) Locate(x float64) (bracket int, frac float64) {
	n := len(t.keys)
	k := t.key(x)
	if !(k > t.keys[0]) {
		return 0, 0
	}
	if k >= t.keys[n-1] {
		return n - 2, 1
	}
	i := sort.Search(n, func(j int) bool { return t.keys[j] > k }) - 1
	frac = (k - t.keys[i]) / (t.keys[i+1] - t.keys[i])
	return i, Clamp01(frac)
}

// Anchors returns the values anchored at either end of a bracket.
// It is only meaningful for Anchored tables.
func (t *Table[T]) Anchors(bracket int) (from, to T) {
	return t.values[bracket], t.values[bracket+1]
}

// Bucket returns the discrete bucket index of x in [0, Len()]. Bucket 0 is the
// open tail before the first breakpoint. A value equal to a breakpoint belongs to
// the bucket after it, so buckets are half-open [b_i, b_i+1) in table order.
func (t *Table[T]) Bucket(x float64) int {
	k := t.key(x)
	return sort.Search(len(t.keys), func(j int) bool { return t.keys[j] > k })
}

// At returns the value of the bucket containing x. Anchored tables clamp the
// bucket to the last value.
func (t *Table[T]) At(x float64) T {
	b := t.Bucket(x)
	if b >= len(t.values) {
		b = len(t.values) - 1
	}
	return t.values[b]
}
