// Min and max over partially ordered values.
//
// Floats are only partially ordered: NaN compares false against everything,
// including itself. The functions here never fail on such pairs. Instead, when
// two values can't be compared, the second argument wins. Callers can rely on
// that to pick which side a NaN is allowed to "infect".
package partial

import "cmp"

type Ordering int

const (
	Less Ordering = iota - 1
	Equal
	Greater
	Incomparable
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "Less"
	case Equal:
		return "Equal"
	case Greater:
		return "Greater"
	default:
		return "Incomparable"
	}
}

// Compare a and b. Unlike cmp.Compare, NaN is not ordered before other values,
// so any comparison involving NaN is Incomparable.
func Compare[T cmp.Ordered](a, b T) Ordering {
	// x != x only holds for NaN
	if a != a || b != b {
		return Incomparable
	}
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// Min returns a if a is strictly less than b, and b otherwise.
func Min[T cmp.Ordered](a, b T) T {
	return MinFunc(a, b, Compare[T])
}

// Max returns a if a is strictly greater than b, and b otherwise.
func Max[T cmp.Ordered](a, b T) T {
	return MaxFunc(a, b, Compare[T])
}

// MinFunc is Min for types with a custom partial order.
func MinFunc[T any](a, b T, compare func(a, b T) Ordering) T {
	if compare(a, b) == Less {
		return a
	}
	return b
}

func MaxFunc[T any](a, b T, compare func(a, b T) Ordering) T {
	if compare(a, b) == Greater {
		return a
	}
	return b
}
