package fsm

// Comparer reports whether two identifiers are equivalent. It must be a
// proper equivalence relation (reflexive, symmetric, transitive); the
// registries rely on this for their uniqueness guarantees.
//
// A comparer is fixed at machine construction and applies to everything
// registered afterwards, so changing equivalence mid-life is not possible.
type Comparer[T any] func(a, b T) bool

// DefaultComparer compares identifiers with ==.
func DefaultComparer[T comparable]() Comparer[T] {
	return func(a, b T) bool { return a == b }
}
