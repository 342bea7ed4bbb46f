// Package patch applies partial updates: a list of (target, optional value)
// pairs where an absent value leaves the target untouched.
package patch

// Op is a single pending assignment.
type Op interface {
	apply() bool
}

type field[T any] struct {
	dst *T
	src *T
}

func (f field[T]) apply() bool {
	if f.src == nil {
		return false
	}
	*f.dst = *f.src
	return true
}

// Field copies *src into *dst when src is not nil.
func Field[T any](dst *T, src *T) Op {
	return field[T]{dst: dst, src: src}
}

type nullable[T any] struct {
	dst **T
	src *T
}

func (n nullable[T]) apply() bool {
	if n.src == nil {
		return false
	}
	v := *n.src
	*n.dst = &v
	return true
}

// Nullable is Field for targets that are themselves optional columns.
func Nullable[T any](dst **T, src *T) Op {
	return nullable[T]{dst: dst, src: src}
}

// Apply runs ops in order and reports whether any target was assigned.
func Apply(ops ...Op) bool {
	changed := false
	for _, op := range ops {
		if op.apply() {
			changed = true
		}
	}
	return changed
}
