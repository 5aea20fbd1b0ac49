package sanitize

// Optional holds a value that upstream data may or may not have supplied.
// Consumers must decide what "absent" means exactly once, via Get or OrElse.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value was supplied.
func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the value if present, otherwise def.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Map applies fn to a present value.
func Map[T, U any](o Optional[T], fn func(T) U) Optional[U] {
	if !o.ok {
		return None[U]()
	}
	return Some(fn(o.value))
}
