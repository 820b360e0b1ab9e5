// Package resume defines the parsed resume record and its flat key/value
// representation.
package resume

// Field is the outcome of one extractor: a value, or nothing. An absent
// field is final; it is never retried or filled in later.
type Field[T any] struct {
	value   T
	present bool
}

func Present[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

func Absent[T any]() Field[T] {
	return Field[T]{}
}

// FromOK is a convenience for lookups of the form (value, ok).
func FromOK[T any](v T, ok bool) Field[T] {
	if !ok {
		return Absent[T]()
	}
	return Present(v)
}

func (f Field[T]) Get() (T, bool) {
	return f.value, f.present
}

func (f Field[T]) IsPresent() bool { return f.present }

// OrElse returns the value when present, def otherwise.
func (f Field[T]) OrElse(def T) T {
	if f.present {
		return f.value
	}
	return def
}
