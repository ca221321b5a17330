package model

// Optional distinguishes an absent value from a present zero value.
type Optional[T any] struct {
	value T
	ok    bool
}

func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) IsSome() bool {
	return o.ok
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalFromPtr maps a nil pointer to None and anything else to Some.
func OptionalFromPtr[T any](value *T) Optional[T] {
	if value == nil {
		return None[T]()
	}

	return Some(*value)
}
