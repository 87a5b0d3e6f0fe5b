package utils

// Value dereferences v, or returns the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// ValueOr dereferences v, or returns fallback when v is nil.
func ValueOr[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// First returns the value of the first non-nil pointer.
func First[T any](ptrs ...*T) (T, bool) {
	for _, p := range ptrs {
		if p != nil {
			return *p, true
		}
	}
	return *new(T), false
}
