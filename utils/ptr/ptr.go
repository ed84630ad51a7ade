package ptr

// PointTo creates a typed pointer of whatever you hand in as parameter
func PointTo[T any](t T) *T {
	return &t
}

// GetSafeDeref returns the dereferenced value of a pointer or the zero value of T if the pointer is nil.
func GetSafeDeref[T any](ptr *T) T {
	var res T
	if ptr != nil {
		res = *ptr
	}

	return res
}

// InitializerFunc and Initializer to allow initialisation of a generic
type InitializerFunc[T any] func() T

func Initializer[T any]() *T {
	return new(T)
}
