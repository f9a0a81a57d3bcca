package functional

// Map returns f applied to every element of slice, preserving order. A nil slice maps to an
// empty one so results encode as [] rather than null.
func Map[T, V any](slice []T, f func(T) V) []V {
	result := make([]V, len(slice))
	for i, v := range slice {
		result[i] = f(v)
	}
	return result
}
