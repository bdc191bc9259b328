package util

// Contains returns whether the given slice contains the given element.
func Contains[T comparable](slice []T, elem T) bool {
	return IndexOf(slice, elem) != -1
}

// IndexOf returns the position of the first occurrence of elem in slice or -1
// if the slice does not contain it.
func IndexOf[T comparable](slice []T, elem T) int {
	for i, x := range slice {
		if x == elem {
			return i
		}
	}

	return -1
}

// RemoveRange removes the elements in the half-open range [from, to) from the
// given slice and returns the shortened slice along with the removed elements.
// The removed elements are copied so that they do not alias the result.
func RemoveRange[T any](slice []T, from, to int) ([]T, []T) {
	removed := make([]T, to-from)
	copy(removed, slice[from:to])

	return append(slice[:from], slice[to:]...), removed
}
