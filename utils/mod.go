package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](slice []T, item T) bool {
	return FindIndex(slice, item) != -1
}

// Filter returns the items of slice for which keep is true, in order.
func Filter[T any](slice []T, keep func(T) bool) []T {
	var kept []T
	for _, v := range slice {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	return kept
}
