package common

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// IndexOf returns the index of the first element satisfying pred, or -1.
func IndexOf[S ~[]E, E any](s S, pred func(E) bool) int {
	for i := range s {
		if pred(s[i]) {
			return i
		}
	}

	return -1
}
