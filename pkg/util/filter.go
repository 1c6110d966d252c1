package util

func Filter[T any](s []T, keep func(T) bool) []T {
	filtered := make([]T, 0, len(s))
	for _, e := range s {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}
