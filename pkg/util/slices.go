package util

import "golang.org/x/exp/slices"

// SortedUniqueInts returns a sorted copy of values with duplicates removed
func SortedUniqueInts(values []int) []int {
	unique := slices.Clone(values)
	slices.Sort(unique)

	return slices.Compact(unique)
}
