package resolver

import "strings"

type matchQuality int

const (
	matchExact matchQuality = iota
	matchContains
)

// match partitions items into exact and substring matches of query against
// the names each item exposes. An exact match always wins; more than one match
// of the winning kind is ambiguous.
func match[T any](items []T, query string, names func(T) []string, ambiguous error, notFound error) (*T, matchQuality, error) {
	var exact, candidates []*T

	for i := range items {
		item := &items[i]
		itemNames := names(*item)

		switch {
		case anyName(itemNames, func(name string) bool { return name == query }):
			exact = append(exact, item)
		case anyName(itemNames, func(name string) bool { return name != "" && strings.Contains(name, query) }):
			candidates = append(candidates, item)
		}
	}

	switch {
	case len(exact) == 1:
		return exact[0], matchExact, nil
	case len(exact) > 1:
		return nil, matchExact, ambiguous
	case len(candidates) == 1:
		return candidates[0], matchContains, nil
	case len(candidates) > 1:
		return nil, matchContains, ambiguous
	default:
		return nil, matchContains, notFound
	}
}

func anyName(names []string, predicate func(string) bool) bool {
	for _, name := range names {
		if predicate(name) {
			return true
		}
	}

	return false
}
