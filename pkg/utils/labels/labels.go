// Package labels provides helpers for working with Kubernetes label maps.
package labels

import "slices"

// UniqueValues collects the distinct non-empty values of one label key across
// a slice of labeled items, sorted for stable output. getLabels extracts the
// label map from an item.
func UniqueValues[T any](items []T, key string, getLabels func(T) map[string]string) []string {
	seen := make(map[string]struct{})

	for _, item := range items {
		value, ok := getLabels(item)[key]
		if ok && value != "" {
			seen[value] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for value := range seen {
		values = append(values, value)
	}

	slices.Sort(values)

	return values
}
