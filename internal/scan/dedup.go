package scan

import (
	"slices"
	"strings"

	"arduscan/internal/model"
)

// Dedup sorts items by include directory and keeps the first item for each
// directory. The sort is stable, so among true duplicates the earliest input
// item survives.
func Dedup[T model.IncludeDirer](items []T) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return strings.Compare(a.IncludeDirectory(), b.IncludeDirectory())
	})

	seen := make(map[string]struct{}, len(sorted))
	unique := make([]T, 0, len(sorted))
	for _, item := range sorted {
		dir := item.IncludeDirectory()
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}
