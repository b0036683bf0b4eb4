// Package flags turns matched header collections into compiler include flags.
package flags

import (
	"slices"

	"arduscan/internal/model"
)

// Options tune composition.
type Options struct {
	// MatchedOnly emits just the matched record when there is one.
	MatchedOnly bool
}

// Compose lists the matched record's include dir first, then the remainder in
// order. Extra dirs are de-duplicated, sorted, and drop anything already
// listed. Compiler is the first non-empty compiler path in emitted order.
func Compose(match model.MatchResult, extras []string, opts Options) model.IncludeFlags {
	ordered := make([]model.HeaderRecord, 0, len(match.Remainder)+1)
	if match.Matched != nil {
		ordered = append(ordered, *match.Matched)
	}
	if match.Matched == nil || !opts.MatchedOnly {
		ordered = append(ordered, match.Remainder...)
	}

	out := model.IncludeFlags{IncludeDirs: make([]string, 0, len(ordered))}
	for _, rec := range ordered {
		if !slices.Contains(out.IncludeDirs, rec.IncludeDir) {
			out.IncludeDirs = append(out.IncludeDirs, rec.IncludeDir)
		}
		if out.Compiler == "" && rec.CompilerPath != "" {
			out.Compiler = rec.CompilerPath
		}
	}

	out.ExtraDirs = SortedUnique(extras, out.IncludeDirs)
	return out
}

// SortedUnique returns the sorted distinct values of dirs, minus any in skip.
func SortedUnique(dirs []string, skip []string) []string {
	var out []string
	for _, d := range dirs {
		if d == "" || slices.Contains(skip, d) || slices.Contains(out, d) {
			continue
		}
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}

// Render formats include dirs as -I"<dir>" flags.
func Render(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, `-I"`+d+`"`)
	}
	return out
}

// All renders every include and extra dir of an inventory in kind order,
// skipping repeats.
func All(inv *model.Inventory) []string {
	var dirs []string
	for _, k := range inv.Kinds {
		for _, d := range append(slices.Clone(k.Flags.IncludeDirs), k.Flags.ExtraDirs...) {
			if !slices.Contains(dirs, d) {
				dirs = append(dirs, d)
			}
		}
	}
	return Render(dirs)
}
