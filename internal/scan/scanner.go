// Package scan walks an installation tree for header files and reduces the
// matches to one record per include directory.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"arduscan/internal/catalog"
	"arduscan/internal/model"
)

// ErrRootNotFound is returned when the scan root is missing or not a directory.
var ErrRootNotFound = errors.New("base directory does not exist")

// Scanner finds header files for the kinds described by a catalog.
type Scanner struct {
	cat    *catalog.Catalog
	logger *log.Logger
	goos   string
}

// NewScanner creates a Scanner. A nil logger falls back to log.Default().
func NewScanner(cat *catalog.Catalog, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{
		cat:    cat,
		logger: logger,
		goos:   runtime.GOOS,
	}
}

// CheckRoot verifies that root exists and is a directory.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	return nil
}

// Scan returns the deduplicated records of one kind found under root.
func (s *Scanner) Scan(ctx context.Context, root string, spec catalog.KindSpec) ([]model.HeaderRecord, error) {
	if err := CheckRoot(root); err != nil {
		return nil, err
	}
	for _, p := range spec.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("kind %s: invalid pattern %q", spec.Kind, p)
		}
	}

	// One bucket per pattern keeps pattern order ahead of walk order.
	buckets := make([][]model.HeaderRecord, len(spec.Patterns))

	err := walkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if d == nil {
				return walkErr
			}
			s.logger.Debug("skipping unreadable entry", "kind", spec.Kind, "path", path, "err", walkErr)
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := d.Name()
		idx := matchPattern(spec.Patterns, name)
		if idx < 0 || slices.Contains(spec.Exclude, name) {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}

		rec, ok := s.accept(spec, path)
		if !ok {
			return nil
		}
		buckets[idx] = append(buckets[idx], rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s under %s: %w", spec.Kind, root, err)
	}

	var results []model.HeaderRecord
	for _, b := range buckets {
		results = append(results, b...)
	}

	unique := Dedup(results)
	s.logger.Debug("scan finished", "kind", spec.Kind, "matches", len(results), "unique", len(unique))
	return unique, nil
}

// accept applies the kind's structural rule and builds the record.
func (s *Scanner) accept(spec catalog.KindSpec, path string) (model.HeaderRecord, bool) {
	rec := model.NewHeaderRecord(spec.Kind, path)

	switch spec.Rule {
	case catalog.RuleCoreSegment:
		if !hasSegment(path, "cores") {
			return rec, false
		}
	case catalog.RuleToolchain:
		if filepath.Base(rec.IncludeDir) != "include" {
			return rec, false
		}
		if !containsAny(path, s.cat.ToolchainTokens) {
			return rec, false
		}
		rec.CompilerPath = s.findCompiler(rec.IncludeDir)
	}
	return rec, true
}

// findCompiler looks for a compiler binary in bin/ under the first three
// ancestors of includeDir. Returns "" when none is found.
func (s *Scanner) findCompiler(includeDir string) string {
	suffix := ""
	if s.goos == "windows" {
		suffix = ".exe"
	}

	dir := includeDir
	for range 3 {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent

		binDir := filepath.Join(dir, "bin")
		if !model.IsDir(binDir) {
			continue
		}
		for _, name := range s.cat.CompilerNames {
			candidate := filepath.Join(binDir, name+suffix)
			if model.IsFile(candidate) {
				return candidate
			}
		}
	}
	return ""
}

func matchPattern(patterns []string, name string) int {
	for i, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return i
		}
	}
	return -1
}

// isRegularFile accepts regular files and symlinks that resolve to one.
func isRegularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return model.IsFile(path)
}

func hasSegment(path, segment string) bool {
	parts := strings.FieldsFunc(path, func(r rune) bool {
		return r == '/' || r == filepath.Separator
	})
	for _, p := range parts {
		if strings.EqualFold(p, segment) {
			return true
		}
	}
	return false
}

func containsAny(path string, tokens []string) bool {
	lower := strings.ToLower(path)
	for _, tok := range tokens {
		if strings.Contains(lower, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}

// walkDir is filepath.WalkDir that descends into root even when root is a
// symlink to a directory. Paths passed to fn keep root as their prefix.
func walkDir(root string, fn fs.WalkDirFunc) error {
	target, err := filepath.EvalSymlinks(root)
	if err != nil || target == root {
		return filepath.WalkDir(root, fn)
	}
	return filepath.WalkDir(target, func(path string, d fs.DirEntry, walkErr error) error {
		rel, err := filepath.Rel(target, path)
		if err != nil {
			return fn(path, d, walkErr)
		}
		return fn(filepath.Join(root, rel), d, walkErr)
	})
}
