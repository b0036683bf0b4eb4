package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"arduscan/internal/model"
)

// FriendResolver reports where companion headers of a primary header live.
type FriendResolver struct {
	logger *log.Logger
}

// NewFriendResolver creates a FriendResolver. A nil logger falls back to log.Default().
func NewFriendResolver(logger *log.Logger) *FriendResolver {
	if logger == nil {
		logger = log.Default()
	}
	return &FriendResolver{logger: logger}
}

// Resolve returns one status per friend, in lexicographic name order.
// A friend next to includeDir is reported as present. Otherwise searchRoot
// (when non-empty and a directory) is walked and the first other match is
// reported; the walk stops at that first hit.
func (r *FriendResolver) Resolve(ctx context.Context, includeDir string, friends []string, searchRoot string) []model.FriendStatus {
	names := slices.Clone(friends)
	slices.Sort(names)

	canSearch := searchRoot != "" && model.IsDir(searchRoot)

	statuses := make([]model.FriendStatus, 0, len(names))
	for _, name := range names {
		primary := filepath.Join(includeDir, name)
		status := model.FriendStatus{Name: name, Primary: primary, FoundPaths: []string{}}

		if model.IsFile(primary) {
			status.FoundPaths = append(status.FoundPaths, primary)
		} else if canSearch {
			if alt := r.findFirst(ctx, searchRoot, name, primary); alt != "" {
				status.FoundPaths = append(status.FoundPaths, alt)
			}
		}

		statuses = append(statuses, status)
	}
	return statuses
}

func (r *FriendResolver) findFirst(ctx context.Context, root, name, exclude string) string {
	var found string
	err := walkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || d.Name() != name || path == exclude {
			return nil
		}
		if !isRegularFile(path, d) {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil {
		r.logger.Debug("friend search aborted", "name", name, "root", root, "err", err)
	}
	return found
}

// SearchRoot returns the ancestor up levels above includeDir, or includeDir
// itself when the path is too shallow. up <= 0 disables the fallback search.
func SearchRoot(includeDir string, up int) string {
	if up <= 0 {
		return ""
	}
	dir := includeDir
	for range up {
		parent := filepath.Dir(dir)
		if parent == dir {
			return includeDir
		}
		dir = parent
	}
	return dir
}

// ExtraIncludeDirs returns the directories of alternates that differ from
// includeDir, in the order they appear.
func ExtraIncludeDirs(includeDir string, statuses []model.FriendStatus) []string {
	var dirs []string
	for _, st := range statuses {
		for _, p := range st.FoundPaths {
			dir := filepath.Dir(p)
			if dir != includeDir && !slices.Contains(dirs, dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}
