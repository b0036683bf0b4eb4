package scan

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arduscan/internal/catalog"
	"arduscan/internal/model"
)

func TestResolvePresentAlternateMissing(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"hw/cores/arduino/Arduino.h":   "",
		"hw/cores/arduino/Print.h":     "",
		"hw/cores/arduino/api/Stream.h": "",
		"hw/libs/Stream.h":             "",
	})
	inc := join(root, "hw/cores/arduino")

	r := NewFriendResolver(nil)
	got := r.Resolve(context.Background(), inc, []string{"Stream.h", "Print.h", "WString.h"}, join(root, "hw"))

	require.Len(t, got, 3)
	assert.Equal(t, []string{"Print.h", "Stream.h", "WString.h"}, []string{got[0].Name, got[1].Name, got[2].Name})

	assert.Equal(t, model.FriendPresent, got[0].State())
	assert.Equal(t, []string{join(inc, "Print.h")}, got[0].FoundPaths)

	assert.Equal(t, model.FriendAlternate, got[1].State())
	require.Len(t, got[1].FoundPaths, 1)
	// WalkDir is lexical: cores/arduino/api comes before libs
	assert.Equal(t, join(root, "hw/cores/arduino/api/Stream.h"), got[1].FoundPaths[0])

	assert.Equal(t, model.FriendMissing, got[2].State())
	assert.Empty(t, got[2].FoundPaths)
}

func TestResolveWithoutSearchRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"elsewhere/stdio.h": "",
	})
	inc := join(root, "include")

	r := NewFriendResolver(nil)
	got := r.Resolve(context.Background(), inc, []string{"stdio.h"}, "")
	assert.Empty(t, got[0].FoundPaths)

	got = r.Resolve(context.Background(), inc, []string{"stdio.h"}, join(root, "absent"))
	assert.Empty(t, got[0].FoundPaths)
}

func TestResolveSearchesThroughSymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	target := join(dir, "real")
	writeTree(t, target, map[string]string{
		"avr/include/stdlib.h": "",
		"lib/stdio.h":          "",
	})
	link := join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	r := NewFriendResolver(nil)
	got := r.Resolve(context.Background(), join(link, "avr/include"), []string{"stdio.h"}, link)
	require.Len(t, got, 1)
	assert.Equal(t, model.FriendAlternate, got[0].State())
	assert.Equal(t, []string{join(link, "lib/stdio.h")}, got[0].FoundPaths)
}

func TestResolveBoundsFoundPaths(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for _, d := range []string{"a", "b", "c", "d", "e"} {
		files[d+"/math.h"] = ""
	}
	writeTree(t, root, files)

	r := NewFriendResolver(nil)
	friends := catalog.Default().Kinds[1].Friends
	for _, st := range r.Resolve(context.Background(), join(root, "include"), friends, root) {
		assert.LessOrEqual(t, len(st.FoundPaths), 2, st.Name)
		if st.Name == "math.h" {
			assert.Equal(t, []string{join(root, "a/math.h")}, st.FoundPaths)
		}
	}
}

func TestSearchRoot(t *testing.T) {
	inc := filepath.Join(string(filepath.Separator), "pkgs", "hw", "avr", "cores", "arduino")
	assert.Equal(t, filepath.Join(string(filepath.Separator), "pkgs", "hw"), SearchRoot(inc, 3))
	assert.Equal(t, filepath.Join(string(filepath.Separator), "pkgs", "hw", "avr"), SearchRoot(inc, 2))
	assert.Empty(t, SearchRoot(inc, 0))

	shallow := filepath.Join(string(filepath.Separator), "x")
	assert.Equal(t, shallow, SearchRoot(shallow, 3))
}

func TestExtraIncludeDirs(t *testing.T) {
	inc := filepath.Join("r", "include")
	statuses := []model.FriendStatus{
		{Name: "a.h", Primary: filepath.Join(inc, "a.h"), FoundPaths: []string{filepath.Join(inc, "a.h")}},
		{Name: "b.h", Primary: filepath.Join(inc, "b.h"), FoundPaths: []string{filepath.Join("r", "sys", "b.h")}},
		{Name: "c.h", Primary: filepath.Join(inc, "c.h"), FoundPaths: []string{filepath.Join("r", "sys", "c.h")}},
		{Name: "d.h", Primary: filepath.Join(inc, "d.h")},
	}
	assert.Equal(t, []string{filepath.Join("r", "sys")}, ExtraIncludeDirs(inc, statuses))
}
