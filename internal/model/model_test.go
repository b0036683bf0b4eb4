package model

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHeaderRecordBindsParent(t *testing.T) {
	p := filepath.Join("a", "cores", "arduino", "Arduino.h")
	rec := NewHeaderRecord(KindCores, p)
	assert.Equal(t, filepath.Join("a", "cores", "arduino"), rec.IncludeDir)
	assert.Equal(t, rec.IncludeDir, rec.IncludeDirectory())
	assert.Empty(t, rec.CompilerPath)
}

func TestFriendStatusState(t *testing.T) {
	primary := filepath.Join("inc", "Print.h")
	assert.Equal(t, FriendMissing, FriendStatus{Name: "Print.h", Primary: primary}.State())
	assert.Equal(t, FriendPresent, FriendStatus{Name: "Print.h", Primary: primary, FoundPaths: []string{primary}}.State())
	assert.Equal(t, FriendAlternate, FriendStatus{Name: "Print.h", Primary: primary, FoundPaths: []string{filepath.Join("other", "Print.h")}}.State())
}

func TestComPortIDs(t *testing.T) {
	p := ComPort{VID: 0x2341, PID: 0x0043}
	assert.True(t, p.HasIDs())
	assert.Equal(t, "0x2341 / 0x0043", p.IDString())

	assert.False(t, ComPort{VID: 0x2341}.HasIDs())
	assert.Equal(t, "(not available)", ComPort{}.IDString())
}

func TestGetHeaderPreview(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bsp_api.h")
	require.NoError(t, os.WriteFile(path, []byte("#ifndef A\n#define A\n#endif\n"), 0o644))

	full := GetHeaderPreview(path, 10)
	assert.Empty(t, full.ErrorMsg)
	assert.Equal(t, []string{"#ifndef A", "#define A", "#endif"}, full.Lines)
	assert.False(t, full.Truncated)

	short := GetHeaderPreview(path, 2)
	assert.Len(t, short.Lines, 2)
	assert.True(t, short.Truncated)

	missing := GetHeaderPreview(filepath.Join(dir, "nope.h"), 5)
	assert.True(t, strings.HasPrefix(missing.ErrorMsg, "Could not read file"))
}

func TestInventoryKindLookup(t *testing.T) {
	inv := Inventory{Kinds: []KindResult{{Kind: KindBSP}, {Kind: KindPins}}}
	require.NotNil(t, inv.Kind(KindPins))
	assert.Equal(t, KindPins, inv.Kind(KindPins).Kind)
	assert.Nil(t, inv.Kind(KindCMSIS))
}

func TestIsDirIsFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "x.h")
	require.NoError(t, os.WriteFile(f, nil, 0o644))
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(f))
	assert.True(t, IsFile(f))
	assert.False(t, IsFile(dir))
}
