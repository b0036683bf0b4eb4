package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/model"
)

func TestRenderBannerGlyphs(t *testing.T) {
	art := RenderBanner("ab", DefaultBannerStyle)
	lines := strings.Split(art, "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, " ###  #### ", lines[0])
	assert.Equal(t, "##### #### ", lines[3])
	assert.Equal(t, "#   # #### ", lines[6])
}

func TestRenderBannerUnknownRuneIsBlank(t *testing.T) {
	art := RenderBanner("?", DefaultBannerStyle)
	for _, line := range strings.Split(art, "\n") {
		assert.Equal(t, "     ", line)
	}
}

func TestRenderBannerScale(t *testing.T) {
	art := RenderBanner("I", BannerStyle{On: "@", Off: ".", Scale: 2})
	lines := strings.Split(art, "\n")
	require.Len(t, lines, 14)
	assert.Equal(t, "@@@@@@@@@@", lines[0])
	assert.Equal(t, lines[0], lines[1])
	assert.Equal(t, "....@@....", lines[2])
}

func TestBannerRuleMatchesWidth(t *testing.T) {
	out := Banner("ARDUINO SCAN")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 8)
	assert.Equal(t, strings.Repeat("-", 12*5+11), lines[7])
}

func sampleInventory(t *testing.T) *model.Inventory {
	t.Helper()
	dir := t.TempDir()
	matchedHeader := filepath.Join(dir, "variants", "UNOWIFIR4", "pins_arduino.h")
	require.NoError(t, os.MkdirAll(filepath.Dir(matchedHeader), 0o755))
	require.NoError(t, os.WriteFile(matchedHeader, []byte("#pragma once\n#define PIN_LED 13\n"), 0o644))

	other := model.NewHeaderRecord(model.KindPins, "/hw/avr/variants/standard/pins_arduino.h")
	matched := model.NewHeaderRecord(model.KindPins, matchedHeader)
	core := model.NewHeaderRecord(model.KindCores, "/hw/avr/cores/arduino/Arduino.h")
	tc := model.HeaderRecord{
		Kind:         model.KindToolchains,
		HeaderPath:   "/tools/avr-gcc/avr/include/stdlib.h",
		IncludeDir:   "/tools/avr-gcc/avr/include",
		CompilerPath: "/tools/avr-gcc/bin/gcc",
	}

	port := model.ComPort{
		Device:       "/dev/ttyACM0",
		Description:  "UNO R4 WiFi",
		HWID:         "USB VID:PID=2341:1002",
		VID:          0x2341,
		PID:          0x1002,
		Manufacturer: "Arduino",
	}

	return &model.Inventory{
		BaseDir:        "/hw",
		Ports:          []model.ComPort{port, {Device: "/dev/ttyS0", Description: "n/a", HWID: "n/a"}},
		Detected:       &port,
		Board:          model.BoardIdentity{ShortName: "ARDUINO", Description: "Arduino (exact model unknown)"},
		Banner:         "ARDUINO ARDUINO",
		PortsAvailable: true,
		Kinds: []model.KindResult{
			{
				Kind:    model.KindCores,
				Records: []model.HeaderRecord{core},
				Match:   model.MatchResult{Remainder: []model.HeaderRecord{core}},
				Friends: map[string][]model.FriendStatus{
					core.HeaderPath: {
						{Name: "Print.h", FoundPaths: []string{"/hw/avr/cores/arduino/Print.h"}, Primary: "/hw/avr/cores/arduino/Print.h"},
						{Name: "WString.h", FoundPaths: []string{}, Primary: "/hw/avr/cores/arduino/WString.h"},
					},
				},
				Flags: model.IncludeFlags{IncludeDirs: []string{core.IncludeDir}},
			},
			{
				Kind:    model.KindToolchains,
				Records: []model.HeaderRecord{tc},
				Match:   model.MatchResult{Remainder: []model.HeaderRecord{tc}},
				Friends: map[string][]model.FriendStatus{
					tc.HeaderPath: {
						{Name: "signal.h", FoundPaths: []string{"/tools/avr-gcc/avr/include/sys/signal.h"}, Primary: "/tools/avr-gcc/avr/include/signal.h"},
					},
				},
				Flags: model.IncludeFlags{
					IncludeDirs: []string{tc.IncludeDir},
					ExtraDirs:   []string{"/tools/avr-gcc/avr/include/sys"},
					Compiler:    tc.CompilerPath,
				},
			},
			{
				Kind:    model.KindPins,
				Records: []model.HeaderRecord{other, matched},
				Match:   model.MatchResult{Matched: &matched, Remainder: []model.HeaderRecord{other}},
				Flags:   model.IncludeFlags{IncludeDirs: []string{matched.IncludeDir, other.IncludeDir}},
			},
			{Kind: model.KindBSP, Match: model.MatchResult{Remainder: []model.HeaderRecord{}}},
		},
	}
}

func TestGenerateSections(t *testing.T) {
	inv := sampleInventory(t)
	cat := catalog.Default()
	out := Generate(inv, cat, board.NewIdentifier(cat), Options{System: SystemInfo{User: "dev", OS: "linux", Arch: "amd64"}})

	assert.Contains(t, out, "User        : dev")
	assert.Contains(t, out, "ArduinoDir  : /hw")
	assert.Contains(t, out, "Discovered cores: 1")
	assert.Contains(t, out, "[OK]  Print.h -> /hw/avr/cores/arduino/Print.h")
	assert.Contains(t, out, "[MISS] WString.h (not found under /hw)")
	assert.Contains(t, out, "[ALT] signal.h -> /tools/avr-gcc/avr/include/sys/signal.h")
	assert.Contains(t, out, "Compiler path:\n    /tools/avr-gcc/bin/gcc")
	assert.Contains(t, out, "Best guess for default toolchain include dir:\n  /tools/avr-gcc/avr/include")
	assert.Contains(t, out, "No BSP API headers (bsp_api.h) found.")
	assert.Contains(t, out, "Compiler: \"/tools/avr-gcc/bin/gcc\"")
	assert.Contains(t, out, "Extra Toolchain C library friend include paths:\n  -I\"/tools/avr-gcc/avr/include/sys\"")
}

func TestGenerateMatchedRecordFirst(t *testing.T) {
	inv := sampleInventory(t)
	cat := catalog.Default()
	out := Generate(inv, cat, board.NewIdentifier(cat), Options{})

	matched := inv.Kinds[2].Match.Matched
	first := strings.Index(out, "[Variant pins #1] [MATCHED TO DETECTED BOARD]\n  pins_arduino.h full path:\n    "+matched.HeaderPath)
	second := strings.Index(out, "[Variant pins #2]\n  pins_arduino.h full path:\n    /hw/avr/variants/standard/pins_arduino.h")
	assert.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)

	flagsAt := strings.Index(out, "Variant pins (pins_arduino.h) include paths:")
	require.GreaterOrEqual(t, flagsAt, 0)
	assert.Contains(t, out[flagsAt:], "-I\""+matched.IncludeDir+"\"\n  -I\"/hw/avr/variants/standard\"")
	assert.NotContains(t, out, "Preview:")
}

func TestGenerateVerbosePreview(t *testing.T) {
	inv := sampleInventory(t)
	cat := catalog.Default()
	out := Generate(inv, cat, board.NewIdentifier(cat), Options{Verbose: true})
	assert.Contains(t, out, "Preview:\n    | #pragma once\n    | #define PIN_LED 13\n")
}

func TestGeneratePorts(t *testing.T) {
	inv := sampleInventory(t)
	cat := catalog.Default()
	out := Generate(inv, cat, board.NewIdentifier(cat), Options{})

	assert.Contains(t, out, "Detected COM ports: 2")
	assert.Contains(t, out, "[Port #1] /dev/ttyACM0 "+model.IconMatched)
	assert.Contains(t, out, "VID/PID     : 0x2341 / 0x1002")
	assert.Contains(t, out, "    Manufacturer : Arduino")
	assert.Contains(t, out, "Board guess : Arduino (exact model unknown)")
	assert.Contains(t, out, "[Port #2] /dev/ttyS0\n")
	assert.Contains(t, out, "VID/PID     : (not available)")
	assert.Contains(t, out, "Board guess : Unknown device (no VID/PID)")

	inv.PortsAvailable = false
	out = Generate(inv, cat, board.NewIdentifier(cat), Options{})
	assert.Contains(t, out, "Serial port enumeration is unavailable")

	inv.PortsAvailable = true
	inv.Ports = nil
	out = Generate(inv, cat, board.NewIdentifier(cat), Options{})
	assert.Contains(t, out, "No COM ports found.")
}

func TestOrderedWithoutMatch(t *testing.T) {
	recs := []model.HeaderRecord{model.NewHeaderRecord(model.KindBSP, "/a/bsp_api.h")}
	kr := model.KindResult{Records: recs, Match: model.MatchResult{Remainder: recs}}
	assert.Equal(t, recs, Ordered(kr))
}
