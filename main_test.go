package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"arduscan/internal/board"
	"arduscan/internal/catalog"
	"arduscan/internal/config"
	"arduscan/internal/model"
	"arduscan/internal/ports"
)

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name                          string
		tuiF, webF, jsonF, yamlF, rep bool
		format                        string
		want                          Mode
	}{
		{name: "default", format: config.FormatReport, want: ModeReport},
		{name: "config json", format: config.FormatJSON, want: ModeJSON},
		{name: "config yaml", format: config.FormatYAML, want: ModeYAML},
		{name: "report flag beats config", rep: true, format: config.FormatJSON, want: ModeReport},
		{name: "json flag", jsonF: true, want: ModeJSON},
		{name: "yaml flag", yamlF: true, want: ModeYAML},
		{name: "tui", tuiF: true, jsonF: true, want: ModeTUI},
		{name: "web wins", webF: true, tuiF: true, want: ModeWeb},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, selectMode(tt.tuiF, tt.webF, tt.jsonF, tt.yamlF, tt.rep, tt.format))
		})
	}
}

func TestBuildEnumerator(t *testing.T) {
	assert.IsType(t, ports.Disabled{}, buildEnumerator(true, "linux"))
	assert.IsType(t, &ports.SerialEnumerator{}, buildEnumerator(false, "windows"))

	fb, ok := buildEnumerator(false, "darwin").(ports.Fallback)
	require.True(t, ok)
	assert.IsType(t, &ports.DevScanner{}, fb.Secondary)

	_, err := buildEnumerator(true, "linux").Ports(context.Background())
	assert.ErrorIs(t, err, ports.ErrUnavailable)
}

func TestRenderFormats(t *testing.T) {
	cat := catalog.Default()
	ident := board.NewIdentifier(cat)
	rec := model.NewHeaderRecord(model.KindCores, "/hw/cores/arduino/Arduino.h")
	inv := &model.Inventory{
		BaseDir: "/hw",
		Banner:  "ARDUINO SCAN",
		Kinds: []model.KindResult{{
			Kind:    model.KindCores,
			Records: []model.HeaderRecord{rec},
			Match:   model.MatchResult{Remainder: []model.HeaderRecord{rec}},
			Flags:   model.IncludeFlags{IncludeDirs: []string{rec.IncludeDir}},
		}},
	}

	out, err := render(ModeJSON, inv, cat, ident, false)
	require.NoError(t, err)
	var decoded model.Inventory
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "/hw/cores/arduino", decoded.Kinds[0].Flags.IncludeDirs[0])

	out, err = render(ModeYAML, inv, cat, ident, false)
	require.NoError(t, err)
	var generic map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &generic))
	assert.Equal(t, "ARDUINO SCAN", generic["banner"])

	out, err = render(ModeReport, inv, cat, ident, false)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `-I"/hw/cores/arduino"`))
}

func TestConfigFlagsReachConfig(t *testing.T) {
	fs := pflag.NewFlagSet("arduscan", pflag.ContinueOnError)
	defineConfigFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--format", "yaml", "--port", "9001", "--no-ports"}))

	cfg, err := config.Load(config.LoadOptions{ConfigDirPath: t.TempDir(), Flags: fs})
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, config.FormatYAML, cfg.Format)
	assert.Equal(t, 9001, cfg.WebPort)
	assert.True(t, cfg.NoPorts)
	assert.Equal(t, ModeYAML, selectMode(false, false, false, false, false, cfg.Format))

	fs = pflag.NewFlagSet("arduscan", pflag.ContinueOnError)
	defineConfigFlags(fs)
	require.NoError(t, fs.Parse([]string{"--format", "xml"}))
	_, err = config.Load(config.LoadOptions{ConfigDirPath: t.TempDir(), Flags: fs})
	assert.ErrorContains(t, err, "unknown format")
}
