package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	cfg, err := LoadConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	_, err = LoadConfig(path, true)
	require.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, t.TempDir(), DefaultConfigFile, "phase = \"trans\"\ncolor = \"never\"\nstrict = true\n")

	cfg, err := LoadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, Config{Phase: PhaseTrans, Color: ColorNever, Strict: true}, cfg)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name    string
		content string
		msg     string
	}{
		{"UnknownKey", "phaze = \"trans\"\n", "unknown keys"},
		{"BadPhase", "phase = \"link\"\n", "unknown phase"},
		{"BadColor", "color = \"sometimes\"\n", "unknown color mode"},
		{"BadSyntax", "phase = \n", "decoding config"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, dir, tc.name+".toml", tc.content)
			_, err := LoadConfig(path, true)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestConfigFileUsedByCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, DefaultConfigFile, "phase = \"trans\"\n")
	fixture := writeFile(t, dir, "phase.yaml", "params: [T]\nregions: [a]\ntable: {types: [int]}\nentities: [\"&'a T\"]\n")

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", cfgPath, "apply", fixture})
	require.NoError(t, root.Execute())
	assert.Equal(t, "&'a T => &'static int\n", out.String())
}
