package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_DefaultValues(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, 3, cfg.MaxExamples)
	assert.Equal(t, 4, cfg.Indent)
	assert.False(t, cfg.Repair)
	assert.False(t, cfg.Debug)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	yamlContent := `
max_examples: 5
indent: 2
repair: true
`
	path := filepath.Join(t.TempDir(), ".jshape.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxExamples)
	assert.Equal(t, 2, cfg.Indent)
	assert.True(t, cfg.Repair)
}

func TestConfig_LoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jshape.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_examples: 6\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.MaxExamples)
	assert.Equal(t, 4, cfg.Indent, "unset keys keep their defaults")
}

func TestConfig_LoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jshape.yml")
	require.NoError(t, os.WriteFile(path, []byte("max_examples: 0\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("indent: -1\n"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_LoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jshape.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\n\t- bad"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfig_LoadMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))
	configPath := filepath.Join(dir, ".jshape.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("indent: 2\n"), 0644))

	// Discovery walks up from the working directory
	prevDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { _ = os.Chdir(prevDir) })

	found := FindConfigFile()
	require.NotEmpty(t, found)
	assert.Equal(t, ".jshape.yml", filepath.Base(found))
}

func TestConfig_ApplyOverrides(t *testing.T) {
	cfg := NewConfig()

	cfg.ApplyOverrides(0, 0, false, false)
	assert.Equal(t, 3, cfg.MaxExamples, "zero values leave the config untouched")
	assert.Equal(t, 4, cfg.Indent)

	cfg.ApplyOverrides(7, 2, true, true)
	assert.Equal(t, 7, cfg.MaxExamples)
	assert.Equal(t, 2, cfg.Indent)
	assert.True(t, cfg.Repair)
	assert.True(t, cfg.Debug)
}
