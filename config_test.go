package injectguard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "injectguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfigMissingServiceName(t *testing.T) {
	path := writeConfig(t, "extra_blacklist:\n  - nn\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigParsesLists(t *testing.T) {
	path := writeConfig(t, "servicename: checkout\nextra_blacklist:\n  - nn\nextra_whitelist:\n  - s&s\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "checkout", cfg.ServiceName)
	assert.Equal(t, []string{"nn"}, cfg.ExtraBlacklist)
	assert.Equal(t, []string{"s&s"}, cfg.ExtraWhitelist)
}

func TestDetectorConfigLookupBlacklistsExtraFingerprint(t *testing.T) {
	cfg := DetectorConfig{ServiceName: "checkout", ExtraBlacklist: []string{"nn"}}
	d := NewSQLiDetector(cfg.Lookup())
	got := d.DetectSQLi([]byte("hello world"))
	assert.True(t, got.IsInjection)
}

func TestDetectorConfigLookupWhitelistWinsOverBlacklist(t *testing.T) {
	cfg := DetectorConfig{ServiceName: "checkout", ExtraBlacklist: []string{"nn"}, ExtraWhitelist: []string{"nn"}}
	d := NewSQLiDetector(cfg.Lookup())
	got := d.DetectSQLi([]byte("hello world"))
	assert.False(t, got.IsInjection)
}
