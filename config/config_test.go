package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/wordgroup/datamuse"
	"github.com/spektr-org/wordgroup/grouping"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"WORDGROUP_ENDPOINT", "WORDGROUP_SAVED_PATH", "WORDGROUP_FORMAT", "WORDGROUP_MAX"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, datamuse.DefaultEndpoint, cfg.Datamuse.Endpoint)
	assert.Equal(t, "natural", cfg.Grouping.Order)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "saved.json", filepath.Base(cfg.SavedPath))
	require.NoError(t, cfg.Validate())

	timeout, err := cfg.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")

	cfg := DefaultConfig()
	cfg.Grouping.Order = "lexical"
	cfg.Datamuse.Max = 50
	cfg.Output.Color = false
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	order, err := loaded.Order()
	require.NoError(t, err)
	assert.Equal(t, grouping.OrderLexical, order)
}

func TestLoadPartialYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datamuse:\n  timeout: 2s\noutput:\n  format: pretty\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, datamuse.DefaultEndpoint, cfg.Datamuse.Endpoint, "unset fields keep defaults")
	assert.Equal(t, "pretty", cfg.Output.Format)

	dc, err := cfg.DatamuseClientConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, dc.Timeout)
}

func TestConfig_EnvOverrides(t *testing.T) {
	t.Setenv("WORDGROUP_ENDPOINT", "http://localhost:9999/words")
	t.Setenv("WORDGROUP_SAVED_PATH", "/tmp/words.json")
	t.Setenv("WORDGROUP_FORMAT", "csv")
	t.Setenv("WORDGROUP_MAX", "12")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/words", cfg.Datamuse.Endpoint)
	assert.Equal(t, "/tmp/words.json", cfg.SavedPath)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, 12, cfg.Datamuse.Max)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	cases := map[string]string{
		"bad yaml":    "datamuse: [",
		"bad timeout": "datamuse:\n  timeout: soon\n",
		"bad order":   "grouping:\n  order: random\n",
		"bad format":  "output:\n  format: xml\n",
		"bad max":     "datamuse:\n  max: -1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
