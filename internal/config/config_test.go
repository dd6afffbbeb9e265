package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
[llm]
provider = "openai"
model = "gpt-4o-mini"
api_key = "sk-test"

[memgraph]
uri = "bolt://graph:7687"
user = "app"

[resolver]
primary_threshold = 0.9
router_policy = "best_fit"
escalation_enabled = true

[concurrency]
extract_workers = 8
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "bolt://graph:7687", cfg.Memgraph.URI)
	assert.Equal(t, 0.9, cfg.Resolver.PrimaryThreshold)
	assert.Equal(t, "best_fit", cfg.Resolver.RouterPolicy)
	assert.True(t, cfg.Resolver.EscalationEnabled)
	assert.Equal(t, 8, cfg.Concurrency.ExtractWorkers)

	// Unset sections fall back to defaults.
	assert.Equal(t, 0.75, cfg.Resolver.SecondaryThreshold)
	assert.Equal(t, 0.90, cfg.Resolver.FreeTextThreshold)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/does/not/exist.toml")
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "bolt://localhost:7687", cfg.Memgraph.URI)
	assert.Equal(t, 0.85, cfg.Resolver.PrimaryThreshold)
	assert.Equal(t, "first_fit", cfg.Resolver.RouterPolicy)
	assert.False(t, cfg.Resolver.EscalationEnabled)
	assert.Equal(t, 4, cfg.Concurrency.ExtractWorkers)
}
