package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/repomcp/repomcp/internal/repodata"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestHostsConfig(t *testing.T) {
	t.Run("happy path: unmarshal with trimming", func(t *testing.T) {
		content := `
alias_domain: " gitmcp.io "
preview_hosts:
  - git-mcp.vercel.app
  - "  "
  - " staging.example.dev"
`
		hc := HostsConfig{}
		err := yaml.Unmarshal([]byte(content), &hc)
		assert.Nil(t, err)
		assert.Equal(t, "gitmcp.io", hc.AliasDomain)
		assert.Equal(t, "", hc.PagesDomain)
		assert.Equal(t, []string{"git-mcp.vercel.app", "staging.example.dev"}, hc.PreviewHosts)
	})

	t.Run("happy path: apply on top of a base config", func(t *testing.T) {
		hc := HostsConfig{
			AliasDomain:  "gitmcp.io",
			PreviewHosts: []string{"git-mcp.vercel.app"},
		}
		base := repodata.DefaultConfig()
		cfg := hc.Apply(base)

		assert.Equal(t, "gitmcp.io", cfg.AliasDomain)
		assert.Equal(t, repodata.DefaultPagesDomain, cfg.PagesDomain)
		assert.Equal(t, repodata.DefaultDevHost, cfg.DevHost)
		assert.Equal(t, []string{repodata.DefaultPreviewHost, "git-mcp.vercel.app"}, cfg.PreviewHosts)
		// base is untouched
		assert.Equal(t, []string{repodata.DefaultPreviewHost}, base.PreviewHosts)
	})

	t.Run("happy path: load from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hosts.yaml")
		err := os.WriteFile(path, []byte("dev_host: dev.local\n"), 0644)
		assert.Nil(t, err)

		cfg, err := ResolverConfig(path)
		assert.Nil(t, err)
		assert.Equal(t, "dev.local", cfg.DevHost)
		assert.Equal(t, Config.AliasDomain, cfg.AliasDomain)
	})

	t.Run("happy path: no file means environment only", func(t *testing.T) {
		cfg, err := ResolverConfig("")
		assert.Nil(t, err)
		assert.Equal(t, Config.AliasDomain, cfg.AliasDomain)
		assert.Equal(t, Config.PreviewHosts, cfg.PreviewHosts)
	})

	t.Run("not happy path: missing file", func(t *testing.T) {
		_, err := ResolverConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.NotNil(t, err)
	})

	t.Run("not happy path: invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "hosts.yaml")
		err := os.WriteFile(path, []byte("preview_hosts: {not: [a list"), 0644)
		assert.Nil(t, err)

		_, err = LoadHostsConfig(path)
		assert.NotNil(t, err)
	})
}

func TestEnvDefaults(t *testing.T) {
	// no REPOMCP_* variable is set while testing
	assert.Equal(t, repodata.DefaultAliasDomain, Config.AliasDomain)
	assert.Equal(t, repodata.DefaultPagesDomain, Config.PagesDomain)
	assert.Equal(t, []string{repodata.DefaultPreviewHost}, Config.PreviewHosts)
	assert.Equal(t, repodata.DefaultDevHost, Config.DevHost)
}
