package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/repomcp/repomcp/internal/repodata"
	"gopkg.in/yaml.v3"
)

/*
HostsConfig is the optional yaml file (REPOMCP_HOSTS_CONFIG_FILE) used to
declare more hosts than the environment allows, like:

	alias_domain: gitmcp.io
	preview_hosts:
	  - git-mcp-git-preview-git-mcp.vercel.app
*/
type HostsConfig struct {
	AliasDomain  string   `yaml:"alias_domain"`
	PagesDomain  string   `yaml:"pages_domain"`
	PreviewHosts []string `yaml:"preview_hosts"`
	DevHost      string   `yaml:"dev_host"`
}

// trim values and drop empty preview hosts
func (hc *HostsConfig) UnmarshalYAML(value *yaml.Node) error {
	type myStructAlias HostsConfig // Create a new alias type to avoid recursion
	x := &myStructAlias{}

	if err := value.Decode(x); err != nil {
		return err
	}

	x.AliasDomain = strings.TrimSpace(x.AliasDomain)
	x.PagesDomain = strings.TrimSpace(x.PagesDomain)
	x.DevHost = strings.TrimSpace(x.DevHost)
	previewHosts := []string{}
	for _, h := range x.PreviewHosts {
		if h = strings.TrimSpace(h); h != "" {
			previewHosts = append(previewHosts, h)
		}
	}
	x.PreviewHosts = previewHosts

	*hc = HostsConfig(*x)
	return nil
}

func LoadHostsConfig(path string) (*HostsConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("not able to read hosts config file %s: %v", path, err)
	}
	hc := &HostsConfig{}
	if err := yaml.Unmarshal(content, hc); err != nil {
		return nil, fmt.Errorf("not able to parse hosts config file %s: %v", path, err)
	}
	return hc, nil
}

// Apply overrides the domains set in the file, and appends its preview hosts
func (hc *HostsConfig) Apply(cfg repodata.Config) repodata.Config {
	if hc.AliasDomain != "" {
		cfg.AliasDomain = hc.AliasDomain
	}
	if hc.PagesDomain != "" {
		cfg.PagesDomain = hc.PagesDomain
	}
	if hc.DevHost != "" {
		cfg.DevHost = hc.DevHost
	}
	cfg.PreviewHosts = append(append([]string{}, cfg.PreviewHosts...), hc.PreviewHosts...)
	return cfg
}

// ResolverConfig builds the resolver configuration from the environment and the optional hosts file
func ResolverConfig(hostsConfigFile string) (repodata.Config, error) {
	cfg := repodata.Config{
		AliasDomain:  Config.AliasDomain,
		PagesDomain:  Config.PagesDomain,
		PreviewHosts: append([]string{}, Config.PreviewHosts...),
		DevHost:      Config.DevHost,
	}
	if hostsConfigFile == "" {
		return cfg, nil
	}
	hc, err := LoadHostsConfig(hostsConfigFile)
	if err != nil {
		return cfg, err
	}
	return hc.Apply(cfg), nil
}
