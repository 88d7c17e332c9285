// Package clash edits Clash proxy configuration files: structured DNS
// insertion over a YAML round-trip, and line-preserving patches for configs
// whose formatting must survive untouched.
package clash

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config is a parsed Clash configuration. The schema is wide open, so it
// stays a generic mapping.
type Config map[string]any

// LoadConfig parses the YAML config at path.
func LoadConfig(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	if cfg == nil {
		cfg = Config{}
	}
	return cfg, nil
}

// Marshal renders the config back to YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(map[string]any(c))
}

// AddDNS ensures addr is present in both `dns.default-nameserver` and
// `dns.nameserver`, creating the sections as needed. It reports whether the
// config was changed.
func (c Config) AddDNS(addr string) bool {
	dns, ok := c["dns"].(map[string]any)
	if !ok {
		dns = map[string]any{}
		c["dns"] = dns
	}

	changed := false
	for _, key := range []string{"default-nameserver", "nameserver"} {
		list, _ := dns[key].([]any)
		if !containsValue(list, addr) {
			dns[key] = append(list, addr)
			changed = true
		}
	}
	return changed
}

func containsValue(list []any, val string) bool {
	for _, item := range list {
		if s, ok := item.(string); ok && s == val {
			return true
		}
	}
	return false
}
