// Package config loads the optional lx.yaml project file (spec §A.3):
// a pure convenience layer supplying default search roots, scheduler
// mode, and seed that explicit CLI flags always override.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project config file name searched for at the entry
// module's directory and its ancestors.
const FileName = "lx.yaml"

// Config mirrors the flag defaults spec §6 names: search roots,
// scheduler mode, and seed.
type Config struct {
	Roots     []string `yaml:"roots"`
	Scheduler string   `yaml:"scheduler"`
	Seed      *uint32  `yaml:"seed"`
}

// Load searches startDir and its ancestors for lx.yaml, returning a
// zero Config (not an error) if none is found — the file is optional.
func Load(startDir string) (*Config, error) {
	path, ok := find(startDir)
	if !ok {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func find(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ApplyDefaults fills unset fields on top of cfg's project-file
// values, so a zero *Config behaves as "no overrides".
func (c *Config) ApplyDefaults(roots []string, scheduler string, seed uint32, seedSet bool) ([]string, string, uint32) {
	if c == nil {
		return roots, scheduler, seed
	}
	if len(roots) == 0 && len(c.Roots) > 0 {
		roots = c.Roots
	}
	if scheduler == "" && c.Scheduler != "" {
		scheduler = c.Scheduler
	}
	if !seedSet && c.Seed != nil {
		seed = *c.Seed
	}
	return roots, scheduler, seed
}
