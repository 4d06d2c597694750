package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// RunDefaults holds the run settings a project checks in next to its
// phenopackets, so repeated runs over the same cohort don't repeat flags.
type RunDefaults struct {
	OutputDir       string   `yaml:"output_dir,omitempty"`
	LiricalDataDir  string   `yaml:"lirical_data_dir,omitempty"`
	ExomiserDataDir string   `yaml:"exomiser_data_dir,omitempty"`
	TranscriptDB    string   `yaml:"transcriptdb,omitempty"`
	Orphanet        bool     `yaml:"orphanet,omitempty"`
	UseGlobal       bool     `yaml:"use_global,omitempty"`
	VCF             []string `yaml:"vcf,omitempty"`
}

const ConfigFileName = "liribatch.yaml"

// Load reads ConfigFileName from dir. A missing file is reported as
// ErrConfigNotFound so callers can treat the config as optional.
func Load(dir string) (*RunDefaults, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg RunDefaults
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
