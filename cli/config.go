package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configName is the optional per-project / per-user defaults file.
const configName = ".luzrc.yaml"

// Config carries CLI defaults. Pointer fields distinguish "unset" from an
// explicit false/zero.
type Config struct {
	// Color forces diagnostics colouring on or off, overriding the tty
	// probe (but not --no-color or NO_COLOR).
	Color *bool `yaml:"color"`

	// Seed fixes the RNG behind `maybe`, for deterministic runs in CI.
	Seed *int64 `yaml:"seed"`
}

// LoadConfig looks for .luzrc.yaml next to the script, then in $HOME.
// A missing file is not an error — it returns an empty Config.
func LoadConfig(scriptPath string) (*Config, error) {
	candidates := []string{filepath.Join(filepath.Dir(scriptPath), configName)}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, configName))
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return &cfg, nil
	}
	return &Config{}, nil
}
