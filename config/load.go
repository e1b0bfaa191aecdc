package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/strafekit/strafe/oerror"
	"gopkg.in/yaml.v3"
)

// SaveDefault will create and save the default settings file as TOML. If the file already exists,
// it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return oerror.New("settings file %s already exists", path)
	}
	data, err := toml.Marshal(DefaultSettings())
	if err != nil {
		return oerror.New("failed encoding default settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.New("failed creating settings file: %v", err)
	}
	return nil
}

// Load reads the settings file at path on top of the default settings, so a file only needs to
// list the values it changes. Files ending in .yaml or .yml are decoded as YAML, anything else as
// TOML. The loaded settings are validated.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.New("error reading settings: %v", err)
	}
	return Decode(data, Format(path))
}

// Format returns the decoding format for a settings file, "yaml" or "toml".
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// Decode decodes settings in the given format on top of the default settings and validates them.
func Decode(data []byte, format string) (Settings, error) {
	s := DefaultSettings()
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, oerror.New("error decoding yaml settings: %v", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &s); err != nil {
			return Settings{}, oerror.New("error decoding toml settings: %v", err)
		}
	default:
		return Settings{}, oerror.New("unknown settings format %q", format)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}
