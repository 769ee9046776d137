package config

import (
	"os"

	yaml "gopkg.in/yaml.v2"

	"github.com/codereport-dev/codereport/pkg/shared/files"
)

// AppConfigFilename is the optional application config looked up at the repo root.
const AppConfigFilename = ".codereport.yml"

// Config holds application-level settings. All of it is optional; the tool
// runs with defaults when the file is absent.
type Config struct {
	Logger    Logger    `yaml:"logger"`
	Dashboard Dashboard `yaml:"dashboard"`
}

type Logger struct {
	Level           string `yaml:"level"`
	JSONFormat      bool   `yaml:"json_format"`
	IncludeLocation bool   `yaml:"include_location"`
}

type Dashboard struct {
	// ExpiringSoonDays is the lookahead window used to flag reports that
	// expire shortly. Zero means the built-in default.
	ExpiringSoonDays int `yaml:"expiring_soon_days"`
}

// LoadYAML decodes a YAML file into data.
func LoadYAML(configPath string, data interface{}) error {
	if err := files.ValidatePath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return err
	}

	return nil
}

// LoadConfig reads the application config from the given path. A missing file
// is not an error; defaults apply in that case.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}
