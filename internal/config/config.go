/*
Copyright 2016 Alex Baden

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	plyfile "github.com/cobaltgray/go-plyfile"
)

// Config holds the plyctl configuration.
type Config struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	ListCountType string `yaml:"list_count_type" json:"list_count_type"`
	LogLevel      string `yaml:"log_level" json:"log_level"`
}

// DefaultPath returns the default config file path: ~/.plyctl/config.yaml
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".plyctl", "config.yaml")
	}
	return filepath.Join(home, ".plyctl", "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DefaultFormat: plyfile.BinaryLittleEndian.String(),
		ListCountType: plyfile.DefaultCountType.String(),
		LogLevel:      "warn",
	}
}

// Load reads the configuration from the given YAML file path.
// If the file does not exist, it returns the defaults with no error.
// Every value is checked, so a bad file fails here and not halfway through
// a conversion.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if _, err := cfg.Format(); err != nil {
		return nil, fmt.Errorf("%s: default_format: %w", path, err)
	}
	if _, err := cfg.CountType(); err != nil {
		return nil, fmt.Errorf("%s: list_count_type: %w", path, err)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("%s: log_level: %w", path, err)
	}
	return cfg, nil
}

// Format returns the encoding convert writes when no --format is given.
func (c *Config) Format() (plyfile.Format, error) {
	return plyfile.ParseFormat(c.DefaultFormat)
}

// CountType returns the type list lengths are written as.
func (c *Config) CountType() (plyfile.Type, error) {
	t, err := plyfile.ParseType(c.ListCountType)
	if err != nil {
		return 0, err
	}
	if t == plyfile.Float32 || t == plyfile.Float64 {
		return 0, fmt.Errorf("%s is not an integer type", t)
	}
	return t, nil
}

// Level returns the log level.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}
