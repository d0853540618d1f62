package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

const (
	defaultToolName   = "OGTT Risk Stratification Tool"
	defaultDisclaimer = "For clinical decision support only. Not a diagnostic system of record; verify all values before acting on them."
)

var (
	configFile string  = getEnv("CONFIG_FILE", "config.json")
	config     *Config = defaultConfig()
)

func defaultConfig() *Config {
	return &Config{
		ToolName:   defaultToolName,
		Disclaimer: defaultDisclaimer,
		CardSource: SourceConfig{
			Label: defaultToolName,
		},
		BaselineCapacity: defaultBaselineCapacity,
	}
}

// readConfig loads the config file over the defaults. A missing file is not an error.
func readConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse JSON data
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}

	return cfg, nil
}

// readAssessmentFile decodes a RawAssessment from a file, or from stdin for "-".
func readAssessmentFile(path string, stdin io.Reader) (RawAssessment, error) {
	if path == "-" {
		return decodeAssessment(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return RawAssessment{}, fmt.Errorf("error opening assessment file: %w", err)
	}
	defer f.Close()

	return decodeAssessment(f)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
