package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the flag namespace.
type FileConfig struct {
	Input  string `yaml:"input" json:"input"`
	Output string `yaml:"output" json:"output"`

	Crossref struct {
		Mailto string `yaml:"mailto" json:"mailto"`
		Base   string `yaml:"base" json:"base"`
	} `yaml:"crossref" json:"crossref"`

	// Durations are strings ("2s", "500ms") parsed on overlay.
	Delay   string `yaml:"delay" json:"delay"`
	Timeout string `yaml:"timeout" json:"timeout"`

	Similarity struct {
		Threshold float64 `yaml:"threshold" json:"threshold"`
	} `yaml:"similarity" json:"similarity"`

	Title struct {
		AutoAccept bool `yaml:"autoAccept" json:"autoAccept"`
		MinLen     int  `yaml:"minLen" json:"minLen"`
		Rows       int  `yaml:"rows" json:"rows"`
	} `yaml:"title" json:"title"`

	Pages struct {
		First int `yaml:"first" json:"first"`
	} `yaml:"pages" json:"pages"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig, choosing the decoder
// by extension and falling back to YAML-then-JSON for anything else.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays file values into cfg for fields still at their
// zero or flag-default value. Flags parse first; the file supplies
// defaults without overriding anything set explicitly to a non-default.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	// Flag defaults that the file may still override.
	const (
		delayDefault       = time.Second
		timeoutDefault     = 30 * time.Second
		thresholdDefault   = 0.55
		titleMinLenDefault = 30
		titleRowsDefault   = 5
		firstPagesDefault  = 3
	)

	if cfg.InputDir == "" && fc.Input != "" {
		cfg.InputDir = fc.Input
	}
	if cfg.OutputDir == "" && fc.Output != "" {
		cfg.OutputDir = fc.Output
	}
	if cfg.Mailto == "" && fc.Crossref.Mailto != "" {
		cfg.Mailto = fc.Crossref.Mailto
	}
	if cfg.CrossrefBaseURL == "" && fc.Crossref.Base != "" {
		cfg.CrossrefBaseURL = fc.Crossref.Base
	}
	if (cfg.Delay == 0 || cfg.Delay == delayDefault) && fc.Delay != "" {
		if d, err := time.ParseDuration(fc.Delay); err == nil {
			cfg.Delay = d
		}
	}
	if (cfg.Timeout == 0 || cfg.Timeout == timeoutDefault) && fc.Timeout != "" {
		if d, err := time.ParseDuration(fc.Timeout); err == nil {
			cfg.Timeout = d
		}
	}
	if (cfg.SimilarityThreshold == 0 || cfg.SimilarityThreshold == thresholdDefault) && fc.Similarity.Threshold > 0 {
		cfg.SimilarityThreshold = fc.Similarity.Threshold
	}
	if !cfg.TitleAutoAccept && fc.Title.AutoAccept {
		cfg.TitleAutoAccept = true
	}
	if (cfg.TitleMinLen == 0 || cfg.TitleMinLen == titleMinLenDefault) && fc.Title.MinLen > 0 {
		cfg.TitleMinLen = fc.Title.MinLen
	}
	if (cfg.TitleRows == 0 || cfg.TitleRows == titleRowsDefault) && fc.Title.Rows > 0 {
		cfg.TitleRows = fc.Title.Rows
	}
	if (cfg.FirstPages == 0 || cfg.FirstPages == firstPagesDefault) && fc.Pages.First > 0 {
		cfg.FirstPages = fc.Pages.First
	}
	if !cfg.Verbose && fc.Verbose {
		cfg.Verbose = true
	}
}

// ValidateConfig checks the settings a run cannot proceed without.
func ValidateConfig(cfg Config) error {
	if cfg.InputDir == "" {
		return errors.New("config: input folder is required")
	}
	if cfg.SimilarityThreshold < 0 || cfg.SimilarityThreshold > 1 {
		return errors.New("config: similarity threshold must be in [0,1]")
	}
	if cfg.Delay < 0 || cfg.Timeout < 0 {
		return errors.New("config: negative durations are not allowed")
	}
	if cfg.FirstPages < 0 || cfg.TitleRows < 0 || cfg.TitleMinLen < 0 {
		return errors.New("config: negative limits are not allowed")
	}
	return nil
}
