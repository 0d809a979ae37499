package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// mergeFile overlays non-zero settings from a YAML file, e.g.
//
//	provider: gemini
//	model: gemini-2.0-flash
//	temperature: 0.7
//	max_output_tokens: 500
//	timeout: 30s
//	prompt_template: "I added {product} to my cart. What recipes can I make? Suggest ingredients."
// llmFile is the on-disk shape; pointers tell "unset" apart from zero
type llmFile struct {
	Provider        string        `yaml:"provider"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	Temperature     *float32      `yaml:"temperature"`
	MaxOutputTokens int32         `yaml:"max_output_tokens"`
	PromptTemplate  string        `yaml:"prompt_template"`
	Timeout         time.Duration `yaml:"timeout"`
}

func (l *LLMConfig) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var file llmFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if file.Provider != "" && os.Getenv("LLM_PROVIDER") == "" {
		l.Provider = strings.ToLower(file.Provider)
	}
	if file.Model != "" {
		l.Model = file.Model
	}
	if file.BaseURL != "" {
		l.BaseURL = file.BaseURL
	}
	if file.Temperature != nil {
		l.Temperature = *file.Temperature
	}
	if file.MaxOutputTokens > 0 {
		l.MaxOutputTokens = file.MaxOutputTokens
	}
	if file.Timeout > 0 {
		l.Timeout = file.Timeout
	}
	if file.PromptTemplate != "" {
		l.PromptTemplate = file.PromptTemplate
	}
	return nil
}
