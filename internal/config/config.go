// Package config loads the optional config file at
// $XDG_CONFIG_HOME/edubridge/config.yaml. Precedence, lowest to
// highest: built-in defaults, config file, environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/edubridge/edubridge/internal/llm"
)

// File is the on-disk config shape. Every field is optional.
type File struct {
	Provider string `yaml:"provider"`
	DB       string `yaml:"db"`
	Verbose  bool   `yaml:"verbose"`

	Anthropic struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"anthropic"`

	OpenAI struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"openai"`

	Gemini struct {
		APIKey     string `yaml:"api_key"`
		Model      string `yaml:"model"`
		ImageModel string `yaml:"image_model"`
	} `yaml:"gemini"`

	OpenRouter struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openrouter"`
}

// DefaultPath resolves the config file location.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "edubridge", "config.yaml"), nil
}

// Load reads the config file at path. A missing file is not an error;
// it returns a zero File.
func Load(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return f, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

// LLMConfig builds the model configuration: defaults, overlaid with the
// file, overlaid with environment variables.
func (f File) LLMConfig() llm.Config {
	cfg := llm.DefaultConfig()

	if f.Provider != "" {
		cfg.Provider = f.Provider
	}
	if f.Anthropic.APIKey != "" {
		cfg.Anthropic.APIKey = f.Anthropic.APIKey
	}
	if f.Anthropic.Model != "" {
		cfg.Anthropic.Model = f.Anthropic.Model
	}
	if f.OpenAI.APIKey != "" {
		cfg.OpenAI.APIKey = f.OpenAI.APIKey
	}
	if f.OpenAI.Model != "" {
		cfg.OpenAI.Model = f.OpenAI.Model
	}
	if f.OpenAI.BaseURL != "" {
		cfg.OpenAI.BaseURL = f.OpenAI.BaseURL
	}
	if f.Gemini.APIKey != "" {
		cfg.Gemini.APIKey = f.Gemini.APIKey
	}
	if f.Gemini.Model != "" {
		cfg.Gemini.Model = f.Gemini.Model
	}
	if f.Gemini.ImageModel != "" {
		cfg.Gemini.ImageModel = f.Gemini.ImageModel
	}
	if f.OpenRouter.APIKey != "" {
		cfg.OpenRouter.APIKey = f.OpenRouter.APIKey
	}
	if f.OpenRouter.Model != "" {
		cfg.OpenRouter.Model = f.OpenRouter.Model
	}

	return llm.ApplyEnv(cfg)
}
