package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled by Default/Merge.
type Config struct {
	Addr             string   `json:"addr" yaml:"addr" toml:"addr" env:"AIENGINE_ADDR"`
	BackendURL       string   `json:"backend_url" yaml:"backend_url" toml:"backend_url" env:"AIENGINE_BACKEND_URL"`
	ModelPath        string   `json:"model_path" yaml:"model_path" toml:"model_path" env:"AIENGINE_MODEL_PATH"`
	ModelName        string   `json:"model_name" yaml:"model_name" toml:"model_name" env:"AIENGINE_MODEL_NAME"`
	SystemPrompt     string   `json:"system_prompt" yaml:"system_prompt" toml:"system_prompt" env:"AIENGINE_SYSTEM_PROMPT"`
	DefaultMaxTokens int      `json:"default_max_tokens" yaml:"default_max_tokens" toml:"default_max_tokens" env:"AIENGINE_DEFAULT_MAX_TOKENS"`
	Temperature      float64  `json:"temperature" yaml:"temperature" toml:"temperature" env:"AIENGINE_TEMPERATURE"`
	HealthTimeoutSec int      `json:"health_timeout_seconds" yaml:"health_timeout_seconds" toml:"health_timeout_seconds" env:"AIENGINE_HEALTH_TIMEOUT_SECONDS"`
	InferTimeoutSec  int      `json:"inference_timeout_seconds" yaml:"inference_timeout_seconds" toml:"inference_timeout_seconds" env:"AIENGINE_INFERENCE_TIMEOUT_SECONDS"`
	MemorySource     string   `json:"memory_source" yaml:"memory_source" toml:"memory_source" env:"AIENGINE_MEMORY_SOURCE"`
	LogLevel         string   `json:"log_level" yaml:"log_level" toml:"log_level" env:"AIENGINE_LOG_LEVEL"`
	LogFormat        string   `json:"log_format" yaml:"log_format" toml:"log_format" env:"AIENGINE_LOG_FORMAT"`
	MaxBodyBytes     int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" env:"AIENGINE_MAX_BODY_BYTES"`
	CORSEnabled      bool     `json:"cors_enabled" yaml:"cors_enabled" toml:"cors_enabled" env:"AIENGINE_CORS_ENABLED"`
	CORSOrigins      []string `json:"cors_allowed_origins" yaml:"cors_allowed_origins" toml:"cors_allowed_origins" env:"AIENGINE_CORS_ALLOWED_ORIGINS" env-separator:","`
}

// Load reads a config file into a zero Config. The format is chosen by
// extension: .yaml/.yml, .json or .toml.
func Load(path string) (Config, error) {
	return LoadOnto(path, Config{})
}

// LoadOnto decodes the file over base. Keys absent from the file keep their
// base value; keys present override it, zero values included.
func LoadOnto(path string, base Config) (Config, error) {
	cfg := base
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
