package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"aiengine/internal/prompt"
)

// Built-in values matching the deployed engine.
const (
	DefaultAddr             = ":8000"
	DefaultBackendURL       = "http://127.0.0.1:8080"
	DefaultModelPath        = "/gopang/ai-engine/models/gopang-exaone-finetuned-Q4_K_M.gguf"
	DefaultModelName        = "gopang-exaone-finetuned-Q4_K_M"
	DefaultMaxTokens        = 150
	DefaultTemperature      = 0.7
	DefaultHealthTimeoutSec = 5
	DefaultInferTimeoutSec  = 300
	DefaultMemorySource     = "free"
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultMaxBodyBytes     = 1 << 20
)

// Default returns a Config populated with built-in values.
func Default() Config {
	return Config{
		Addr:             DefaultAddr,
		BackendURL:       DefaultBackendURL,
		ModelPath:        DefaultModelPath,
		ModelName:        DefaultModelName,
		SystemPrompt:     prompt.DefaultSystemPrompt,
		DefaultMaxTokens: DefaultMaxTokens,
		Temperature:      DefaultTemperature,
		HealthTimeoutSec: DefaultHealthTimeoutSec,
		InferTimeoutSec:  DefaultInferTimeoutSec,
		MemorySource:     DefaultMemorySource,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
		MaxBodyBytes:     DefaultMaxBodyBytes,
	}
}

// Merge overlays the non-zero fields of o onto c. A zero field in o means
// "unset", so Merge cannot express an explicit zero; use LoadOnto for files.
func (c Config) Merge(o Config) Config {
	if o.Addr != "" {
		c.Addr = o.Addr
	}
	if o.BackendURL != "" {
		c.BackendURL = o.BackendURL
	}
	if o.ModelPath != "" {
		c.ModelPath = o.ModelPath
	}
	if o.ModelName != "" {
		c.ModelName = o.ModelName
	}
	if o.SystemPrompt != "" {
		c.SystemPrompt = o.SystemPrompt
	}
	if o.DefaultMaxTokens != 0 {
		c.DefaultMaxTokens = o.DefaultMaxTokens
	}
	if o.Temperature != 0 {
		c.Temperature = o.Temperature
	}
	if o.HealthTimeoutSec != 0 {
		c.HealthTimeoutSec = o.HealthTimeoutSec
	}
	if o.InferTimeoutSec != 0 {
		c.InferTimeoutSec = o.InferTimeoutSec
	}
	if o.MemorySource != "" {
		c.MemorySource = o.MemorySource
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		c.LogFormat = o.LogFormat
	}
	if o.MaxBodyBytes != 0 {
		c.MaxBodyBytes = o.MaxBodyBytes
	}
	if o.CORSEnabled {
		c.CORSEnabled = true
	}
	if len(o.CORSOrigins) > 0 {
		c.CORSOrigins = append([]string(nil), o.CORSOrigins...)
	}
	return c
}

// ApplyEnv overrides fields from AIENGINE_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}

// Validate checks the values the server cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend_url must be an absolute URL: %q", c.BackendURL))
	}
	if c.DefaultMaxTokens < 1 {
		errs = append(errs, fmt.Errorf("default_max_tokens must be positive: %d", c.DefaultMaxTokens))
	}
	if c.Temperature < 0 {
		errs = append(errs, fmt.Errorf("temperature must not be negative: %v", c.Temperature))
	}
	if c.HealthTimeoutSec < 1 || c.InferTimeoutSec < 1 {
		errs = append(errs, errors.New("timeouts must be at least one second"))
	}
	switch c.MemorySource {
	case "free", "procfs":
	default:
		errs = append(errs, fmt.Errorf("memory_source must be free or procfs: %q", c.MemorySource))
	}
	return errors.Join(errs...)
}

// HealthTimeout returns the backend health probe deadline.
func (c Config) HealthTimeout() time.Duration {
	return time.Duration(c.HealthTimeoutSec) * time.Second
}

// InferTimeout returns the backend completion deadline.
func (c Config) InferTimeout() time.Duration {
	return time.Duration(c.InferTimeoutSec) * time.Second
}
