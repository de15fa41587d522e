// Package engine implements the facade's request semantics: prompt
// selection and rendering, the single backend completion call, and the
// fail-soft health report. It is transport agnostic; internal/httpapi maps
// its results and errors onto HTTP.
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"aiengine/internal/backend"
	"aiengine/internal/prompt"
	"aiengine/internal/sysmem"
	"aiengine/pkg/types"
)

// Defaults applied when corresponding Config fields are unset.
const (
	defaultMaxTokens   = 150
	defaultTemperature = 0.7
	defaultServiceName = "Gopang AI Engine"
	defaultVersion     = "0.3.2"
)

// Backend is the subset of the llama server client the engine uses.
type Backend interface {
	Health(ctx context.Context) backend.ProbeResult
	Complete(ctx context.Context, req backend.CompletionRequest) (backend.CompletionResponse, error)
}

// Config encapsulates the engine tunables. SystemPrompt is the fallback
// instruction text used when a request carries none. A nil Temperature
// selects the default; zero is forwarded as is.
type Config struct {
	SystemPrompt     string
	ModelPath        string
	ModelName        string
	DefaultMaxTokens int
	Temperature      *float64
	ServiceName      string
	Version          string
}

// Engine serves root, health and inference requests.
type Engine struct {
	cfg     Config
	tpl     *prompt.Template
	backend Backend
	memory  sysmem.Probe
	log     zerolog.Logger
}

// New constructs an Engine, applying defaults for zero values.
func New(cfg Config, be Backend, mem sysmem.Probe, log zerolog.Logger) *Engine {
	if cfg.DefaultMaxTokens <= 0 {
		cfg.DefaultMaxTokens = defaultMaxTokens
	}
	if cfg.Temperature == nil {
		t := defaultTemperature
		cfg.Temperature = &t
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultServiceName
	}
	if cfg.Version == "" {
		cfg.Version = defaultVersion
	}
	if mem == nil {
		mem = sysmem.NewFreeProbe()
	}
	return &Engine{
		cfg:     cfg,
		tpl:     prompt.NewTemplate(cfg.SystemPrompt),
		backend: be,
		memory:  mem,
		log:     log.With().Str("component", "engine").Logger(),
	}
}

// Root returns the service banner.
func (e *Engine) Root() types.RootResponse {
	return types.RootResponse{Message: fmt.Sprintf("%s v%s", e.cfg.ServiceName, e.cfg.Version)}
}

// Template exposes the prompt template the engine renders with.
func (e *Engine) Template() *prompt.Template { return e.tpl }
