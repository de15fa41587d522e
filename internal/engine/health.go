package engine

import (
	"context"

	"github.com/sourcegraph/conc"

	"aiengine/internal/backend"
	"aiengine/internal/common/fsutil"
	"aiengine/internal/sysmem"
	"aiengine/pkg/types"
)

// Health status strings.
const (
	StatusOK            = "ok"
	StatusLlamaNotReady = "llama_not_ready"
	LlamaRunning        = "running"
	LlamaNotRunning     = "not_running"
)

// Health builds the health report. It never fails: probe errors are logged
// and folded into degraded fields.
func (e *Engine) Health(ctx context.Context) types.HealthResponse {
	var (
		probe backend.ProbeResult
		mem   sysmem.Result
		wg    conc.WaitGroup
	)
	wg.Go(func() { probe = e.backend.Health(ctx) })
	wg.Go(func() { mem = e.memory.Snapshot(ctx) })
	if r := wg.WaitAndRecover(); r != nil {
		e.log.Error().Str("panic", r.String()).Msg("health probe panicked")
	}

	if probe.Err != nil {
		e.log.Warn().Err(probe.Err).Int("status_code", probe.StatusCode).Msg("llama server not ready")
	}
	if mem.Err != nil {
		e.log.Warn().Err(mem.Err).Msg("memory snapshot unavailable")
	}

	resp := types.HealthResponse{
		Status:            StatusLlamaNotReady,
		ModelLoaded:       fsutil.Exists(e.cfg.ModelPath),
		ModelName:         e.cfg.ModelName,
		LlamaServerStatus: LlamaNotRunning,
		MemoryInfo:        mem.Map(),
	}
	if probe.Ready() {
		resp.Status = StatusOK
		resp.LlamaServerStatus = LlamaRunning
	}
	return resp
}
