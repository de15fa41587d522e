package engine

import (
	"context"
	"net/http"
	"strings"
	"time"

	"aiengine/internal/backend"
	"aiengine/internal/prompt"
	"aiengine/pkg/types"
)

// Infer renders the request into a prompt, performs exactly one backend
// completion call and returns the trimmed completion text.
//
// The backend call is detached from ctx cancellation: a caller that goes
// away does not abort generation. Only the backend client's deadline bounds it.
func (e *Engine) Infer(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	start := time.Now()
	if req.Message == nil {
		return types.ChatResponse{}, invalid("message is required")
	}
	maxTokens := e.cfg.DefaultMaxTokens
	// Any integer is forwarded; llama.cpp reads -1 as "until stop".
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	var custom string
	if req.SystemPrompt != nil {
		custom = *req.SystemPrompt
	}

	system := e.tpl.Select(custom)
	payload := backend.CompletionRequest{
		Prompt:      e.tpl.Render(system, *req.Message),
		NPredict:    maxTokens,
		Temperature: *e.cfg.Temperature,
		Stop:        prompt.StopTokens(),
	}
	e.log.Debug().
		Int("n_predict", maxTokens).
		Bool("custom_system", custom != "").
		Int("prompt_len", len(payload.Prompt)).
		Msg("completion start")

	out, err := e.backend.Complete(context.WithoutCancel(ctx), payload)
	elapsed := time.Since(start)
	if err != nil {
		if backend.IsTimeout(err) {
			e.log.Warn().Err(err).Dur("dur", elapsed).Msg("completion timed out")
			return types.ChatResponse{}, &Error{Code: http.StatusGatewayTimeout, Detail: TimeoutDetail, Err: err}
		}
		e.log.Error().Err(err).Dur("dur", elapsed).Msg("completion failed")
		return types.ChatResponse{}, &Error{Code: http.StatusInternalServerError, Detail: err.Error(), Err: err}
	}

	resp := types.ChatResponse{
		Response:       strings.TrimSpace(out.Content),
		ProcessingTime: elapsed.Seconds(),
	}
	e.log.Debug().
		Int("content_len", len(resp.Response)).
		Bool("stopped", out.Stop).
		Str("model", out.Model).
		Dur("dur", elapsed).
		Msg("completion end")
	return resp, nil
}
