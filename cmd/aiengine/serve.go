package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"aiengine/internal/backend"
	"aiengine/internal/common/fsutil"
	"aiengine/internal/config"
	"aiengine/internal/engine"
	"aiengine/internal/httpapi"
	"aiengine/internal/logging"
	"aiengine/internal/sysmem"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, cmd.Flags())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Config file (.yaml, .json, .toml)")
	cmd.Flags().String("addr", config.DefaultAddr, "HTTP listen address")
	cmd.Flags().String("backend-url", config.DefaultBackendURL, "llama.cpp server base URL")
	cmd.Flags().String("model-path", config.DefaultModelPath, "Model file checked by /health")
	cmd.Flags().String("log-level", config.DefaultLogLevel, "Log level: debug|info|warn|error")
	return cmd
}

// newHandler wires the engine and its collaborators from cfg.
func newHandler(cfg config.Config, log zerolog.Logger) (http.Handler, error) {
	mem, err := sysmem.New(cfg.MemorySource)
	if err != nil {
		return nil, err
	}
	modelPath, err := fsutil.ExpandHome(cfg.ModelPath)
	if err != nil {
		return nil, err
	}
	be := backend.New(backend.Config{
		BaseURL:           cfg.BackendURL,
		HealthTimeout:     cfg.HealthTimeout(),
		CompletionTimeout: cfg.InferTimeout(),
	})
	eng := engine.New(engine.Config{
		SystemPrompt:     cfg.SystemPrompt,
		ModelPath:        modelPath,
		ModelName:        cfg.ModelName,
		DefaultMaxTokens: cfg.DefaultMaxTokens,
		Temperature:      &cfg.Temperature,
		Version:          version,
	}, be, mem, log)

	httpapi.SetLogger(log.With().Str("component", "http").Logger())
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSOrigins, nil, nil)
	return httpapi.NewMux(eng), nil
}

func serve(ctx context.Context, cfg config.Config) error {
	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	h, err := newHandler(cfg, log)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		// Inference may legitimately take the whole backend timeout.
		WriteTimeout: cfg.InferTimeout() + 30*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Addr).
			Str("backend", cfg.BackendURL).
			Str("model_path", cfg.ModelPath).
			Msg("aiengine listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
