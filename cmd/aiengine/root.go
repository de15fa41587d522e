package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"aiengine/internal/config"
	"aiengine/internal/prompt"
)

const version = "0.3.2"

// newRootCmd constructs the command tree. Running the root alone serves.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "aiengine",
		Short:         "HTTP facade in front of a local llama.cpp server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCmd()
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newRenderCmd(), &cobra.Command{
		Use:   "version",
		Short: "Print the engine version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Gopang AI Engine v%s\n", version)
			return err
		},
	})
	return root
}

func newRenderCmd() *cobra.Command {
	var message, system, cfgPath string
	cmd := &cobra.Command{
		Use:     "render",
		Short:   "Print the prompt sent to the llama server for a message",
		Example: "  aiengine render --message '등본 발급 방법'\n  aiengine render --message hi --system 'be brief'",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgPath, nil)
			if err != nil {
				return err
			}
			tpl := prompt.NewTemplate(cfg.SystemPrompt)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tpl.Render(tpl.Select(system), message))
			return err
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "User message")
	cmd.Flags().StringVar(&system, "system", "", "System prompt (defaults to the configured one)")
	cmd.Flags().StringVar(&cfgPath, "config", "", "Config file (.yaml, .json, .toml)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

// loadConfig layers defaults, the optional file, AIENGINE_* env and flags
// that were set explicitly, in that order.
func loadConfig(path string, flags *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		fileCfg, err := config.LoadOnto(path, cfg)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = fileCfg
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if flags != nil {
		var over config.Config
		if f := flags.Lookup("addr"); f != nil && f.Changed {
			over.Addr = f.Value.String()
		}
		if f := flags.Lookup("backend-url"); f != nil && f.Changed {
			over.BackendURL = f.Value.String()
		}
		if f := flags.Lookup("model-path"); f != nil && f.Changed {
			over.ModelPath = f.Value.String()
		}
		if f := flags.Lookup("log-level"); f != nil && f.Changed {
			over.LogLevel = f.Value.String()
		}
		cfg = cfg.Merge(over)
	}
	return cfg, cfg.Validate()
}
