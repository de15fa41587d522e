package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "addr: :9999\nbackend_url: http://127.0.0.1:18080\nmodel_path: /tmp/m.gguf\ndefault_max_tokens: 64\ncors_allowed_origins: [\"http://a\", \"http://b\"]\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":9999" || cfg.BackendURL != "http://127.0.0.1:18080" || cfg.ModelPath != "/tmp/m.gguf" || cfg.DefaultMaxTokens != 64 || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"addr":":7070","model_name":"m2","temperature":0.2,"inference_timeout_seconds":60}`)
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":7070" || cfg.ModelName != "m2" || cfg.Temperature != 0.2 || cfg.InferTimeoutSec != 60 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "addr=\":8081\"\nmemory_source=\"procfs\"\nhealth_timeout_seconds=2\nsystem_prompt=\"be brief\"\n")
	cfg, err := Load(p)
	if err != nil { t.Fatalf("load: %v", err) }
	if cfg.Addr != ":8081" || cfg.MemorySource != "procfs" || cfg.HealthTimeoutSec != 2 || cfg.SystemPrompt != "be brief" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil { t.Fatalf("expected error on empty path") }
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil { t.Fatalf("expected unsupported extension error") }
}

func TestLoadOnto_KeepsExplicitZero(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "temperature: 0\n")
	cfg, err := LoadOnto(p, Default())
	if err != nil {
		t.Fatalf("LoadOnto: %v", err)
	}
	if cfg.Temperature != 0 {
		t.Fatalf("temperature = %v, want 0", cfg.Temperature)
	}
	if cfg.Addr != DefaultAddr || cfg.DefaultMaxTokens != DefaultMaxTokens {
		t.Fatalf("absent keys should keep base values: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero temperature should validate: %v", err)
	}
}
