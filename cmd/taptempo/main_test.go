package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/verte-zerg/taptempo/internal/config"
	"github.com/verte-zerg/taptempo/internal/lineui"
	"github.com/verte-zerg/taptempo/internal/model"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if body == "" {
		return
	}
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestRootCmdRunsProtocol(t *testing.T) {
	writeConfig(t, "")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{})
	root.SetIn(strings.NewReader("\nq\n"))
	root.SetOut(&out)
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := lineui.Banner + "\n" + lineui.MorePrompt + "\n" + lineui.Goodbye + "\n"
	if out.String() != want {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRootCmdReturnsReadError(t *testing.T) {
	writeConfig(t, "")
	boom := errors.New("boom")
	root := newRootCmd()
	root.SetArgs([]string{})
	root.SetIn(iotest.ErrReader(boom))
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
	if got := errorLine(err); got != "Error: boom\n" {
		t.Fatalf("unexpected error line: %q", got)
	}
}

func TestResolveSettingsFlagOverridesFile(t *testing.T) {
	writeConfig(t, "[tempo]\nprecision = 3\nsample-size = 8\n")
	root := newRootCmd()
	if err := root.ParseFlags([]string{"-p", "9"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := resolveSettings(root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := model.Config{Precision: 5, ResetTimeSeconds: 5, SampleSize: 8}
	if s.tempo != want {
		t.Fatalf("expected %+v, got %+v", want, s.tempo)
	}
}

func TestResolveSettingsClampsFlags(t *testing.T) {
	writeConfig(t, "")
	root := newRootCmd()
	if err := root.ParseFlags([]string{"--reset-time", "0", "-s", "-4", "--precision", "-1"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	s, err := resolveSettings(root)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	want := model.Config{Precision: 0, ResetTimeSeconds: 1, SampleSize: 1}
	if s.tempo != want {
		t.Fatalf("expected %+v, got %+v", want, s.tempo)
	}
}

func TestResolveSettingsBadConfig(t *testing.T) {
	writeConfig(t, "[tempo]\nbogus = 1\n")
	root := newRootCmd()
	if err := root.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	_, err := resolveSettings(root)
	if err == nil || !strings.Contains(err.Error(), "failed to load config") {
		t.Fatalf("expected config error, got %v", err)
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taptempo", "config.toml")
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write default config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Tempo.Precision != nil || cfg.Log.File != nil {
		t.Fatalf("expected every template value commented out, got %+v", cfg)
	}
	if err := os.WriteFile(path, []byte("[tempo]\nprecision = 2\n"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("second write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "precision = 2") {
		t.Fatalf("existing config must be kept, got %q", data)
	}
}
