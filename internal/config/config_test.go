package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/protoreg/internal/testutil/testlog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protoctl.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
root = "/src/webdriverio"
bidi_artifact = "webdriverBidi.gen.json"
log_level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Root != "/src/webdriverio" {
		t.Fatalf("unexpected root: %q", cfg.Root)
	}
	if cfg.ProtocolsPackage != "wdio-protocols" {
		t.Fatalf("expected default protocols package, got %q", cfg.ProtocolsPackage)
	}
	if cfg.BidiArtifact != "webdriverBidi.gen.json" {
		t.Fatalf("unexpected bidi artifact: %q", cfg.BidiArtifact)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	if got := cfg.BidiArtifactPath(); got != "packages/wdio-protocols/src/protocols/webdriverBidi.gen.json" {
		t.Fatalf("unexpected artifact path: %q", got)
	}
}

func TestLoadResolvesRelativeRootAgainstConfigDir(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(sub, "protoctl.toml")
	if err := os.WriteFile(path, []byte("root = \"../webdriverio\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if want := filepath.Join(dir, "webdriverio"); cfg.Root != want {
		t.Fatalf("unexpected root: got=%q want=%q", cfg.Root, want)
	}

	omitted := writeConfig(t, "log_level = \"warn\"\n")
	cfg, err = Load(omitted)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Root != filepath.Dir(omitted) {
		t.Fatalf("default root not anchored to config dir: %q", cfg.Root)
	}
}

func TestLoadMissingFile(t *testing.T) {
	testlog.Start(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing config")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `rooot = "."`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "rooot") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestValidateFailures(t *testing.T) {
	testlog.Start(t)
	base := Default()
	cases := []func(*Config){
		func(c *Config) { c.Root = " " },
		func(c *Config) { c.ProtocolsPackage = "" },
		func(c *Config) { c.ProtocolsPackage = "a/b" },
		func(c *Config) { c.BidiArtifact = ".." },
		func(c *Config) { c.BidiArtifact = `x\y.json` },
		func(c *Config) { c.LogLevel = "loud" },
	}
	for i, mutate := range cases {
		cfg := base
		mutate(&cfg)
		if err := Validate(cfg); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, cfg)
		}
	}
	if err := Validate(base); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "protoctl.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("forced overwrite: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	want := Default()
	want.Root = filepath.Dir(path)
	want.LogLevel = "info"
	if cfg != want {
		t.Fatalf("unexpected template config: %+v", cfg)
	}
}
