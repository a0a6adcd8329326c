package config

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/protoreg/internal/logging"
)

// Config is the protoctl runtime configuration.
type Config struct {
	Root             string
	ProtocolsPackage string
	BidiArtifact     string
	LogLevel         string
	MetricsTextfile  string
}

// protoctl.toml key mapping to Config.
type fileConfig struct {
	Root             string `toml:"root"`
	ProtocolsPackage string `toml:"protocols_package"`
	BidiArtifact     string `toml:"bidi_artifact"`
	LogLevel         string `toml:"log_level"`
	MetricsTextfile  string `toml:"metrics_textfile"`
}

func Default() Config {
	return Config{
		Root:             ".",
		ProtocolsPackage: "wdio-protocols",
		BidiArtifact:     "webdriverBidi.json",
	}
}

// Load decodes path over Default, keeping defaults for keys the file omits.
// A relative root is resolved against the directory holding path.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("root") {
		cfg.Root = strings.TrimSpace(raw.Root)
	}
	if meta.IsDefined("protocols_package") {
		cfg.ProtocolsPackage = strings.TrimSpace(raw.ProtocolsPackage)
	}
	if meta.IsDefined("bidi_artifact") {
		cfg.BidiArtifact = strings.TrimSpace(raw.BidiArtifact)
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(filepath.Dir(path), cfg.Root)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return fmt.Errorf("root is required")
	}
	if err := validSegment("protocols_package", cfg.ProtocolsPackage); err != nil {
		return err
	}
	if err := validSegment("bidi_artifact", cfg.BidiArtifact); err != nil {
		return err
	}
	if !fs.ValidPath(cfg.BidiArtifactPath()) {
		return fmt.Errorf("bidi artifact path %q is not a valid relative path", cfg.BidiArtifactPath())
	}
	if cfg.LogLevel != "" {
		if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
			return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
		}
	}
	return nil
}

// BidiArtifactPath is the artifact location relative to Root.
func (c Config) BidiArtifactPath() string {
	return path.Join("packages", c.ProtocolsPackage, "src", "protocols", c.BidiArtifact)
}

func validSegment(key, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return fmt.Errorf("%s is required", key)
	}
	if strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
		return fmt.Errorf("%s must be a single path segment, got %q", key, v)
	}
	return nil
}
