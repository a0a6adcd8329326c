package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "PROTOREG_LOG_LEVEL"
	EnvLogTimestamp = "PROTOREG_LOG_TIMESTAMP"
	EnvLogNoColor   = "PROTOREG_LOG_NOCOLOR"
	EnvLogBypass    = "PROTOREG_LOG_BYPASS"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config selects level and console formatting for the global logger.
// Bypass skips console formatting and writes raw JSON lines.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool
	Out       io.Writer
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		Apply(cfg)
	})
}

// Apply installs cfg as the process-wide zerolog logger.
func Apply(cfg Config) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if !cfg.Bypass {
		cw := zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: time.RFC3339,
		}
		if !cfg.Timestamp {
			cw.PartsExclude = []string{zerolog.TimestampFieldName}
		}
		out = cw
	}

	ctx := zerolog.New(out).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	zerolog.SetGlobalLevel(cfg.Level)
	log.Logger = ctx.Str("app", "protoreg").Logger()
}

// OverrideLevel applies a configured level unless the environment already
// pinned one. Unknown or empty values are ignored and reported as false.
func OverrideLevel(raw string) bool {
	if _, pinned := ParseLevel(os.Getenv(EnvLogLevel)); pinned {
		return false
	}
	lvl, ok := ParseLevel(raw)
	if !ok {
		return false
	}
	zerolog.SetGlobalLevel(lvl)
	return true
}

func defaultConfig(profile Profile) Config {
	cfg := Config{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()),
	}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

// envToggles are the boolean PROTOREG_LOG_* switches and the field each sets.
var envToggles = []struct {
	key string
	set func(*Config, bool)
}{
	{EnvLogTimestamp, func(c *Config, v bool) { c.Timestamp = v }},
	{EnvLogNoColor, func(c *Config, v bool) { c.NoColor = v }},
	{EnvLogBypass, func(c *Config, v bool) { c.Bypass = v }},
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := ParseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	for _, toggle := range envToggles {
		raw := strings.TrimSpace(os.Getenv(toggle.key))
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseBool(raw); err == nil {
			toggle.set(cfg, v)
		}
	}
}

// levelAliases extends zerolog's level names with the spellings accepted in
// protoctl.toml and PROTOREG_LOG_LEVEL.
var levelAliases = map[string]zerolog.Level{
	"diagnostics": zerolog.TraceLevel,
	"warning":     zerolog.WarnLevel,
	"off":         zerolog.Disabled,
	"none":        zerolog.Disabled,
}

// ParseLevel resolves a log_level value. Empty input and levels that would
// abort the process (fatal, panic) are rejected with ok=false.
func ParseLevel(raw string) (zerolog.Level, bool) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if lvl, ok := levelAliases[name]; ok {
		return lvl, true
	}
	if name == "" {
		return zerolog.InfoLevel, false
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.InfoLevel, false
	}
	switch lvl {
	case zerolog.NoLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return zerolog.InfoLevel, false
	}
	return lvl, true
}
