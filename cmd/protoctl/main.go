package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/protoreg/internal/config"
	"github.com/danmuck/protoreg/internal/logging"
	"github.com/danmuck/protoreg/internal/observability"
	"github.com/danmuck/protoreg/internal/protocols"
	"github.com/danmuck/protoreg/internal/registry"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.ConfigureRuntime()
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "protoctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("protoctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	cfgPath := flags.String("config", "", "protoctl.toml path (built-in defaults when empty)")
	initCfg := flags.Bool("init", false, "write a config template to -output and exit")
	output := flags.String("output", "protoctl.toml", "output path for -init")
	force := flags.Bool("force", false, "overwrite an existing file with -init")
	dump := flags.Bool("dump", false, "write the assembled registry as JSON to stdout")
	metricsOut := flags.String("metrics-out", "", "write a Prometheus textfile after assembly (overrides metrics_textfile)")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *initCfg {
		if err := config.WriteTemplate(*output, *force); err != nil {
			return err
		}
		log.Info().Str("path", *output).Msg("wrote protoctl config template")
		return nil
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	logging.OverrideLevel(cfg.LogLevel)

	reg, err := registry.Assemble(ctx, registry.Options{
		Root:         os.DirFS(cfg.Root),
		BidiArtifact: cfg.BidiArtifactPath(),
	})
	if err != nil {
		return err
	}

	observability.RecordRegistry(reg)
	textfile := cfg.MetricsTextfile
	if *metricsOut != "" {
		textfile = *metricsOut
	}
	if textfile != "" {
		if err := observability.WriteTextfile(textfile); err != nil {
			return fmt.Errorf("write metrics textfile: %w", err)
		}
		log.Debug().Str("path", textfile).Msg("wrote metrics textfile")
	}

	if *dump {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "    ")
		return enc.Encode(reg)
	}

	for _, row := range summarize(reg) {
		log.Info().
			Str("protocol", string(row.Name)).
			Str("label", row.Label).
			Int("endpoints", row.Endpoints).
			Int("commands", row.Commands).
			Bool("mobile", row.Mobile).
			Bool("vendor", row.Vendor).
			Bool("described", row.Described).
			Msg("protocol")
	}
	log.Info().
		Bool("bidi_artifact", reg.BidiArtifactFound()).
		Str("path", cfg.BidiArtifactPath()).
		Msg("bidi table")
	return nil
}

type summaryRow struct {
	Name      protocols.Name
	Label     string
	Endpoints int
	Commands  int
	Mobile    bool
	Vendor    bool
	Described bool
}

func summarize(reg *registry.Registry) []summaryRow {
	rows := make([]summaryRow, 0, len(protocols.Names()))
	reg.Range(func(name protocols.Name, table protocols.Table) {
		label, _ := registry.DisplayName(name)
		_, described := reg.Description(name)
		rows = append(rows, summaryRow{
			Name:      name,
			Label:     label,
			Endpoints: table.Endpoints(),
			Commands:  table.Commands(),
			Mobile:    registry.IsMobile(name),
			Vendor:    registry.IsVendor(name),
			Described: described,
		})
	})
	return rows
}
