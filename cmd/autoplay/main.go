// SPDX-License-Identifier: Unlicense OR MIT

// Command autoplay plans a touch stream for a chart file and either writes
// it to a JSON file, streams it to a device-injection socket, or both.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kaedeflow/touchplan/chart/chartfile"
	"github.com/kaedeflow/touchplan/config"
	"github.com/kaedeflow/touchplan/diag"
	"github.com/kaedeflow/touchplan/inject"
	"github.com/kaedeflow/touchplan/plan"
)

func main() {
	chartPath := flag.String("chart", "", "path to a chart JSON file (required)")
	configPath := flag.String("config", "", "path to a YAML engine config file")
	outPath := flag.String("out", "", "write the planned touch stream as JSON to this path")
	outDiagPath := flag.String("out-diag", "", "write collected diagnostics as YAML to this path")
	socketAddr := flag.String("socket", "", "stream the planned touch stream to this tcp device-injection address")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *chartPath == "" {
		fmt.Fprintln(os.Stderr, "autoplay: -chart is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(logger, *chartPath, *configPath, *outPath, *outDiagPath, *socketAddr); err != nil {
		logger.Error("autoplay failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, chartPath, configPath, outPath, outDiagPath, socketAddr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	c, err := chartfile.Load(chartPath)
	if err != nil {
		return fmt.Errorf("loading chart: %w", err)
	}

	collector := &diag.Collector{}
	sink := diag.Sink(diag.Slog{Logger: logger})
	if outDiagPath != "" {
		sink = diag.Multi{diag.Slog{Logger: logger}, collector}
	}

	engine := plan.New(cfg.PlanConfig(), sink)
	result, err := engine.Plan(c)
	if err != nil {
		return fmt.Errorf("planning touches: %w", err)
	}
	logger.Info("planned touch stream", slog.Int("milliseconds", len(result.Events)))

	if socketAddr != "" {
		sender, err := inject.Dial("tcp", socketAddr, cfg.PlanConfig().Bounds)
		if err != nil {
			return fmt.Errorf("connecting to injection socket: %w", err)
		}
		defer sender.Close()
		if err := sender.SendAll(result.Events); err != nil {
			return fmt.Errorf("streaming touches: %w", err)
		}
		logger.Info("streamed touch stream", slog.String("addr", socketAddr))
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result.Events); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		logger.Info("wrote touch stream", slog.String("path", outPath))
	}

	if outDiagPath != "" {
		b, err := yaml.Marshal(collector.Events)
		if err != nil {
			return fmt.Errorf("encoding diagnostics: %w", err)
		}
		if err := os.WriteFile(outDiagPath, b, 0o644); err != nil {
			return fmt.Errorf("writing diagnostics: %w", err)
		}
		logger.Info("wrote diagnostics report", slog.String("path", outDiagPath), slog.Int("events", len(collector.Events)))
	}

	return nil
}
