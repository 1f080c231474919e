// Command processor loads sleep export files, normalizes them into
// per-person records, aggregates half-year windows, and writes the
// record and summary CSV reports.
//
// Exit codes: 0 on success, 1 on a fatal error (configuration or
// schema), 2 when the inputs contained no usable records.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"

	"sleepcli/internal/config"
	"sleepcli/internal/files"
	"sleepcli/internal/infrastructure"
	"sleepcli/internal/ingest"
	"sleepcli/internal/operations"
	"sleepcli/pkg/contracts"
)

const (
	exitOK        = 0
	exitFatal     = 1
	exitNoRecords = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	inDir := flag.String("in", "", "input directory for export files (overrides config)")
	outDir := flag.String("out", "", "output directory for CSV reports (overrides config)")
	asOf := flag.String("as-of", "", "reference date for future-date correction, YYYY-MM-DD (overrides config)")
	metricsAddr := flag.String("metrics-addr", "", "address for the Prometheus /metrics endpoint (enables metrics)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return exitFatal
	}
	applyFlags(cfg, *inDir, *outDir, *asOf, *metricsAddr)

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	otelCfg := infrastructure.DefaultOTelConfig()
	if !cfg.Metrics.Enabled {
		otelCfg.MetricExporter = "none"
	}
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		logger.Error("Failed to initialize observability", "error", err)
		return exitFatal
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(ctx); err != nil {
			logger.Warn("Observability shutdown failed", "error", err)
		}
	}()

	if cfg.Metrics.Enabled && providers.PrometheusHTTP != nil {
		go serveMetrics(cfg.Metrics.Addr, providers.PrometheusHTTP, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	wd, err := os.Getwd()
	if err != nil {
		logger.Error("Failed to resolve working directory", "error", err)
		return exitFatal
	}
	paths := config.NewPaths(wd, cfg)
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to prepare directories", "error", err)
		return exitFatal
	}

	asOfTime, err := cfg.Input.AsOfTime()
	if err != nil {
		logger.Error("Invalid as-of date", "error", err)
		return exitFatal
	}

	metrics, err := ingest.NewMetrics(providers.Meter)
	if err != nil {
		logger.Error("Failed to create ingest metrics", "error", err)
		return exitFatal
	}

	loader := ingest.NewLoader(logger, metrics, ingest.Config{AsOf: asOfTime})

	manager := operations.NewManager(logger, providers.Tracer)
	manager.Register(&operations.LoadStage{
		Loader:    loader,
		Discovery: files.NewDiscovery(paths.InputDir),
		Dir:       ".",
		Pattern:   cfg.Input.Pattern,
		Logger:    logger,
	})
	manager.Register(&operations.SummarizeStage{})
	manager.Register(&operations.ExportStage{
		OutDir:      paths.OutputDir,
		RecordsFile: cfg.Output.RecordsFile,
		SummaryFile: cfg.Output.SummaryFile,
	})

	state := operations.NewState()
	result, err := manager.Run(ctx, state)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Run canceled")
		} else {
			logger.Error("Run failed", "error", err)
		}
		color.Red("Processing failed: %v", err)
		return exitFatal
	}

	if len(state.Records()) == 0 {
		logger.Warn("No usable records found",
			slog.Int("files", state.FilesLoaded()))
		color.Yellow("no usable records found")
		return exitNoRecords
	}

	printSummary(state, result, paths.OutputDir)
	return exitOK
}

// applyFlags overlays command line flags onto the loaded configuration.
// Flags beat both the environment and the config file.
func applyFlags(cfg *config.Config, inDir, outDir, asOf, metricsAddr string) {
	if inDir != "" {
		cfg.Input.Dir = inDir
	}
	if outDir != "" {
		cfg.Output.Dir = outDir
	}
	if asOf != "" {
		cfg.Input.AsOf = asOf
	}
	if metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Addr = metricsAddr
	}
}

func serveMetrics(addr string, handler http.Handler, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	logger.Info("Serving metrics", slog.String("addr", addr))
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Metrics server stopped", "error", err)
	}
}

func printSummary(state *operations.State, result *operations.Result, outDir string) {
	bold := color.New(color.Bold)

	bold.Println("SleepPulse processing complete")
	fmt.Printf("  operation:  %s\n", result.OperationID)
	fmt.Printf("  duration:   %s\n", result.Duration.Round(time.Millisecond))
	fmt.Printf("  files:      %d\n", state.FilesLoaded())
	fmt.Printf("  records:    %d\n", len(state.Records()))
	fmt.Printf("  people:     %d\n", len(state.Names()))
	color.Green("  reports written to %s", outDir)
}
