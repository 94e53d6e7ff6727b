package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alejandrodnm/pnlstats/config"
	"github.com/alejandrodnm/pnlstats/internal/adapters/chart"
	"github.com/alejandrodnm/pnlstats/internal/adapters/csvfile"
	"github.com/alejandrodnm/pnlstats/internal/adapters/export"
	"github.com/alejandrodnm/pnlstats/internal/adapters/notify"
	"github.com/alejandrodnm/pnlstats/internal/adapters/storage"
	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/application/report"
	"github.com/alejandrodnm/pnlstats/internal/ports"
	"github.com/alejandrodnm/pnlstats/internal/telemetry"
)

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	trades := flag.String("trades", "", "trade log CSV (overrides config)")
	sentiment := flag.String("sentiment", "", "Fear/Greed index CSV (overrides config)")
	outDir := flag.String("out", "", "output directory for charts and tables (overrides config)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full summary tables (default: compact)")
	exportFormat := flag.String("export", "", "export summary tables: csv|json|parquet")
	smoothing := flag.String("smoothing", "", "sentiment trend: lowess|linear|none")
	importOnly := flag.Bool("import", false, "load the CSV inputs into SQLite (storage.dsn) and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	o := overrides{
		trades:    *trades,
		sentiment: *sentiment,
		outDir:    *outDir,
		verbose:   *verbose,
		logFormat: *logFormat,
		table:     *table,
		export:    *exportFormat,
		smoothing: *smoothing,
	}
	if err := o.apply(cfg); err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *importOnly {
		if err := runImport(ctx, cfg); err != nil {
			slog.Error("import failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg); err != nil {
		slog.Error("pnlstats exited with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	slog.Info("pnlstats starting",
		"source", cfg.Input.Source,
		"out", cfg.Output.Dir,
		"export", cfg.Output.ExportFormat,
		"smoothing", cfg.Analysis.Smoothing,
	)

	tracer, err := telemetry.New(cfg.Log.Trace, os.Stderr, version)
	if err != nil {
		return err
	}
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		if err := tracer.Shutdown(sctx); err != nil {
			slog.Warn("trace shutdown", "err", err)
		}
	}()

	var (
		tradeSrc     ports.TradeSource
		sentimentSrc ports.SentimentSource
	)
	switch cfg.Input.Source {
	case config.SourceSQLite:
		store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			return err
		}
		defer store.Close()
		tradeSrc, sentimentSrc = store, store
	default:
		src := csvfile.NewSource(cfg.Input.TradesPath, cfg.Input.SentimentPath)
		tradeSrc, sentimentSrc = src, src
	}

	renderer, err := chart.NewRenderer(cfg.Output.Dir)
	if err != nil {
		return err
	}

	var exporter ports.TableExporter
	if cfg.Output.ExportFormat != "" {
		format, err := export.ParseFormat(cfg.Output.ExportFormat)
		if err != nil {
			return err
		}
		e, err := export.NewExporter(format, cfg.Output.Dir)
		if err != nil {
			return err
		}
		exporter = e
	}

	smoother, err := analytics.NewSmoother(cfg.Analysis.Smoothing, cfg.Analysis.LowessFrac, cfg.Analysis.LowessIterations)
	if err != nil {
		return err
	}
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	p := report.New(
		report.Config{
			Location:             loc,
			StrictSentimentDates: cfg.Analysis.StrictSentimentDates,
			RenderWorkers:        cfg.Output.RenderWorkers,
			Analysis: analytics.Config{
				CohortSize: cfg.Analysis.CohortSize,
				TopK:       cfg.Analysis.TopK,
				Whisker:    cfg.Analysis.Whisker,
				Smoother:   smoother,
			},
		},
		tradeSrc,
		sentimentSrc,
		renderer,
		notify.NewConsole(cfg.Output.Table),
		exporter,
		tracer,
	)

	_, err = p.Run(ctx)
	return err
}

// loadConfig lee el YAML; si el path por defecto no existe usa los defaults.
func loadConfig(path string) (*config.Config, error) {
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	if _, err := os.Stat(path); !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(path)
}

// overrides son los flags que pisan valores del config.
type overrides struct {
	trades, sentiment, outDir string
	verbose                   bool
	logFormat                 string
	table                     bool
	export, smoothing         string
}

// apply copia los flags no vacíos a cfg, normaliza y valida.
func (o overrides) apply(cfg *config.Config) error {
	if o.trades != "" {
		cfg.Input.TradesPath = o.trades
	}
	if o.sentiment != "" {
		cfg.Input.SentimentPath = o.sentiment
	}
	if o.outDir != "" {
		cfg.Output.Dir = o.outDir
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if o.table {
		cfg.Output.Table = true
	}
	if o.export != "" {
		cfg.Output.ExportFormat = o.export
	}
	if o.smoothing != "" {
		cfg.Analysis.Smoothing = o.smoothing
	}
	cfg.Normalize()
	return cfg.Validate()
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
