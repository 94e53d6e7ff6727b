// Package report orquesta una corrida completa: carga, normalización, join,
// agregación y salida (consola, tablas exportadas y charts).
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/analytics"
	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/alejandrodnm/pnlstats/internal/ports"
	"github.com/alejandrodnm/pnlstats/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ErrDuplicateSentimentDates is returned in strict mode when a calendar date
// appears more than once in the sentiment index.
var ErrDuplicateSentimentDates = errors.New("duplicate sentiment dates")

// Config contiene la configuración del pipeline.
type Config struct {
	Location             *time.Location // zone of the trade timestamps (IST when nil)
	StrictSentimentDates bool
	Analysis             analytics.Config
	RenderWorkers        int // 0 = NumCPU
}

// Pipeline wires the input sources to the aggregates and the output sinks.
type Pipeline struct {
	cfg       Config
	trades    ports.TradeSource
	sentiment ports.SentimentSource
	renderer  ports.Renderer
	notifier  ports.ReportNotifier // optional
	exporter  ports.TableExporter  // optional
	analyzer  *analytics.Analyzer
	tracer    *telemetry.Tracer
}

// New crea un Pipeline con todas las dependencias inyectadas.
// notifier, exporter y tracer pueden ser nil.
func New(
	cfg Config,
	trades ports.TradeSource,
	sentiment ports.SentimentSource,
	renderer ports.Renderer,
	notifier ports.ReportNotifier,
	exporter ports.TableExporter,
	tracer *telemetry.Tracer,
) *Pipeline {
	if tracer == nil {
		tracer = telemetry.Noop()
	}
	return &Pipeline{
		cfg:       cfg,
		trades:    trades,
		sentiment: sentiment,
		renderer:  renderer,
		notifier:  notifier,
		exporter:  exporter,
		analyzer:  analytics.NewAnalyzer(cfg.Analysis),
		tracer:    tracer,
	}
}

// Run ejecuta una corrida completa y devuelve el reporte. Un error de parseo
// aborta antes de escribir cualquier salida.
func (p *Pipeline) Run(ctx context.Context) (report domain.Report, err error) {
	runID := uuid.NewString()
	log := slog.With("run_id", runID)
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "report.Run", attribute.String("run_id", runID))
	defer func() { telemetry.End(span, err) }()

	log.Info("report run starting")

	trades, rows, nSentiment, err := p.prepare(ctx, log)
	if err != nil {
		return domain.Report{}, err
	}

	_, aspan := p.tracer.Start(ctx, "report.analyze", attribute.Int("rows", len(rows)))
	report = p.analyzer.Analyze(trades, rows)
	report.RunID = runID
	report.Trades = len(trades)
	report.Sentiments = nSentiment
	telemetry.End(aspan, nil)
	log.Info("analysis complete",
		"joined", report.Joined,
		"matched", report.Matched,
		"accounts_per_cohort", report.Cohorts.N,
		"total_pnl", report.TotalPnL,
	)

	if p.notifier != nil {
		if nerr := p.notifier.NotifyReport(ctx, report); nerr != nil {
			log.Warn("notifier error", "err", nerr)
		}
	}

	if p.exporter != nil {
		ectx, espan := p.tracer.Start(ctx, "report.export")
		err = p.exporter.Export(ectx, report)
		telemetry.End(espan, err)
		if err != nil {
			return report, fmt.Errorf("report.Run: export: %w", err)
		}
	}

	charts := Charts(report)
	rctx, rspan := p.tracer.Start(ctx, "report.render", attribute.Int("charts", len(charts)))
	err = renderConcurrent(rctx, p.renderer, charts, p.cfg.RenderWorkers, log)
	telemetry.End(rspan, err)
	if err != nil {
		return report, fmt.Errorf("report.Run: render: %w", err)
	}

	log.Info("report run complete",
		"charts", len(charts),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return report, nil
}

// prepare hace load → normalize → duplicate check → join.
func (p *Pipeline) prepare(ctx context.Context, log *slog.Logger) (trades []domain.Trade, rows []domain.JoinedTrade, nSentiment int, err error) {
	ctx, span := p.tracer.Start(ctx, "report.load")
	defer func() { telemetry.End(span, err) }()

	rawTrades, err := p.trades.LoadTrades(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("report.Run: load trades: %w", err)
	}
	rawSentiment, err := p.sentiment.LoadSentiment(ctx)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("report.Run: load sentiment: %w", err)
	}
	log.Debug("inputs loaded", "trades", len(rawTrades), "sentiment", len(rawSentiment))

	trades, err = domain.NormalizeTrades(rawTrades, p.cfg.Location)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("report.Run: trades: %w", err)
	}
	sentiment, err := domain.NormalizeSentiment(rawSentiment)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("report.Run: sentiment: %w", err)
	}

	if dups := domain.DuplicateDates(sentiment); len(dups) > 0 {
		if p.cfg.StrictSentimentDates {
			return nil, nil, 0, fmt.Errorf("report.Run: %w: %d dates, first %s", ErrDuplicateSentimentDates, len(dups), dups[0])
		}
		log.Warn("duplicate sentiment dates, trades on those days repeat in the sentiment trend",
			"dates", len(dups),
			"first", dups[0].String(),
		)
	}

	rows = domain.Join(trades, sentiment)
	span.SetAttributes(
		attribute.Int("trades", len(trades)),
		attribute.Int("sentiment", len(sentiment)),
		attribute.Int("joined", len(rows)),
	)
	return trades, rows, len(sentiment), nil
}
