package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.ReportNotifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyReport imprime el resumen en el modo configurado.
func (c *Console) NotifyReport(_ context.Context, r domain.Report) error {
	if r.Joined == 0 {
		fmt.Fprintf(c.out, "[%s] no trades loaded\n", shortID(r.RunID))
		return nil
	}

	if c.table {
		c.printFull(r)
	} else {
		c.printCompact(r)
	}
	return nil
}

// printCompact imprime lo esencial en 2-3 líneas.
func (c *Console) printCompact(r domain.Report) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %d trades → %d joined, %d with sentiment | total PnL %s",
		shortID(r.RunID), r.Trades, r.Joined, r.Matched, money(r.TotalPnL))
	for _, s := range r.Sides {
		fmt.Fprintf(&sb, " | %s n=%d mean %s win %s", s.Side, s.Trades, nullMoney(s.MeanPnL), pct(s.WinRate))
	}
	fmt.Fprintln(c.out, sb.String())

	if len(r.TopK) > 0 {
		names := make([]string, len(r.TopK))
		for i, in := range r.TopK {
			names[i] = fmt.Sprintf("%s(%d)", in.Instrument, in.Trades)
		}
		fmt.Fprintf(c.out, "  top: %s\n", strings.Join(names, " "))
	}
	if r.Sentiment.Correlation.Valid {
		fmt.Fprintf(c.out, "  sentiment corr %.3f (%s)\n", r.Sentiment.Correlation.Value, r.Sentiment.Smoothing)
	}
}

// printFull imprime tablas por lado, hora, instrumento y cohortes.
func (c *Console) printFull(r domain.Report) {
	fmt.Fprintf(c.out, "\n=== PnL report %s (%s) ===\n", r.RunID, r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(c.out, "trades %d | sentiment days %d | joined %d | matched %d | total PnL %s\n\n",
		r.Trades, r.Sentiments, r.Joined, r.Matched, money(r.TotalPnL))

	side := tablewriter.NewWriter(c.out)
	side.Header("Side", "Trades", "With PnL", "Wins", "Losses", "Mean PnL", "Win rate", "Median", "Q1", "Q3")
	for _, s := range r.Sides {
		side.Append(
			string(s.Side),
			fmt.Sprintf("%d", s.Trades),
			fmt.Sprintf("%d", s.PnLCount),
			fmt.Sprintf("%d", s.Wins),
			fmt.Sprintf("%d", s.Losses),
			nullMoney(s.MeanPnL),
			pct(s.WinRate),
			boxValue(s.Box, s.Box.Median),
			boxValue(s.Box, s.Box.Q1),
			boxValue(s.Box, s.Box.Q3),
		)
	}
	side.Render()

	hourly := tablewriter.NewWriter(c.out)
	hourly.Header("Hour", "Trades", "Mean PnL")
	for _, h := range r.Hourly {
		if h.Trades == 0 {
			continue
		}
		hourly.Append(fmt.Sprintf("%02d", h.Hour), fmt.Sprintf("%d", h.Trades), nullMoney(h.MeanPnL))
	}
	hourly.Render()

	top := tablewriter.NewWriter(c.out)
	top.Header("#", "Coin", "Trades", "Mean PnL", "Win rate")
	for i, in := range r.TopK {
		top.Append(
			fmt.Sprintf("%d", i+1),
			in.Instrument,
			fmt.Sprintf("%d", in.Trades),
			nullMoney(in.MeanPnL),
			pct(in.WinRate),
		)
	}
	top.Render()

	if r.Cohorts.N > 0 {
		cohorts := tablewriter.NewWriter(c.out)
		cohorts.Header("Cohort", "Account", "Trades", "Total PnL")
		for _, co := range []domain.Cohort{r.Cohorts.Top, r.Cohorts.Bottom} {
			for _, a := range co.Accounts {
				cohorts.Append(co.Name, compactName(a.Account, 14), fmt.Sprintf("%d", a.Trades), money(a.TotalPnL))
			}
		}
		cohorts.Render()
	}

	if r.Sentiment.Correlation.Valid {
		fmt.Fprintf(c.out, "PnL vs sentiment: %d samples, corr %.3f, trend %s\n",
			len(r.Sentiment.Samples), r.Sentiment.Correlation.Value, r.Sentiment.Smoothing)
	} else {
		fmt.Fprintf(c.out, "PnL vs sentiment: %d samples\n", len(r.Sentiment.Samples))
	}
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}

func nullMoney(v domain.NullFloat) string {
	if !v.Valid {
		return "-"
	}
	return money(v.Value)
}

func pct(v domain.NullFloat) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v.Value*100)
}

func boxValue(b domain.BoxStats, v float64) string {
	if b.N == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// compactName trunca direcciones largas (0xabc…def).
func compactName(s string, max int) string {
	r := []rune(s)
	if len(r) <= max || max < 5 {
		return s
	}
	keep := (max - 1) / 2
	return string(r[:keep]) + "…" + string(r[len(r)-keep:])
}
