// Package chart dibuja domain.Chart con gonum/plot.
package chart

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/pnlstats/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	defaultWidth  = 8 // inches
	defaultHeight = 4
)

// Renderer implementa ports.Renderer. Escribe un archivo por chart en dir; el
// formato sale de la extensión (png, svg, pdf, jpg).
type Renderer struct {
	dir string
}

// NewRenderer creates a Renderer writing into dir, creating it if needed.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chart.NewRenderer: mkdir %q: %w", dir, err)
	}
	return &Renderer{dir: dir}, nil
}

// Dir returns the output directory.
func (r *Renderer) Dir() string { return r.dir }

// Render draws c and saves it as r.dir/c.File.
func (r *Renderer) Render(ctx context.Context, c domain.Chart) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.File == "" {
		return fmt.Errorf("chart.Render: %q: empty file name", c.Title)
	}

	p, err := build(c)
	if err != nil {
		return fmt.Errorf("chart.Render %s: %w", c.File, err)
	}

	w, h := c.Width, c.Height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}

	path := filepath.Join(r.dir, c.File)
	if err := p.Save(vg.Length(w)*vg.Inch, vg.Length(h)*vg.Inch, path); err != nil {
		return fmt.Errorf("chart.Render %s: save: %w", c.File, err)
	}
	return nil
}

// build translates the chart description into a gonum plot.
func build(c domain.Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true

	if c.Grid {
		g := plotter.NewGrid()
		g.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
		g.Vertical.Dashes = g.Horizontal.Dashes
		if c.Kind == domain.ChartBox || c.Kind == domain.ChartBar || c.Kind == domain.ChartGroupedBar {
			g.Vertical.Color = nil
		}
		p.Add(g)
	}

	var err error
	switch c.Kind {
	case domain.ChartBox:
		err = addBoxes(p, c)
	case domain.ChartBar, domain.ChartGroupedBar:
		err = addBars(p, c)
	case domain.ChartLine, domain.ChartScatter:
		err = addXY(p, c)
	case domain.ChartTimeLine:
		loc := c.Location
		if loc == nil {
			loc = time.UTC
		}
		p.X.Tick.Marker = plot.TimeTicks{
			Format: "2006-01-02",
			Time:   plot.UnixTimeIn(loc),
		}
		err = addXY(p, c)
	default:
		err = fmt.Errorf("unknown chart kind %q", c.Kind)
	}
	if err != nil {
		return nil, err
	}

	if c.RefLine != nil {
		y := *c.RefLine
		ref := plotter.NewFunction(func(float64) float64 { return y })
		ref.Color = color.Black
		ref.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(ref)
	}
	return p, nil
}

func addBoxes(p *plot.Plot, c domain.Chart) error {
	if len(c.Boxes) != len(c.Categories) {
		return fmt.Errorf("box chart: %d boxes for %d categories", len(c.Boxes), len(c.Categories))
	}
	colors := make([]color.Color, len(c.Boxes))
	for i := range c.Boxes {
		colors[i] = color.Gray{Y: 128}
		if i < len(c.Series) {
			colors[i] = parseColor(c.Series[i].Color, c.Series[i].Alpha)
		}
	}
	p.Add(&boxes{stats: c.Boxes, colors: colors, width: vg.Points(60)})
	nominalX(p, c.Categories)
	return nil
}

func addBars(p *plot.Plot, c domain.Chart) error {
	n := len(c.Series)
	if n == 0 || len(c.Categories) == 0 {
		// sin datos: solo ejes, NewBarChart no acepta series vacías
		nominalX(p, c.Categories)
		return nil
	}
	width := vg.Points(40)
	if n > 1 {
		width = vg.Points(60 / float64(n))
	}
	for i, s := range c.Series {
		if len(s.Values) != len(c.Categories) {
			return fmt.Errorf("series %q: %d values for %d categories", s.Label, len(s.Values), len(c.Categories))
		}
		bars, err := plotter.NewBarChart(plotter.Values(s.Values), width)
		if err != nil {
			return fmt.Errorf("series %q: %w", s.Label, err)
		}
		bars.Color = parseColor(s.Color, s.Alpha)
		bars.LineStyle.Width = vg.Length(0)
		bars.Offset = vg.Length(float64(i)-float64(n-1)/2) * width
		p.Add(bars)
		if s.Label != "" {
			p.Legend.Add(s.Label, bars)
		}
	}
	nominalX(p, c.Categories)
	return nil
}

// nominalX is p.NominalX without the panic on an empty name list.
func nominalX(p *plot.Plot, names []string) {
	if len(names) == 0 {
		p.HideX()
		return
	}
	p.NominalX(names...)
}

func addXY(p *plot.Plot, c domain.Chart) error {
	for _, s := range c.Series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for i, pt := range s.Points {
			xys[i].X = pt.X
			xys[i].Y = pt.Y
		}
		clr := parseColor(s.Color, s.Alpha)

		var thumb plot.Thumbnailer
		switch s.Style {
		case domain.StyleScatter:
			sc, err := plotter.NewScatter(xys)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Label, err)
			}
			sc.GlyphStyle.Color = clr
			sc.GlyphStyle.Radius = vg.Points(1.5)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			thumb = sc
		default:
			l, err := plotter.NewLine(xys)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Label, err)
			}
			l.LineStyle.Color = clr
			l.LineStyle.Width = vg.Points(1.5)
			p.Add(l)
			thumb = l
		}
		if s.Label != "" {
			p.Legend.Add(s.Label, thumb)
		}
	}
	return nil
}

// parseColor lee "#rrggbb". alpha en (0,1] aplica transparencia; 0 es opaco.
func parseColor(hex string, alpha float64) color.Color {
	c := color.NRGBA{A: 255}
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) == 6 {
		if v, err := strconv.ParseUint(h, 16, 32); err == nil {
			c.R = uint8(v >> 16)
			c.G = uint8(v >> 8)
			c.B = uint8(v)
		}
	}
	if alpha > 0 && alpha < 1 {
		c.A = uint8(alpha * 255)
	}
	return c
}
