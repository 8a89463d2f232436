package chart

import (
	"bytes"
	"fmt"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wordweave/wordweave/internal/style"
)

// Height is derived from width by a fixed per-type aspect ratio.
const (
	pieAspect  = 1.0
	barAspect  = 0.6
	lineAspect = 0.5
)

// Image is a rendered chart plus its physical size in the document.
type Image struct {
	PNG      []byte
	WidthCm  float64
	HeightCm float64
}

// Renderer rasterizes chart specs using the sheet's chart settings and
// color palette.
type Renderer struct {
	widthCm float64
	dpi     int
	palette []drawing.Color
}

func NewRenderer(sheet *style.Sheet) *Renderer {
	r := &Renderer{
		widthCm: sheet.Chart.WidthCm,
		dpi:     sheet.Chart.DPI,
	}
	if r.widthCm <= 0 {
		r.widthCm = 14
	}
	if r.dpi <= 0 {
		r.dpi = 96
	}
	for _, hex := range sheet.Chart.Palette {
		r.palette = append(r.palette, drawing.ColorFromHex(strings.TrimPrefix(hex, "#")))
	}
	if len(r.palette) == 0 {
		r.palette = []drawing.Color{drawing.ColorBlue, drawing.ColorRed, drawing.ColorGreen}
	}
	return r
}

func (r *Renderer) color(i int) drawing.Color {
	return r.palette[i%len(r.palette)]
}

func (r *Renderer) pixels(cm float64) int {
	return int(cm / 2.54 * float64(r.dpi))
}

// Render produces a PNG for one spec. Empty or unusable data yields a
// DataError so the caller can skip the chart and keep the document.
func (r *Renderer) Render(spec Spec) (*Image, error) {
	if len(spec.Data) == 0 {
		return nil, &DataError{Chart: spec.name(), Reason: "data is empty"}
	}

	heightCm := r.widthCm
	var buf bytes.Buffer
	var err error
	switch spec.Type {
	case KindPie:
		heightCm = r.widthCm * pieAspect
		err = r.renderPie(spec, &buf, heightCm)
	case KindBar:
		heightCm = r.widthCm * barAspect
		err = r.renderBar(spec, &buf, heightCm)
	case KindLine:
		heightCm = r.widthCm * lineAspect
		err = r.renderLine(spec, &buf, heightCm)
	default:
		return nil, &DataError{Chart: spec.name(), Reason: fmt.Sprintf("unknown chart type %q", spec.Type)}
	}
	if err != nil {
		return nil, err
	}
	return &Image{PNG: buf.Bytes(), WidthCm: r.widthCm, HeightCm: heightCm}, nil
}

func (r *Renderer) renderPie(spec Spec, buf *bytes.Buffer, heightCm float64) error {
	values := make([]gochart.Value, 0, len(spec.Data))
	for i, d := range spec.Data {
		if d.Value <= 0 {
			return &DataError{
				Chart:  spec.name(),
				Reason: fmt.Sprintf("pie slice %q has non-positive value %v", d.Label, d.Value),
			}
		}
		values = append(values, gochart.Value{
			Value: d.Value,
			Label: d.Label,
			Style: gochart.Style{FillColor: r.color(i)},
		})
	}

	pie := gochart.PieChart{
		Title:  spec.Title,
		Width:  r.pixels(r.widthCm),
		Height: r.pixels(heightCm),
		Values: values,
	}
	if err := pie.Render(gochart.PNG, buf); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

func (r *Renderer) renderBar(spec Spec, buf *bytes.Buffer, heightCm float64) error {
	bars := make([]gochart.Value, 0, len(spec.Data))
	var max float64
	for i, d := range spec.Data {
		if d.Value > max {
			max = d.Value
		}
		bars = append(bars, gochart.Value{
			Value: d.Value,
			Label: d.Label,
			Style: gochart.Style{FillColor: r.color(i)},
		})
	}
	if max <= 0 {
		max = 1
	}

	bar := gochart.BarChart{
		Title:  spec.Title,
		Width:  r.pixels(r.widthCm),
		Height: r.pixels(heightCm),
		Bars:   bars,
		YAxis: gochart.YAxis{
			// Headroom above the tallest bar keeps value labels inside
			// the canvas.
			Range: &gochart.ContinuousRange{Min: 0, Max: max * 1.1},
		},
	}
	if err := bar.Render(gochart.PNG, buf); err != nil {
		return fmt.Errorf("render bar chart: %w", err)
	}
	return nil
}

func (r *Renderer) renderLine(spec Spec, buf *bytes.Buffer, heightCm float64) error {
	xs := make([]float64, len(spec.Data))
	ys := make([]float64, len(spec.Data))
	ticks := make([]gochart.Tick, len(spec.Data))
	for i, d := range spec.Data {
		xs[i] = float64(i)
		ys[i] = d.Value
		ticks[i] = gochart.Tick{Value: float64(i), Label: d.Label}
	}

	line := gochart.Chart{
		Title:  spec.Title,
		Width:  r.pixels(r.widthCm),
		Height: r.pixels(heightCm),
		XAxis: gochart.XAxis{
			// The x-axis is categorical. Labels keep their given order
			// and are never re-sorted.
			Ticks: ticks,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: r.color(0),
					StrokeWidth: 2.5,
					DotColor:    r.color(0),
					DotWidth:    3,
				},
			},
		},
	}
	if err := line.Render(gochart.PNG, buf); err != nil {
		return fmt.Errorf("render line chart: %w", err)
	}
	return nil
}
