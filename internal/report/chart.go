package report

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// WeekLabelLayout is the short month and day form used on the chart x axis.
const WeekLabelLayout = "Jan 02"

var skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}

type BarChart struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	Color  color.Color
}

func WeeklyDeficitChart() BarChart {
	return BarChart{
		Title:  "Weekly Calorie Deficit",
		XLabel: "Week Starting",
		YLabel: "Deficit (kcal)",
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
		Color:  skyBlue,
	}
}

// Render draws one bar per category. The image format follows the path extension.
func (c BarChart) Render(path string, categories []string, values []float64) error {
	if len(categories) == 0 {
		return errors.New("bar chart: no values")
	}
	if len(categories) != len(values) {
		return fmt.Errorf("bar chart: %d categories for %d values", len(categories), len(values))
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), c.barWidth(len(values)))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = c.Color
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(categories...)

	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := p.Save(c.Width, c.Height, path); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}

func (c BarChart) barWidth(bars int) vg.Length {
	width := c.Width * 0.8 / vg.Length(bars+1)
	if width > vg.Points(40) {
		return vg.Points(40)
	}
	return width
}

// RenderBarChart renders the weekly deficit chart to path.
func RenderBarChart(path string, categories []string, values []float64) error {
	return WeeklyDeficitChart().Render(path, categories, values)
}

// WeekLabels formats the week starts for the chart x axis.
func WeekLabels(weekStarts []time.Time) []string {
	labels := make([]string, 0, len(weekStarts))
	for _, ws := range weekStarts {
		labels = append(labels, ws.Format(WeekLabelLayout))
	}
	return labels
}
