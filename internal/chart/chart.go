// Package chart renders the PNG charts shared by the scraper and the
// finance tracker.
package chart

import (
	"fmt"
	"io"
	"os"

	gochart "github.com/wcharczuk/go-chart/v2"
)

type Item struct {
	Label string
	Value float64
}

// Bar writes a bar chart of the items to a PNG file.
func Bar(path, title string, items []Item) error {
	if len(items) == 0 {
		return fmt.Errorf("no data to chart")
	}

	bars := make([]gochart.Value, 0, len(items))
	for _, it := range items {
		bars = append(bars, gochart.Value{Label: it.Label, Value: it.Value})
	}

	graph := gochart.BarChart{
		Title:    title,
		Width:    1024,
		Height:   512,
		BarWidth: 48,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48},
		},
		Bars: bars,
	}
	return render(path, graph.Render)
}

// Pie writes a pie chart of the items to a PNG file. Items with a
// non-positive value are dropped since they cannot form a slice.
func Pie(path, title string, items []Item) error {
	values := make([]gochart.Value, 0, len(items))
	for _, it := range items {
		if it.Value > 0 {
			values = append(values, gochart.Value{Label: it.Label, Value: it.Value})
		}
	}
	if len(values) == 0 {
		return fmt.Errorf("no data to chart")
	}

	graph := gochart.PieChart{
		Title:  title,
		Width:  768,
		Height: 768,
		Values: values,
	}
	return render(path, graph.Render)
}

func render(path string, renderFn func(gochart.RendererProvider, io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	if err := renderFn(gochart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	return f.Close()
}
