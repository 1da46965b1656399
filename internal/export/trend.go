// Package export writes trend series to CSV files and PNG charts.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/godilite/shotstats/internal/service"
)

// ErrNoPoints is returned when a chart is requested for an empty series.
var ErrNoPoints = errors.New("trend has no data points")

var csvHeader = []string{"period", "key", "date", "value", "sessions"}

// WriteTrendCSV writes one row per trend point.
func WriteTrendCSV(w io.Writer, series service.TrendSeries) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range series.Points {
		record := []string{
			p.Period,
			p.Key,
			p.Date.Format(time.DateOnly),
			strconv.FormatFloat(p.Value, 'f', 2, 64),
			strconv.Itoa(p.Count),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTrendPNG renders the series as a line chart over the bucket dates.
func WriteTrendPNG(w io.Writer, series service.TrendSeries) error {
	if len(series.Points) < 2 {
		// go-chart cannot draw a range from a single point.
		return ErrNoPoints
	}

	x := make([]time.Time, len(series.Points))
	y := make([]float64, len(series.Points))
	for i, p := range series.Points {
		x[i] = p.Date
		y[i] = p.Value
	}

	graph := chart.Chart{
		Title:  string(series.Metric) + " (" + string(series.Period) + ")",
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: string(series.Metric),
			ValueFormatter: func(v any) string {
				return chart.FloatValueFormatterWithFormat(v, "%.2f")
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    string(series.Metric),
				XValues: x,
				YValues: y,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(chart.PNG, w)
}

// ToFile creates path, including missing parent directories, and hands the
// file to write.
func ToFile(path string, series service.TrendSeries, write func(io.Writer, service.TrendSeries) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file, series); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
