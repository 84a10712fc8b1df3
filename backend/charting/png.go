package charting

import (
	"errors"
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/survey"
	"github.com/wcharczuk/go-chart/v2"
	"io"
	"math"
)

var ErrEmptySample = errors.New("no respondents match the selection")

func percentFormatter(v interface{}) string {
	if value, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f%%", value)
	}
	return ""
}

// BuildPNGChart interleaves the sample and population bars of every label.
// go-chart bar charts are vertical only, so pairs run along the x axis.
func BuildPNGChart(title string, data *survey.ChartData, palette Palette, width, height int) (*chart.BarChart, error) {
	if data.Empty() {
		return nil, ErrEmptySample
	}
	series := NewSeries(data).Rounded()
	sampleStyle := chart.Style{
		FillColor:   palette.Drawing(0.5),
		StrokeColor: palette.Drawing(1),
		StrokeWidth: 1,
	}
	populationStyle := chart.Style{
		FillColor:   palette.Drawing(0.15),
		StrokeColor: palette.Drawing(0.5),
		StrokeWidth: 1,
	}
	bars := make([]chart.Value, 0, 2*len(series.Labels))
	for pos, label := range series.Labels {
		bars = append(bars,
			chart.Value{Label: label, Value: series.Sample[pos], Style: sampleStyle},
			chart.Value{Label: "", Value: series.Population[pos], Style: populationStyle},
		)
	}
	top := math.Max(10, math.Ceil(series.Max()/10)*10)
	barWidth := width / (2*len(series.Labels) + 1) / 2
	if barWidth < 4 {
		barWidth = 4
	}
	return &chart.BarChart{
		Title:    title,
		Width:    width,
		Height:   height,
		BarWidth: barWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: top},
			ValueFormatter: percentFormatter,
		},
		Bars: bars,
	}, nil
}

func RenderPNG(w io.Writer, title string, data *survey.ChartData, palette Palette, width, height int) error {
	barChart, err := BuildPNGChart(title, data, palette, width, height)
	if err != nil {
		return err
	}
	return barChart.Render(chart.PNG, w)
}
