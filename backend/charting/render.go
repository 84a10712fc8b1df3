package charting

import (
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/survey"
	"github.com/go-echarts/go-echarts/charts"
	"io"
)

const (
	minChartHeight = 320
	barRowHeight   = 48
	// ValueAxisFormatter labels the percentage axis ticks.
	ValueAxisFormatter = "{value}%"
	TooltipFormatter   = "{a}: {c}%"
)

// XAxisOpts has no axis label options, so the tick formatter is applied to
// the rendered instances once the page script has run.
var valueAxisJS = "setTimeout(function(){" +
	"document.querySelectorAll('[_echarts_instance_]').forEach(function(el){" +
	"var instance = echarts.getInstanceByDom(el);" +
	"if (instance) { instance.setOption({xAxis: [{axisLabel: {formatter: '" +
	ValueAxisFormatter + "'}}]}); }" +
	"});}, 0);"

func chartHeight(labels int) string {
	height := labels*barRowHeight + 160
	if height < minChartHeight {
		height = minChartHeight
	}
	return fmt.Sprintf("%dpx", height)
}

// BuildChart draws the sample and population percentages as grouped
// horizontal bars. Tooltip values are rounded to one decimal.
func BuildChart(title string, data *survey.ChartData, palette Palette) *charts.Bar {
	series := NewSeries(data).Rounded()
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.InitOpts{
			PageTitle: title,
			Width:     "95vw",
			Height:    chartHeight(len(series.Labels)),
		},
		charts.TitleOpts{
			Title:    title,
			Subtitle: survey.SummaryText(data.SampleSize, data.PopulationSize),
		},
		charts.ToolboxOpts{Show: true},
		charts.TooltipOpts{Show: true, Formatter: TooltipFormatter},
		charts.XAxisOpts{Type: "value", Min: 0},
		charts.YAxisOpts{Type: "category"},
	)
	bar.AddXAxis(series.Labels).
		AddYAxis(SampleSeries, series.Sample,
			charts.ItemStyleOpts{Color: palette.Pale(), BorderColor: palette.Color()}).
		AddYAxis(PopulationSeries, series.Population,
			charts.ItemStyleOpts{Color: palette.VeryPale(), BorderColor: palette.Pale()}).
		XYReversal()
	bar.AddJSFuncs(valueAxisJS)
	return bar
}

// Render writes the chart page, or only the no-data page when the sample is
// empty. The chart is created and dropped within the call.
func Render(w io.Writer, title string, data *survey.ChartData, palette Palette) error {
	if data.Empty() {
		return RenderEmpty(w, title)
	}
	return BuildChart(title, data, palette).Render(w)
}
