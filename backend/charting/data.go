package charting

import (
	"github.com/fernandosanchezjr/devsurvey/survey"
	"math"
)

const (
	SampleSeries     = "Selected Group"
	PopulationSeries = "All Respondents"
)

// Series holds the percentage bars of one chart, index-aligned with Labels.
type Series struct {
	Labels     []string
	Sample     []float64
	Population []float64
}

func RoundTenth(value float64) float64 {
	return math.Round(value*10) / 10
}

func roundAll(values []float64) []float64 {
	for pos, value := range values {
		values[pos] = RoundTenth(value)
	}
	return values
}

// NewSeries must only be called for a non-empty sample.
func NewSeries(data *survey.ChartData) *Series {
	return &Series{
		Labels:     append([]string{}, data.Labels...),
		Sample:     data.SamplePercentages(),
		Population: data.PopulationPercentages(),
	}
}

// Rounded returns a copy with every value rounded to one decimal.
func (s *Series) Rounded() *Series {
	return &Series{
		Labels:     append([]string{}, s.Labels...),
		Sample:     roundAll(append([]float64{}, s.Sample...)),
		Population: roundAll(append([]float64{}, s.Population...)),
	}
}

func (s *Series) Max() float64 {
	ret := 0.0
	for pos := range s.Labels {
		ret = math.Max(ret, math.Max(s.Sample[pos], s.Population[pos]))
	}
	return ret
}
