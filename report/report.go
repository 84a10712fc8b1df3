package report

import (
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/fernandosanchezjr/devsurvey/survey"
	"io"
	"text/tabwriter"
)

const (
	sampleHeader     = "Selected Group"
	populationHeader = "All Respondents"
)

func cell(count int, percentage float64) string {
	return fmt.Sprintf("%.1f%% (%s)", percentage, humanize.Comma(int64(count)))
}

// Write prints the summary and, for a non-empty sample, one aligned row per
// label with both groups as percentages.
func Write(w io.Writer, title string, data *survey.ChartData) error {
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, survey.SummaryText(data.SampleSize, data.PopulationSize)); err != nil {
		return err
	}
	if data.Empty() {
		_, err := fmt.Fprintf(w, "%s\n", survey.InviteURL)
		return err
	}
	samplePercentages := data.SamplePercentages()
	populationPercentages := data.PopulationPercentages()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "\nAnswer\t%s\t%s\n", sampleHeader, populationHeader)
	for pos, label := range data.Labels {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			label,
			cell(data.SampleCounts[pos], samplePercentages[pos]),
			cell(data.PopulationCounts[pos], populationPercentages[pos]),
		)
	}
	return tw.Flush()
}
