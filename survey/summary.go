package survey

import (
	"fmt"
	"github.com/dustin/go-humanize"
)

const (
	NoDataText = "Unfortunately, the survey results don't yet represent everyone; " +
		"there's no data for the current selection."
	InviteText = "Stack Overflow would love to have you participate! Opt-in to next year's " +
		"survey by enabling \"Research\" in your account settings."
	InviteURL = "https://stackoverflow.com/users/email/settings/"
)

func SummaryText(sampleSize, populationSize int) string {
	if sampleSize == 0 {
		return NoDataText + " " + InviteText
	}
	return fmt.Sprintf(
		"Here's what this group of %s people (out of %s total respondents) had to say.",
		humanize.Comma(int64(sampleSize)),
		humanize.Comma(int64(populationSize)),
	)
}
