package dataset

import (
	"github.com/fernandosanchezjr/devsurvey/config"
	"net/url"
	"strings"
)

// Selection is the state of the selectors: a topic and the chosen value of
// each demographic. Missing or empty values mean "no filter".
type Selection struct {
	Topic  string
	Values map[string]string
}

func NewSelection(topic string) *Selection {
	return &Selection{Topic: topic, Values: map[string]string{}}
}

func (s *Selection) Set(demographic, value string) *Selection {
	s.Values[demographic] = value
	return s
}

// Filtered reports whether any configured demographic has a value.
func (s *Selection) Filtered(demographics []config.Demographic) bool {
	return BuildClause(demographics, s.Values) != ""
}

// EncodeComponent escapes a value the way encodeURIComponent does, so
// spaces become %20 instead of +.
func EncodeComponent(value string) string {
	return strings.Replace(url.QueryEscape(value), "+", "%20", -1)
}

// BuildClause appends an exact-match filter for every selected demographic,
// in configured order.
func BuildClause(demographics []config.Demographic, values map[string]string) string {
	var sb strings.Builder
	for _, demographic := range demographics {
		value := values[demographic.Name]
		if value == "" {
			continue
		}
		sb.WriteString("&")
		sb.WriteString(demographic.Name)
		sb.WriteString("__exact=")
		sb.WriteString(EncodeComponent(value))
	}
	return sb.String()
}
