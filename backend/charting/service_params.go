package charting

import (
	url2 "github.com/fernandosanchezjr/devsurvey/backend/url"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"net/url"
)

const (
	DefaultPNGWidth  = 1024
	DefaultPNGHeight = 768
	MaxPNGSize       = 4096
)

type ServiceParams struct {
	Topic  string
	Values map[string]string
	Sorted bool
	Width  int
	Height int
}

func (sp *ServiceParams) Selection() *dataset.Selection {
	selection := dataset.NewSelection(sp.Topic)
	for name, value := range sp.Values {
		selection.Set(name, value)
	}
	return selection
}

func clampSize(size, fallback int) int {
	if size <= 0 {
		return fallback
	}
	if size > MaxPNGSize {
		return MaxPNGSize
	}
	return size
}

// ParseServiceParams reads the topic, one value per configured demographic
// and the rendering options from a query string.
func ParseServiceParams(values url.Values, demographics []config.Demographic) (params *ServiceParams, err error) {
	params = &ServiceParams{
		Values: map[string]string{},
		Sorted: false,
		Width:  DefaultPNGWidth,
		Height: DefaultPNGHeight,
	}
	url2.ParseString("topic", values, &params.Topic)
	for _, demographic := range demographics {
		var value string
		url2.ParseString(demographic.Name, values, &value)
		if value != "" {
			params.Values[demographic.Name] = value
		}
	}
	if err = url2.ParseBool("sort", values, &params.Sorted); err != nil {
		return
	}
	if err = url2.ParseInt("width", values, &params.Width); err != nil {
		return
	}
	if err = url2.ParseInt("height", values, &params.Height); err != nil {
		return
	}
	params.Width = clampSize(params.Width, DefaultPNGWidth)
	params.Height = clampSize(params.Height, DefaultPNGHeight)
	return
}
