package survey

import (
	"encoding/json"
	"errors"
	"fmt"
	"github.com/epiclabs-io/elastic"
	"strconv"
)

var ErrNegativeCount = errors.New("negative count in facet row")

// CountRow is one facet bucket as returned by the dataset API. Label may be
// a composite of several answers joined by Delimiter.
type CountRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func decodeLabel(raw interface{}) (string, error) {
	switch value := raw.(type) {
	case nil:
		return "", nil
	case string:
		return value, nil
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), nil
	default:
		var label string
		if err := elastic.Set(&label, value); err != nil {
			return "", err
		}
		return label, nil
	}
}

// UnmarshalJSON accepts the loosely typed rows the facet endpoint emits:
// numeric labels for numeric columns, null labels for blank answers and
// counts encoded as numbers or strings.
func (r *CountRow) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rawLabel, found := raw["label"]
	if !found {
		rawLabel = raw["value"]
	}
	label, err := decodeLabel(rawLabel)
	if err != nil {
		return fmt.Errorf("invalid facet label %v: %w", rawLabel, err)
	}
	var count int
	if rawCount, found := raw["count"]; found && rawCount != nil {
		if err := elastic.Set(&count, rawCount); err != nil {
			return fmt.Errorf("invalid facet count %v: %w", rawCount, err)
		}
	}
	if count < 0 {
		return ErrNegativeCount
	}
	r.Label = label
	r.Count = count
	return nil
}
