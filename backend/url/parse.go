package url

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var ErrInvalidParam = errors.New("invalid query parameter")

// ParamError names the query parameter that failed to parse.
type ParamError struct {
	Name  string
	Value string
	Err   error
}

func (pe *ParamError) Error() string {
	return fmt.Sprintf("%s: %s=%q: %v", ErrInvalidParam, pe.Name, pe.Value, pe.Err)
}

func (pe *ParamError) Unwrap() error {
	return pe.Err
}

func (pe *ParamError) Is(target error) bool {
	return target == ErrInvalidParam
}

// lookup returns the trimmed first value of name, if present and non-blank.
func lookup(name string, values url.Values) (string, bool) {
	raw := strings.TrimSpace(values.Get(name))
	return raw, raw != ""
}

// ParseInt leaves result untouched when name is absent or blank.
func ParseInt(name string, values url.Values, result *int) error {
	raw, found := lookup(name, values)
	if !found {
		return nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return &ParamError{Name: name, Value: raw, Err: err}
	}
	*result = parsed
	return nil
}

// ParseBool accepts strconv booleans plus "on", which HTML checkboxes send.
func ParseBool(name string, values url.Values, result *bool) error {
	raw, found := lookup(name, values)
	if !found {
		return nil
	}
	if strings.EqualFold(raw, "on") {
		*result = true
		return nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return &ParamError{Name: name, Value: raw, Err: err}
	}
	*result = parsed
	return nil
}

// ParseString leaves result untouched when name is absent. A present but
// empty value is kept, it means "no filter" for selectors.
func ParseString(name string, values url.Values, result *string) {
	if _, found := values[name]; found {
		*result = values.Get(name)
	}
}
