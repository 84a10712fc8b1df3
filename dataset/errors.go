package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrFacetMissing = errors.New("facet missing from response")
	ErrBadStatus    = errors.New("unexpected response status")
)

// FetchError describes a failed facet request.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (fe *FetchError) Error() string {
	if fe.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", fe.URL, fe.StatusCode, fe.Err)
	}
	return fmt.Sprintf("fetch %s: %v", fe.URL, fe.Err)
}

func (fe *FetchError) Unwrap() error {
	return fe.Err
}
