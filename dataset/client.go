package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/survey"
	log "github.com/sirupsen/logrus"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

const maxErrorBody = 512

type facetResult struct {
	Results []survey.CountRow `json:"results"`
}

type facetResponse struct {
	FacetResults map[string]facetResult `json:"facet_results"`
}

// Client reads facet counts from a Datasette table endpoint.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) FacetURL(topic, clause string) string {
	return fmt.Sprintf("%s/results.json?_facet=%s%s", c.BaseURL, topic, clause)
}

// Fetch returns the count rows of topic for the rows matching clause. An
// empty clause reads the whole population.
func (c *Client) Fetch(ctx context.Context, topic, clause string) ([]survey.CountRow, error) {
	start := time.Now()
	target := c.FacetURL(topic, clause)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	request.Header.Set("Accept", "application/json")
	response, err := c.HTTP.Do(request)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := ioutil.ReadAll(io.LimitReader(response.Body, maxErrorBody))
		return nil, &FetchError{
			URL:        target,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrBadStatus, strings.TrimSpace(string(body))),
		}
	}
	var decoded facetResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, &FetchError{URL: target, StatusCode: response.StatusCode, Err: err}
	}
	facet, found := decoded.FacetResults[topic]
	if !found {
		return nil, &FetchError{
			URL:        target,
			StatusCode: response.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrFacetMissing, topic),
		}
	}
	log.WithFields(log.Fields{
		"url":         target,
		"rows":        len(facet.Results),
		"elapsedTime": time.Since(start),
	}).Debug("Facet fetched")
	return facet.Results, nil
}

// FacetValues lists the labels of an unfiltered facet, for selectors whose
// options are not configured.
func (c *Client) FacetValues(ctx context.Context, facet string) ([]string, error) {
	rows, err := c.Fetch(ctx, facet, "")
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Label != "" {
			values = append(values, row.Label)
		}
	}
	return values, nil
}
