package charting

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/backend/monitor"
	"github.com/fernandosanchezjr/devsurvey/config"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"
)

func facetBody(topic string, rows ...string) string {
	return fmt.Sprintf(`{"facet_results": {%q: {"results": [%s]}}}`, topic, strings.Join(rows, ","))
}

func row(label string, count int) string {
	return fmt.Sprintf(`{"value": %q, "label": %q, "count": %d}`, label, label, count)
}

func newFakeDataset() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		topic := query.Get("_facet")
		switch {
		case topic == "Broken":
			http.Error(w, "boom", http.StatusInternalServerError)
		case topic == "Trans":
			fmt.Fprint(w, facetBody(topic, row("Yes", 3), row("No", 90)))
		case query.Get("Gender__exact") == "Nobody":
			fmt.Fprint(w, facetBody(topic))
		case query.Get("Gender__exact") == "Woman":
			fmt.Fprint(w, facetBody(topic, row("Go;Rust", 2), row("Python", 2)))
		default:
			fmt.Fprint(w, facetBody(topic, row("Go", 30), row("Python", 60), row("C", 10)))
		}
	}))
}

func newTestService(baseURL string) *Service {
	cfg := config.Default()
	cfg.BaseURL = baseURL
	cfg.Timeout = 2 * time.Second
	cfg.Topics = []config.Topic{{Name: "LanguageWorkedWith", Label: "Languages"}, {Name: "Broken"}}
	cfg.Demographics = []config.Demographic{
		{Name: "Gender", Options: []string{"Man", "Woman", "Nobody"}},
		{Name: "Trans"},
	}
	return NewService(cfg)
}

func get(cs *Service, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	cs.Router().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func TestGetChartJSON(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	recorder := get(cs, "/api/chart?topic=LanguageWorkedWith&Gender=Woman&sort=true")
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", recorder.Code, recorder.Body.String())
	}
	var response chartResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	chart := response.Chart
	if chart.SampleSize != 4 || chart.PopulationSize != 100 {
		t.Fatalf("unexpected sizes %d/%d", chart.SampleSize, chart.PopulationSize)
	}
	if !reflect.DeepEqual(chart.Labels, []string{"Python", "Go", "C", "Rust"}) {
		t.Fatalf("unexpected labels %v", chart.Labels)
	}
	if !reflect.DeepEqual(response.SamplePercentages, []float64{50, 50, 0, 50}) {
		t.Fatalf("unexpected sample percentages %v", response.SamplePercentages)
	}
	if !strings.Contains(response.Summary, "4 people") {
		t.Fatalf("unexpected summary %q", response.Summary)
	}
}

func TestGetChartEmptySample(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	recorder := get(cs, "/ask?topic=LanguageWorkedWith&Gender=Nobody")
	if recorder.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", recorder.Code)
	}
	if body := recorder.Body.String(); strings.Contains(body, SampleSeries) || !strings.Contains(body, "sample-size") {
		t.Fatalf("expected empty-state page, got %s", body)
	}
	recorder = get(cs, "/api/chart?topic=LanguageWorkedWith&Gender=Nobody")
	var response chartResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatal(err)
	}
	if response.SamplePercentages != nil || response.Chart.SampleSize != 0 {
		t.Fatalf("empty sample must not produce percentages: %+v", response)
	}
	if recorder = get(cs, "/chart.png?topic=LanguageWorkedWith&Gender=Nobody"); recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for empty png, got %d", recorder.Code)
	}
}

func TestGetChartErrors(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	cases := map[string]int{
		"/ask?topic=Unknown":                  http.StatusNotFound,
		"/ask?topic=Broken":                   http.StatusBadGateway,
		"/api/chart?topic=Broken":             http.StatusBadGateway,
		"/ask?topic=LanguageWorkedWith&sort=x": http.StatusBadRequest,
		"/chart.png?topic=Broken":             http.StatusBadGateway,
	}
	for target, status := range cases {
		if recorder := get(cs, target); recorder.Code != status {
			t.Errorf("%s: expected %d, got %d", target, status, recorder.Code)
		}
	}
	recorder := get(cs, "/ask?topic=Broken")
	if !strings.Contains(recorder.Body.String(), FetchErrorText) {
		t.Fatalf("expected fetch error text, got %s", recorder.Body.String())
	}
}

func TestInflightGuard(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	request := httptest.NewRequest(http.MethodGet, "/api/chart?topic=LanguageWorkedWith", nil)
	key := clientKey(request)
	if !cs.inflight.Acquire(key) {
		t.Fatal("could not acquire guard")
	}
	recorder := httptest.NewRecorder()
	cs.Router().ServeHTTP(recorder, request)
	if recorder.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", recorder.Code)
	}
	cs.inflight.Release(key)
	if recorder = get(cs, "/api/chart?topic=Broken"); recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", recorder.Code)
	}
	if recorder = get(cs, "/api/chart?topic=LanguageWorkedWith"); recorder.Code != http.StatusOK {
		t.Fatalf("guard not released after a failed ask, got %d", recorder.Code)
	}
}

func TestGetChartPNG(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	recorder := get(cs, "/chart.png?topic=LanguageWorkedWith&width=320&height=240")
	if recorder.Code != http.StatusOK || recorder.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected response %d %s", recorder.Code, recorder.Header().Get("Content-Type"))
	}
}

func TestGetForm(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	body := get(cs, "/").Body.String()
	for _, expected := range []string{
		`<option value="Woman">Woman</option>`,
		`<option value="Yes">Yes</option>`,
		`<option value="LanguageWorkedWith">Languages</option>`,
	} {
		if !strings.Contains(body, expected) {
			t.Errorf("form is missing %q", expected)
		}
	}
}

func TestGetHealth(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService(server.URL)
	defer cs.Stop(context.Background())
	var status monitor.Status
	if err := json.Unmarshal(get(cs, "/healthz").Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status.Status != monitor.StatusUnknown {
		t.Fatalf("expected unknown status, got %+v", status)
	}
	_, client, _, _ := cs.snapshot()
	m := monitor.NewMonitor(client, "Broken", "@every 1h", time.Second)
	m.Probe()
	cs.SetMonitor(m)
	if recorder := get(cs, "/healthz"); recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 for a failing upstream, got %d", recorder.Code)
	}
}

func TestSetConfig(t *testing.T) {
	server := newFakeDataset()
	defer server.Close()
	cs := newTestService("http://127.0.0.1:1")
	defer cs.Stop(context.Background())
	if recorder := get(cs, "/api/chart?topic=LanguageWorkedWith"); recorder.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 before reload, got %d", recorder.Code)
	}
	cfg, _, _, _ := cs.snapshot()
	reloaded := *cfg
	reloaded.BaseURL = server.URL
	cs.SetConfig(&reloaded)
	if recorder := get(cs, "/api/chart?topic=LanguageWorkedWith"); recorder.Code != http.StatusOK {
		t.Fatalf("expected 200 after reload, got %d", recorder.Code)
	}
}

func TestGetFormSlowOptions(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)
	previous := FormOptionsTimeout
	FormOptionsTimeout = 200 * time.Millisecond
	defer func() { FormOptionsTimeout = previous }()
	cs := newTestService(server.URL)
	cs.cfg.Demographics = []config.Demographic{{Name: "Gender"}, {Name: "Trans"}, {Name: "Dependents"}}
	defer cs.Stop(context.Background())
	start := time.Now()
	recorder := get(cs, "/")
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("form waited %v for option lookups", elapsed)
	}
	if recorder.Code != http.StatusOK || !strings.Contains(recorder.Body.String(), `<select id="Dependents"`) {
		t.Fatalf("unexpected form %d: %s", recorder.Code, recorder.Body.String())
	}
}
