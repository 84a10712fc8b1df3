package charting

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/backend/monitor"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"github.com/fernandosanchezjr/devsurvey/survey"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mathext/prng"
	"net"
	"net/http"
	"sync"
	"time"
)

const (
	PageTitle      = "Developer survey"
	FetchErrorText = "Could not load data from the survey dataset. Please try again."
)

type Service struct {
	mtx      sync.RWMutex
	cfg      *config.Config
	client   *dataset.Client
	asker    *dataset.Asker
	inflight *Inflight
	monitor  *monitor.Monitor
	rngMtx   sync.Mutex
	rng      Uint64Source
	server   *http.Server
}

func NewService(cfg *config.Config) *Service {
	cs := &Service{
		inflight: NewInflight(cfg.InflightTTL),
		rng:      prng.NewXoshiro256starstar(uint64(time.Now().UnixNano())),
	}
	cs.SetConfig(cfg)
	return cs
}

// SetConfig swaps the configuration used by subsequent requests.
func (cs *Service) SetConfig(cfg *config.Config) {
	client := dataset.NewClient(cfg.BaseURL, cfg.Timeout)
	asker := dataset.NewAsker(client, cfg.Demographics)
	cs.mtx.Lock()
	defer cs.mtx.Unlock()
	cs.cfg = cfg
	cs.client = client
	cs.asker = asker
}

func (cs *Service) SetMonitor(m *monitor.Monitor) {
	cs.mtx.Lock()
	defer cs.mtx.Unlock()
	cs.monitor = m
}

func (cs *Service) snapshot() (*config.Config, *dataset.Client, *dataset.Asker, *monitor.Monitor) {
	cs.mtx.RLock()
	defer cs.mtx.RUnlock()
	return cs.cfg, cs.client, cs.asker, cs.monitor
}

func (cs *Service) palette() Palette {
	cs.rngMtx.Lock()
	defer cs.rngMtx.Unlock()
	return RandomPalette(cs.rng)
}

func (cs *Service) Router() *httprouter.Router {
	router := httprouter.New()
	router.GET("/", cs.GetForm)
	router.GET("/ask", cs.GetChart)
	router.GET("/api/chart", cs.GetChartJSON)
	router.GET("/chart.png", cs.GetChartPNG)
	router.GET("/healthz", cs.GetHealth)
	return router
}

func (cs *Service) Start() error {
	cfg, _, _, _ := cs.snapshot()
	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	cs.server = &http.Server{Handler: cs.Router()}
	go func() {
		if err := cs.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("HTTP server stopped")
		}
	}()
	log.WithField("address", listener.Addr().String()).Println("Dashboard listening")
	return nil
}

func (cs *Service) Stop(ctx context.Context) error {
	defer cs.inflight.Close()
	if cs.server == nil {
		return nil
	}
	return cs.server.Shutdown(ctx)
}

func clientKey(request *http.Request) string {
	if host, _, err := net.SplitHostPort(request.RemoteAddr); err == nil {
		return host
	}
	return request.RemoteAddr
}

type askError struct {
	status  int
	message string
}

func (ae *askError) Error() string {
	return ae.message
}

// ask runs one selection for the requesting client. A client gets a single
// outstanding ask; the guard is released however the ask ends.
func (cs *Service) ask(request *http.Request) (*ServiceParams, config.Topic, *survey.ChartData, error) {
	cfg, _, asker, _ := cs.snapshot()
	params, err := ParseServiceParams(request.URL.Query(), cfg.Demographics)
	if err != nil {
		return nil, config.Topic{}, nil, &askError{status: http.StatusBadRequest, message: err.Error()}
	}
	topic, found := cfg.FindTopic(params.Topic)
	if !found {
		return params, topic, nil, &askError{
			status:  http.StatusNotFound,
			message: fmt.Sprintf("unknown topic %q", params.Topic),
		}
	}
	key := clientKey(request)
	if !cs.inflight.Acquire(key) {
		return params, topic, nil, &askError{
			status:  http.StatusTooManyRequests,
			message: "a request for this client is already in progress",
		}
	}
	defer cs.inflight.Release(key)
	chartData, err := asker.Ask(request.Context(), params.Selection())
	if err != nil {
		return params, topic, nil, &askError{status: http.StatusBadGateway, message: FetchErrorText}
	}
	if params.Sorted {
		chartData = chartData.Sorted()
	}
	return params, topic, chartData, nil
}

func errorStatus(err error) (int, string) {
	var ae *askError
	if errors.As(err, &ae) {
		return ae.status, ae.message
	}
	return http.StatusInternalServerError, err.Error()
}

func logRequest(request *http.Request, startTime time.Time, status int, chartData *survey.ChartData) {
	fields := log.Fields{
		"elapsedTime": time.Since(startTime),
		"path":        request.URL,
		"status":      status,
	}
	if chartData != nil {
		fields["labels"] = len(chartData.Labels)
		fields["sampleSize"] = chartData.SampleSize
	}
	log.WithFields(fields).Println("Chart request")
}

// FormOptionsTimeout bounds the whole option lookup for the form page.
var FormOptionsTimeout = 5 * time.Second

// loadOptions fills demographics without configured options from the
// dataset, all lookups sharing one deadline. Failed lookups are left empty.
func loadOptions(ctx context.Context, client *dataset.Client, demographics []config.Demographic) {
	ctx, cancel := context.WithTimeout(ctx, FormOptionsTimeout)
	defer cancel()
	var wg sync.WaitGroup
	for pos := range demographics {
		if len(demographics[pos].Options) != 0 {
			continue
		}
		wg.Add(1)
		go func(demographic *config.Demographic) {
			defer wg.Done()
			options, err := client.FacetValues(ctx, demographic.Name)
			if err != nil {
				log.WithFields(log.Fields{"demographic": demographic.Name, "error": err}).Warn(
					"Could not load selector options")
				return
			}
			demographic.Options = options
		}(&demographics[pos])
	}
	wg.Wait()
}

func (cs *Service) GetForm(w http.ResponseWriter, request *http.Request, _ httprouter.Params) {
	cfg, client, _, _ := cs.snapshot()
	demographics := make([]config.Demographic, len(cfg.Demographics))
	copy(demographics, cfg.Demographics)
	loadOptions(request.Context(), client, demographics)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := RenderForm(w, PageTitle, cfg.Topics, demographics); err != nil {
		log.WithError(err).Error("Error rendering form")
	}
}

func (cs *Service) GetChart(w http.ResponseWriter, request *http.Request, _ httprouter.Params) {
	startTime := time.Now()
	_, topic, chartData, err := cs.ask(request)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	status := http.StatusOK
	if err != nil {
		var message string
		status, message = errorStatus(err)
		w.WriteHeader(status)
		if renderErr := RenderError(w, PageTitle, message); renderErr != nil {
			log.WithError(renderErr).Error("Error rendering error page")
		}
	} else if renderErr := Render(w, topic.Title(), chartData, cs.palette()); renderErr != nil {
		log.WithError(renderErr).Error("Error rendering chart")
	}
	logRequest(request, startTime, status, chartData)
}

type chartResponse struct {
	Topic                 string            `json:"topic"`
	Summary               string            `json:"summary"`
	Chart                 *survey.ChartData `json:"chart,omitempty"`
	SamplePercentages     []float64         `json:"samplePercentages,omitempty"`
	PopulationPercentages []float64         `json:"populationPercentages,omitempty"`
	Error                 string            `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func (cs *Service) GetChartJSON(w http.ResponseWriter, request *http.Request, _ httprouter.Params) {
	startTime := time.Now()
	params, topic, chartData, err := cs.ask(request)
	if err != nil {
		status, message := errorStatus(err)
		response := chartResponse{Error: message}
		if params != nil {
			response.Topic = params.Topic
		}
		writeJSON(w, status, response)
		logRequest(request, startTime, status, nil)
		return
	}
	response := chartResponse{
		Topic:   topic.Name,
		Summary: survey.SummaryText(chartData.SampleSize, chartData.PopulationSize),
		Chart:   chartData,
	}
	if !chartData.Empty() {
		response.SamplePercentages = chartData.SamplePercentages()
		response.PopulationPercentages = chartData.PopulationPercentages()
	}
	writeJSON(w, http.StatusOK, response)
	logRequest(request, startTime, http.StatusOK, chartData)
}

func (cs *Service) GetChartPNG(w http.ResponseWriter, request *http.Request, _ httprouter.Params) {
	startTime := time.Now()
	params, topic, chartData, err := cs.ask(request)
	if err != nil {
		status, message := errorStatus(err)
		http.Error(w, message, status)
		logRequest(request, startTime, status, nil)
		return
	}
	if chartData.Empty() {
		http.Error(w, ErrEmptySample.Error(), http.StatusNotFound)
		logRequest(request, startTime, http.StatusNotFound, chartData)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := RenderPNG(w, topic.Title(), chartData, cs.palette(), params.Width, params.Height); err != nil {
		log.WithError(err).Error("Error rendering png")
	}
	logRequest(request, startTime, http.StatusOK, chartData)
}

func (cs *Service) GetHealth(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_, _, _, m := cs.snapshot()
	if m == nil {
		writeJSON(w, http.StatusOK, monitor.Status{Status: monitor.StatusUnknown})
		return
	}
	status := m.Status()
	code := http.StatusOK
	if status.Status == monitor.StatusDown {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}
