package monitor

import (
	"context"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

const (
	StatusUnknown = "unknown"
	StatusUp      = "up"
	StatusDown    = "down"
)

type Status struct {
	Status      string    `json:"status"`
	Topic       string    `json:"topic,omitempty"`
	Latency     string    `json:"latency,omitempty"`
	Rows        int       `json:"rows"`
	LastCheck   time.Time `json:"lastCheck"`
	LastSuccess time.Time `json:"lastSuccess"`
	LastError   string    `json:"lastError,omitempty"`
	Uptime      string    `json:"uptime,omitempty"`
}

// Monitor periodically reads one facet of the dataset to tell whether the
// upstream API is answering.
type Monitor struct {
	mtx      sync.RWMutex
	fetcher  dataset.Fetcher
	topic    string
	timeout  time.Duration
	schedule string
	cron     *cron.Cron
	status   Status
	started  time.Time
}

func NewMonitor(fetcher dataset.Fetcher, topic, schedule string, timeout time.Duration) *Monitor {
	return &Monitor{
		fetcher:  fetcher,
		topic:    topic,
		schedule: schedule,
		timeout:  timeout,
		status:   Status{Status: StatusUnknown, Topic: topic},
		started:  time.Now(),
	}
}

// SetTarget points the following probes at another fetcher and topic.
func (m *Monitor) SetTarget(fetcher dataset.Fetcher, topic string) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.fetcher = fetcher
	m.topic = topic
}

func (m *Monitor) Start() error {
	if m.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(m.schedule, m.Probe); err != nil {
		return err
	}
	m.cron = c
	m.cron.Start()
	go m.Probe()
	return nil
}

func (m *Monitor) Stop() {
	if m.cron == nil {
		return
	}
	<-m.cron.Stop().Done()
	m.cron = nil
}

func (m *Monitor) Probe() {
	m.mtx.RLock()
	fetcher, topic := m.fetcher, m.topic
	m.mtx.RUnlock()
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	start := time.Now()
	rows, err := fetcher.Fetch(ctx, topic, "")
	latency := time.Since(start)
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.status.Topic = topic
	m.status.LastCheck = start
	m.status.Latency = latency.String()
	if err != nil {
		m.status.Status = StatusDown
		m.status.LastError = err.Error()
		log.WithFields(log.Fields{"topic": topic, "error": err}).Warn("Dataset probe failed")
		return
	}
	m.status.Status = StatusUp
	m.status.Rows = len(rows)
	m.status.LastSuccess = start
	m.status.LastError = ""
	log.WithFields(log.Fields{"topic": topic, "latency": latency, "rows": len(rows)}).Debug("Dataset probe")
}

func (m *Monitor) Status() Status {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	status := m.status
	status.Uptime = time.Since(m.started).Round(time.Second).String()
	return status
}
