package dataset

import (
	"context"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/survey"
	log "github.com/sirupsen/logrus"
	"sync"
	"time"
)

// Fetcher is satisfied by *Client.
type Fetcher interface {
	Fetch(ctx context.Context, topic, clause string) ([]survey.CountRow, error)
}

type Asker struct {
	fetcher      Fetcher
	demographics []config.Demographic
}

func NewAsker(fetcher Fetcher, demographics []config.Demographic) *Asker {
	return &Asker{fetcher: fetcher, demographics: demographics}
}

// Ask fetches the filtered sample and the whole population of the selected
// topic concurrently and merges them. The first failure cancels the other
// request and is returned.
func (a *Asker) Ask(ctx context.Context, selection *Selection) (*survey.ChartData, error) {
	start := time.Now()
	clause := BuildClause(a.demographics, selection.Values)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var sampleRows, populationRows []survey.CountRow
	var firstErr error
	var once sync.Once
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		var err error
		if sampleRows, err = a.fetcher.Fetch(ctx, selection.Topic, clause); err != nil {
			fail(err)
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if populationRows, err = a.fetcher.Fetch(ctx, selection.Topic, ""); err != nil {
			fail(err)
		}
	}()
	wg.Wait()
	if firstErr != nil {
		log.WithFields(log.Fields{
			"topic":  selection.Topic,
			"clause": clause,
			"error":  firstErr,
		}).Error("Ask failed")
		return nil, firstErr
	}
	chartData := survey.NewChartData(sampleRows, populationRows)
	log.WithFields(log.Fields{
		"topic":          selection.Topic,
		"clause":         clause,
		"labels":         len(chartData.Labels),
		"sampleSize":     chartData.SampleSize,
		"populationSize": chartData.PopulationSize,
		"elapsedTime":    time.Since(start),
	}).Info("Ask")
	return chartData, nil
}
