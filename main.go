package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"github.com/fernandosanchezjr/devsurvey/logging"
	"github.com/fernandosanchezjr/devsurvey/report"
	log "github.com/sirupsen/logrus"
	"os"
	"strings"
)

// filters collects repeated -filter Name=Value flags.
type filters map[string]string

func (f filters) String() string {
	parts := make([]string, 0, len(f))
	for name, value := range f {
		parts = append(parts, name+"="+value)
	}
	return strings.Join(parts, ",")
}

func (f filters) Set(raw string) error {
	pos := strings.Index(raw, "=")
	if pos <= 0 {
		return errors.New("filter must look like Name=Value")
	}
	f[raw[:pos]] = raw[pos+1:]
	return nil
}

var topic string
var sorted bool
var verbose bool
var selected = filters{}

func init() {
	flag.StringVar(&topic, "topic", "", "survey topic to compare")
	flag.BoolVar(&sorted, "sort", sorted, "sort answers by population count")
	flag.BoolVar(&verbose, "verbose", verbose, "log debug output to stderr")
	flag.Var(selected, "filter", "demographic filter as Name=Value, repeatable")
}

func validateFilters(cfg *config.Config) error {
	for name := range selected {
		known := false
		for _, demographic := range cfg.Demographics {
			known = known || demographic.Name == name
		}
		if !known {
			return fmt.Errorf("unknown demographic %q", name)
		}
	}
	return nil
}

func main() {
	flag.Parse()
	logging.SetupConsoleLogger(verbose)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	selectedTopic, found := cfg.FindTopic(topic)
	if !found {
		fmt.Fprintf(os.Stderr, "unknown topic %q, expected one of:\n", topic)
		for _, t := range cfg.Topics {
			fmt.Fprintf(os.Stderr, "  %s\t%s\n", t.Name, t.Title())
		}
		os.Exit(2)
	}
	if err := validateFilters(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	selection := dataset.NewSelection(selectedTopic.Name)
	for name, value := range selected {
		selection.Set(name, value)
	}
	asker := dataset.NewAsker(dataset.NewClient(cfg.BaseURL, cfg.Timeout), cfg.Demographics)
	chartData, err := asker.Ask(context.Background(), selection)
	if err != nil {
		fmt.Fprintln(os.Stderr, "could not load data:", err)
		os.Exit(1)
	}
	if sorted {
		chartData = chartData.Sorted()
	}
	if err := report.Write(os.Stdout, selectedTopic.Title(), chartData); err != nil {
		log.WithError(err).Fatal("Failed to write report")
	}
}
