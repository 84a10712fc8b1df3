package main

import (
	"flag"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"github.com/fernandosanchezjr/devsurvey/logging"
	"github.com/fernandosanchezjr/devsurvey/tools"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"
)

var verbose bool

func init() {
	flag.BoolVar(&verbose, "verbose", verbose, "log debug output to stderr")
}

func main() {
	flag.Parse()
	logging.SetupConsoleLogger(verbose)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	s := server.NewMCPServer(
		"devsurvey",
		"1.0.0",
	)
	asker := dataset.NewAsker(dataset.NewClient(cfg.BaseURL, cfg.Timeout), cfg.Demographics)
	tools.Register(s, cfg, asker)
	if err := server.ServeStdio(s); err != nil {
		log.WithError(err).Fatal("Server error")
	}
}
