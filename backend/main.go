package main

import (
	"context"
	"flag"
	"github.com/fernandosanchezjr/devsurvey/backend/charting"
	"github.com/fernandosanchezjr/devsurvey/backend/monitor"
	"github.com/fernandosanchezjr/devsurvey/config"
	"github.com/fernandosanchezjr/devsurvey/dataset"
	"github.com/fernandosanchezjr/devsurvey/logging"
	"github.com/fernandosanchezjr/devsurvey/utils"
	log "github.com/sirupsen/logrus"
	"time"
)

var watchConfig = true

func init() {
	flag.BoolVar(&watchConfig, "watch-config", watchConfig, "reload the config file when it changes")
}

func main() {
	flag.Parse()
	logging.SetupLogger()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}
	cs := charting.NewService(cfg)
	probe := monitor.NewMonitor(
		dataset.NewClient(cfg.BaseURL, cfg.Timeout), cfg.Topics[0].Name, cfg.HealthSchedule, cfg.Timeout)
	if err := probe.Start(); err != nil {
		log.WithFields(log.Fields{"error": err, "schedule": cfg.HealthSchedule}).Fatal(
			"Failed to start dataset monitor")
	}
	cs.SetMonitor(probe)
	if watchConfig {
		configPath := config.Path()
		watcher, err := utils.NewFileWatcher(configPath, utils.DefaultWatchDebounce, func() {
			reloaded, err := config.LoadFile(configPath)
			if err != nil {
				log.WithError(err).Error("Config reload failed, keeping previous config")
				return
			}
			cs.SetConfig(reloaded)
			probe.SetTarget(dataset.NewClient(reloaded.BaseURL, reloaded.Timeout), reloaded.Topics[0].Name)
			log.WithField("path", configPath).Println("Config reloaded")
		})
		if err != nil {
			log.WithError(err).Warn("Config watcher disabled")
		} else {
			defer watcher.Close()
		}
	}
	if err := cs.Start(); err != nil {
		log.WithFields(log.Fields{"error": err, "address": cfg.Listen}).Fatal("Failed to start HTTP server")
	}
	log.Println("Backend started")
	utils.Wait()
	probe.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cs.Stop(ctx); err != nil {
		log.WithError(err).Error("HTTP server shutdown")
	}
}
