package config

import (
	"flag"
	"github.com/fernandosanchezjr/devsurvey/utils"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
	"io/ioutil"
	"os"
	"path"
)

var configPath string

func init() {
	flag.StringVar(&configPath, "config", "", "specify config file (default ~/.devsurvey/config.yaml)")
}

func Path() string {
	if configPath != "" {
		return configPath
	}
	return path.Join(utils.GetHomeFolder(), "config.yaml")
}

func Parse(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads filePath, falling back to Default when it does not exist.
func LoadFile(filePath string) (*Config, error) {
	data, err := ioutil.ReadFile(filePath)
	if os.IsNotExist(err) {
		log.WithField("path", filePath).Info("No config file, using defaults")
		return Default(), nil
	} else if err != nil {
		return nil, err
	}
	log.WithField("path", filePath).Info("Loading config")
	return Parse(data)
}

func LoadConfig() (*Config, error) {
	return LoadFile(Path())
}
