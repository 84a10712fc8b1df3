package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultBaseURL        = "https://2019-stackoverflow-datasette.glitch.me/csv-data-5d5b425"
	DefaultListen         = ":8080"
	DefaultTimeout        = 30 * time.Second
	DefaultHealthSchedule = "@every 5m"
	DefaultInflightTTL    = 2 * time.Minute
)

var (
	ErrNoBaseURL = errors.New("empty base url in config")
	ErrNoTopics  = errors.New("no topics in config")
)

type Topic struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label,omitempty"`
}

func (t Topic) Title() string {
	if t.Label != "" {
		return t.Label
	}
	return t.Name
}

// Demographic is a filterable column of the dataset. An empty Options list
// means the choices are read from the dataset facet itself.
type Demographic struct {
	Name    string   `yaml:"name"`
	Label   string   `yaml:"label,omitempty"`
	Options []string `yaml:"options,omitempty"`
}

func (d Demographic) Title() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Name
}

type Config struct {
	BaseURL        string        `yaml:"baseUrl"`
	Listen         string        `yaml:"listen,omitempty"`
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	HealthSchedule string        `yaml:"healthSchedule,omitempty"`
	InflightTTL    time.Duration `yaml:"inflightTtl,omitempty"`
	Topics         []Topic       `yaml:"topics"`
	Demographics   []Demographic `yaml:"demographics"`
}

func (c *Config) FindTopic(name string) (Topic, bool) {
	for _, t := range c.Topics {
		if t.Name == name {
			return t, true
		}
	}
	return Topic{}, false
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HealthSchedule == "" {
		c.HealthSchedule = DefaultHealthSchedule
	}
	if c.InflightTTL <= 0 {
		c.InflightTTL = DefaultInflightTTL
	}
}

func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}
	if len(c.Topics) == 0 {
		return ErrNoTopics
	}
	seen := map[string]bool{}
	for _, d := range c.Demographics {
		if d.Name == "" {
			return errors.New("demographic with empty name in config")
		}
		if seen[d.Name] {
			return fmt.Errorf("duplicate demographic %q in config", d.Name)
		}
		seen[d.Name] = true
	}
	for _, t := range c.Topics {
		if t.Name == "" {
			return errors.New("topic with empty name in config")
		}
	}
	return nil
}
