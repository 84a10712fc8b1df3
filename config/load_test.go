package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
baseUrl: http://localhost:8001/survey
timeout: 5s
topics:
  - name: DevType
    label: Developer type
demographics:
  - name: Gender
    options: [Man, Woman]
  - name: Trans
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != "http://localhost:8001/survey" {
		t.Fatalf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %s", cfg.Timeout)
	}
	if cfg.Listen != DefaultListen || cfg.HealthSchedule != DefaultHealthSchedule {
		t.Fatal("defaults not applied")
	}
	if len(cfg.Demographics) != 2 || cfg.Demographics[0].Options[1] != "Woman" {
		t.Fatalf("unexpected demographics %+v", cfg.Demographics)
	}
	if topic, found := cfg.FindTopic("DevType"); !found || topic.Title() != "Developer type" {
		t.Fatalf("topic lookup failed: %+v", topic)
	}
	if _, found := cfg.FindTopic("Nope"); found {
		t.Fatal("unknown topic found")
	}
}

func TestParseInvalid(t *testing.T) {
	cases := map[string]string{
		"no base url": "topics: [{name: DevType}]",
		"no topics":   "baseUrl: http://x",
		"duplicate":   "baseUrl: http://x\ntopics: [{name: A}]\ndemographics: [{name: G}, {name: G}]",
		"bad yaml":    "baseUrl: [",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestLoadFileMissing(t *testing.T) {
	dir, err := ioutil.TempDir("", "config")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	cfg, err := LoadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.BaseURL)
	}
	if len(cfg.Demographics) != 5 || cfg.Demographics[0].Name != "Sexuality" {
		t.Fatalf("unexpected default demographics %+v", cfg.Demographics)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
}
