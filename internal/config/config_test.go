package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "TABLE_NAME", "NAME_INDEX", "REPORT_SINK", "EVENT_BUS_NAME",
		"REPORT_SOURCE", "NATS_URL", "NATS_SUBJECT", "NATS_MAX_RECONNECT", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Table.Name != "Reindeer" {
		t.Errorf("Table.Name = %q, want Reindeer", cfg.Table.Name)
	}
	if cfg.Table.NameIndex != "reindeer-name-index" {
		t.Errorf("Table.NameIndex = %q", cfg.Table.NameIndex)
	}
	if cfg.Report.Sink != config.SinkLog {
		t.Errorf("Report.Sink = %q, want log", cfg.Report.Sink)
	}
	if cfg.NATS.ReconnectWait != 2*time.Second {
		t.Errorf("NATS.ReconnectWait = %s", cfg.NATS.ReconnectWait)
	}
	if cfg.Logger().GetLevel() != logrus.InfoLevel {
		t.Errorf("logger level = %s, want info", cfg.Logger().GetLevel())
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
table:
  name: ReindeerTest
report:
  sink: nats
nats:
  url: nats://localhost:4222
  reconnect_wait: 5s
logging:
  level: debug
  format: text
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TABLE_NAME", "FromEnv")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Table.Name != "FromEnv" {
		t.Errorf("Table.Name = %q, want FromEnv", cfg.Table.Name)
	}
	if cfg.Report.Sink != config.SinkNATS || cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("report = %+v nats = %+v", cfg.Report, cfg.NATS)
	}
	if cfg.NATS.ReconnectWait != 5*time.Second {
		t.Errorf("NATS.ReconnectWait = %s, want 5s", cfg.NATS.ReconnectWait)
	}
	if cfg.Logger().GetLevel() != logrus.DebugLevel {
		t.Errorf("logger level = %s, want debug", cfg.Logger().GetLevel())
	}
}

func TestLoad_Invalid(t *testing.T) {
	tcs := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown sink", env: map[string]string{"REPORT_SINK": "carrier-pigeon"}},
		{name: "nats without url", env: map[string]string{"REPORT_SINK": "nats"}},
		{name: "unknown format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "bad reconnect", env: map[string]string{"NATS_MAX_RECONNECT": "many"}},
		{name: "missing file", env: map[string]string{"CONFIG_FILE": "/nonexistent/config.yaml"}},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(); err == nil {
				t.Error("Load error = nil, want error")
			}
		})
	}
}
