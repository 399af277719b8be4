package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Report sinks the real time report can forward diff entries to. The log sink is always on.
const (
	SinkLog         = "log"
	SinkEventBridge = "eventbridge"
	SinkNATS        = "nats"
)

type Config struct {
	Table   TableConfig   `yaml:"table"`
	Report  ReportConfig  `yaml:"report"`
	NATS    NATSConfig    `yaml:"nats"`
	Logging LoggingConfig `yaml:"logging"`
}

type TableConfig struct {
	Name      string `yaml:"name"`
	NameIndex string `yaml:"name_index"`
}

type ReportConfig struct {
	Sink       string `yaml:"sink"` // log, eventbridge, nats
	EventBus   string `yaml:"event_bus"`
	Source     string `yaml:"source"`
	DetailType string `yaml:"detail_type"`
}

type NATSConfig struct {
	URL           string        `yaml:"url"`
	Subject       string        `yaml:"subject"`
	MaxReconnect  int           `yaml:"max_reconnect"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json, text
}

// Load reads the optional YAML file named by CONFIG_FILE, applies environment
// overrides and fills in defaults.
func Load() (*Config, error) {
	var config Config

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	override(&config.Table.Name, "TABLE_NAME")
	override(&config.Table.NameIndex, "NAME_INDEX")
	override(&config.Report.Sink, "REPORT_SINK")
	override(&config.Report.EventBus, "EVENT_BUS_NAME")
	override(&config.Report.Source, "REPORT_SOURCE")
	override(&config.NATS.URL, "NATS_URL")
	override(&config.NATS.Subject, "NATS_SUBJECT")
	override(&config.Logging.Level, "LOG_LEVEL")
	override(&config.Logging.Format, "LOG_FORMAT")
	if v := os.Getenv("NATS_MAX_RECONNECT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid NATS_MAX_RECONNECT: %w", err)
		}
		config.NATS.MaxReconnect = n
	}

	// Set defaults
	if config.Table.Name == "" {
		config.Table.Name = "Reindeer"
	}
	if config.Table.NameIndex == "" {
		config.Table.NameIndex = "reindeer-name-index"
	}
	if config.Report.Sink == "" {
		config.Report.Sink = SinkLog
	}
	if config.Report.EventBus == "" {
		config.Report.EventBus = "ChristmasEventBus"
	}
	if config.Report.Source == "" {
		config.Report.Source = "real-time-report"
	}
	if config.Report.DetailType == "" {
		config.Report.DetailType = "ReindeerChanged"
	}
	if config.NATS.Subject == "" {
		config.NATS.Subject = "reindeer.changes"
	}
	if config.NATS.MaxReconnect == 0 {
		config.NATS.MaxReconnect = 5
	}
	if config.NATS.ReconnectWait == 0 {
		config.NATS.ReconnectWait = 2 * time.Second
	}
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "json"
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func override(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

func (c *Config) validate() error {
	switch c.Report.Sink {
	case SinkLog, SinkEventBridge:
	case SinkNATS:
		if c.NATS.URL == "" {
			return fmt.Errorf("report sink %q requires a NATS url", c.Report.Sink)
		}
	default:
		return fmt.Errorf("unknown report sink %q", c.Report.Sink)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// Logger builds the process logger. An unparsable level falls back to info.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if c.Logging.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetLevel(logrus.InfoLevel)
	if level, err := logrus.ParseLevel(c.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
