package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/changediff"
)

// Publisher is the part of *nats.Conn the NATS sink needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

type NATSSink struct {
	conn    Publisher
	subject string
	logger  logrus.FieldLogger
}

func NewNATSSink(conn Publisher, subject string, logger logrus.FieldLogger) *NATSSink {
	return &NATSSink{conn: conn, subject: subject, logger: logger}
}

// DialNATS connects with reconnect handling and logs connection state changes.
func DialNATS(url string, maxReconnect int, reconnectWait time.Duration, logger logrus.FieldLogger) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.MaxReconnects(maxReconnect),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warnf("NATS disconnected: %v", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Infof("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Warn("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Infof("Connected to NATS at %s", url)
	return conn, nil
}

func (s *NATSSink) Emit(_ context.Context, batch *changediff.ChangeBatch, entries []changediff.DiffEntry) error {
	for _, entry := range entries {
		data, err := json.Marshal(newDetail(batch, entry))
		if err != nil {
			return fmt.Errorf("marshal diff entry: %w", err)
		}
		if err := s.conn.Publish(s.subject, data); err != nil {
			return fmt.Errorf("failed to publish to NATS: %w", err)
		}
	}
	s.logger.Debugf("Published %d changes to %s", len(entries), s.subject)
	return nil
}
