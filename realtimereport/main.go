package main

import (
	"context"
	"errors"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/eventbridge"
	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/changediff"
	"reindeer-workshop/internal/config"
	"reindeer-workshop/internal/report"
)

type Handler struct {
	sink   report.Sink
	logger logrus.FieldLogger
}

func NewHandler(sink report.Sink, logger logrus.FieldLogger) *Handler {
	return &Handler{sink: sink, logger: logger}
}

// Handle reports the changed fields of one stream batch. Any error fails the
// whole batch so the stream redelivers it.
func (h *Handler) Handle(ctx context.Context, event events.DynamoDBEvent) error {
	h.logger.Infof("Processing event with %d records", len(event.Records))

	batch := changediff.FromDynamoDBEvent(event)
	entries, err := changediff.Report(&batch)
	if err != nil {
		var malformed *changediff.MalformedRecordError
		if errors.As(err, &malformed) && malformed.Index >= 0 {
			h.logger.WithField("eventID", batch.Records[malformed.Index].EventID).Errorf("Rejecting batch: %v", err)
		} else {
			h.logger.Errorf("Rejecting batch: %v", err)
		}
		return err
	}

	if err := h.sink.Emit(ctx, &batch, entries); err != nil {
		h.logger.Errorf("Failed to report changes: %v", err)
		return err
	}

	h.logger.Infof("Reported %d changed fields", len(entries))
	return nil
}

func newSink(cfg *config.Config, logger *logrus.Logger) (report.Sink, error) {
	logSink := report.NewLogSink(logger)
	switch cfg.Report.Sink {
	case config.SinkEventBridge:
		sess := session.Must(session.NewSession())
		return report.Tee(logSink, report.NewEventBridgeSink(
			eventbridge.New(sess),
			cfg.Report.EventBus,
			cfg.Report.Source,
			cfg.Report.DetailType,
			logger,
		)), nil
	case config.SinkNATS:
		conn, err := report.DialNATS(cfg.NATS.URL, cfg.NATS.MaxReconnect, cfg.NATS.ReconnectWait, logger)
		if err != nil {
			return nil, err
		}
		return report.Tee(logSink, report.NewNATSSink(conn, cfg.NATS.Subject, logger)), nil
	default:
		return logSink, nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := cfg.Logger()

	sink, err := newSink(cfg, logger)
	if err != nil {
		logger.Fatalf("unable to set up report sink, %v", err)
	}

	logger.Info("Starting Lambda function")
	lambda.Start(NewHandler(sink, logger).Handle)
}
