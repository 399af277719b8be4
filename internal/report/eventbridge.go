package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/eventbridge"
	"github.com/aws/aws-sdk-go/service/eventbridge/eventbridgeiface"
	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/changediff"
)

// PutEvents accepts at most this many entries per call.
const maxEventsPerPut = 10

// EventBridgeSink publishes one event per changed field to an event bus.
type EventBridgeSink struct {
	client     eventbridgeiface.EventBridgeAPI
	busName    string
	source     string
	detailType string
	logger     logrus.FieldLogger
}

func NewEventBridgeSink(client eventbridgeiface.EventBridgeAPI, busName, source, detailType string, logger logrus.FieldLogger) *EventBridgeSink {
	return &EventBridgeSink{
		client:     client,
		busName:    busName,
		source:     source,
		detailType: detailType,
		logger:     logger,
	}
}

func (s *EventBridgeSink) Emit(ctx context.Context, batch *changediff.ChangeBatch, entries []changediff.DiffEntry) error {
	requests := make([]*eventbridge.PutEventsRequestEntry, 0, len(entries))
	for _, entry := range entries {
		body, err := json.Marshal(newDetail(batch, entry))
		if err != nil {
			return fmt.Errorf("marshal diff entry: %w", err)
		}
		requests = append(requests, &eventbridge.PutEventsRequestEntry{
			Source:       aws.String(s.source),
			DetailType:   aws.String(s.detailType),
			Detail:       aws.String(string(body)),
			EventBusName: aws.String(s.busName),
		})
	}

	for start := 0; start < len(requests); start += maxEventsPerPut {
		end := min(start+maxEventsPerPut, len(requests))
		if err := s.put(ctx, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (s *EventBridgeSink) put(ctx context.Context, requests []*eventbridge.PutEventsRequestEntry) error {
	out, err := s.client.PutEventsWithContext(ctx, &eventbridge.PutEventsInput{
		Entries: requests,
	})
	if err != nil {
		s.logger.Errorf("Error sending events to EventBridge: %v", err)
		return fmt.Errorf("put events: %w", err)
	}
	if failed := aws.Int64Value(out.FailedEntryCount); failed > 0 {
		for _, result := range out.Entries {
			if result.ErrorCode != nil {
				s.logger.Errorf("EventBridge rejected entry: %s %s",
					aws.StringValue(result.ErrorCode), aws.StringValue(result.ErrorMessage))
			}
		}
		return fmt.Errorf("put events: %d of %d entries failed", failed, len(requests))
	}
	s.logger.Debugf("Sent %d events to %s", len(requests), s.busName)
	return nil
}
