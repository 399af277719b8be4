// Package report hands diff entries of a change batch to log and message sinks.
package report

import (
	"context"

	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/changediff"
)

type Sink interface {
	Emit(ctx context.Context, batch *changediff.ChangeBatch, entries []changediff.DiffEntry) error
}

// Tee emits to every sink in order and stops at the first error.
func Tee(sinks ...Sink) Sink {
	return tee(sinks)
}

type tee []Sink

func (t tee) Emit(ctx context.Context, batch *changediff.ChangeBatch, entries []changediff.DiffEntry) error {
	for _, sink := range t {
		if err := sink.Emit(ctx, batch, entries); err != nil {
			return err
		}
	}
	return nil
}

// LogSink writes one line per record seen and one line per changed field.
type LogSink struct {
	logger logrus.FieldLogger
}

func NewLogSink(logger logrus.FieldLogger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(_ context.Context, batch *changediff.ChangeBatch, entries []changediff.DiffEntry) error {
	next := 0
	for i, record := range batch.Records {
		s.logger.WithFields(logrus.Fields{
			"record":  i,
			"eventID": record.EventID,
		}).Infof("eventName: %s", record.Operation)

		for ; next < len(entries) && entries[next].RecordIndex == i; next++ {
			entry := entries[next]
			s.logger.WithFields(logrus.Fields{
				"record": entry.RecordIndex,
				"field":  entry.Field,
				"old":    entry.Old.String(),
				"new":    entry.New.String(),
			}).Infof("%s changed from %s to %s", entry.Field, entry.Old, entry.New)
		}
	}
	return nil
}

// detail is the message body the forwarding sinks publish per diff entry.
type detail struct {
	EventID string               `json:"eventID,omitempty"`
	Entry   changediff.DiffEntry `json:"change"`
}

func newDetail(batch *changediff.ChangeBatch, entry changediff.DiffEntry) detail {
	d := detail{Entry: entry}
	if entry.RecordIndex >= 0 && entry.RecordIndex < len(batch.Records) {
		d.EventID = batch.Records[entry.RecordIndex].EventID
	}
	return d
}
