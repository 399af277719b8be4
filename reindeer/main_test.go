package main

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"reindeer-workshop/internal/reindeer"
)

type fakeTable struct {
	reindeer.Client
	puts []*dynamodb.PutItemInput
	err  error
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, nil
}

func newHandler(table *fakeTable) *Handler {
	logger, _ := logtest.NewNullLogger()
	return &Handler{store: reindeer.NewStore(table, "Reindeer", "reindeer-name-index"), logger: logger}
}

func TestHandle(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name     string
		detail   string
		wantPuts int
		wantID   string
	}{
		{name: "with id", detail: `{"id":"r1","name":"Rudolph","speed":10}`, wantPuts: 1, wantID: "r1"},
		{name: "without id", detail: `{"name":"Comet","speed":7,"skill":"fast"}`, wantPuts: 1},
		{name: "null detail", detail: `null`},
		{name: "empty detail", detail: ``},
	}

	for _, tc := range tcs {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			table := &fakeTable{}
			event := events.CloudWatchEvent{Source: "Santa", DetailType: "Reindeer", Detail: json.RawMessage(tc.detail)}

			got, err := newHandler(table).Handle(context.Background(), event)
			if err != nil {
				t.Fatalf("Handle error = %v", err)
			}
			if got != greeting {
				t.Errorf("Handle = %q, want %q", got, greeting)
			}
			if len(table.puts) != tc.wantPuts {
				t.Fatalf("got %d puts, want %d", len(table.puts), tc.wantPuts)
			}
			if tc.wantPuts == 0 {
				return
			}
			id := table.puts[0].Item["id"].(*types.AttributeValueMemberS).Value
			if tc.wantID != "" && id != tc.wantID {
				t.Errorf("id = %q, want %q", id, tc.wantID)
			}
			if tc.wantID == "" {
				if _, err := uuid.Parse(id); err != nil {
					t.Errorf("generated id %q is not a UUID", id)
				}
			}
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	t.Parallel()

	bad := events.CloudWatchEvent{Detail: json.RawMessage(`{"speed":"very"}`)}
	if _, err := newHandler(&fakeTable{}).Handle(context.Background(), bad); err == nil {
		t.Error("Handle with bad detail error = nil, want error")
	}

	boom := errors.New("throttled")
	ok := events.CloudWatchEvent{Detail: json.RawMessage(`{"id":"r1"}`)}
	if _, err := newHandler(&fakeTable{err: boom}).Handle(context.Background(), ok); !errors.Is(err, boom) {
		t.Errorf("Handle error = %v, want %v", err, boom)
	}
}
