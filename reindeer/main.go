package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/config"
	"reindeer-workshop/internal/reindeer"
)

const greeting = "Merry Christmas!"

type Handler struct {
	store  *reindeer.Store
	logger logrus.FieldLogger
}

// Handle adds or replaces the reindeer carried in the event detail.
// Events without a detail are acknowledged and ignored.
func (h *Handler) Handle(ctx context.Context, event events.CloudWatchEvent) (string, error) {
	detail := bytes.TrimSpace(event.Detail)
	if len(detail) == 0 || bytes.Equal(detail, []byte("null")) {
		h.logger.Infof("Received %s event from %s without detail", event.DetailType, event.Source)
		return greeting, nil
	}

	var r reindeer.Reindeer
	if err := json.Unmarshal(detail, &r); err != nil {
		h.logger.Errorf("Failed to parse event detail: %v", err)
		return "", fmt.Errorf("parse reindeer: %w", err)
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}

	if err := h.store.Put(ctx, r); err != nil {
		h.logger.Errorf("Failed to insert item into DynamoDB: %v", err)
		return "", err
	}

	h.logger.WithFields(logrus.Fields{"id": r.ID, "name": r.Name}).Info("Put item")
	return greeting, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := cfg.Logger()

	// Load AWS configuration
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatalf("unable to load SDK config, %v", err)
	}

	h := &Handler{
		store:  reindeer.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Table.Name, cfg.Table.NameIndex),
		logger: logger,
	}
	lambda.Start(h.Handle)
}
