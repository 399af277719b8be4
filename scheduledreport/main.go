package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/config"
	"reindeer-workshop/internal/reindeer"
)

type counter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	table  counter
	logger logrus.FieldLogger
}

func (h *Handler) Handle(ctx context.Context, event events.CloudWatchEvent) (string, error) {
	h.logger.Debugf("Received scheduled event %s at %s", event.ID, event.Time)

	count, err := h.table.Count(ctx)
	if err != nil {
		h.logger.Errorf("Failed to count reindeer: %v", err)
		return "", err
	}

	h.logger.WithField("count", count).Infof("total reindeer: %d", count)
	return "Scheduled event!", nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("unable to load config, %v", err)
	}
	logger := cfg.Logger()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Fatalf("unable to load SDK config, %v", err)
	}

	h := &Handler{
		table:  reindeer.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Table.Name, cfg.Table.NameIndex),
		logger: logger,
	}
	lambda.Start(h.Handle)
}
