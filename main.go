package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"reindeer-workshop/internal/config"
	"reindeer-workshop/internal/reindeer"
)

type lookup interface {
	Get(ctx context.Context, id string) (reindeer.Reindeer, error)
	FindByName(ctx context.Context, name string) ([]reindeer.Reindeer, error)
}

type API struct {
	table  lookup
	logger logrus.FieldLogger
}

func (a *API) handleGet(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if id := request.PathParameters["id"]; id != "" {
		// Retrieve a single item by id
		r, err := a.table.Get(ctx, id)
		if errors.Is(err, reindeer.ErrNotFound) {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusNotFound, Body: "Item not found"}, nil
		}
		if err != nil {
			a.logger.Errorf("Failed to get reindeer %s: %v", id, err)
			return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: err.Error()}, nil
		}
		return a.jsonResponse(r)
	}

	name := request.QueryStringParameters["name"]
	if name == "" {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest, Body: "Missing id or name"}, nil
	}

	found, err := a.table.FindByName(ctx, name)
	if err != nil {
		a.logger.Errorf("Failed to query reindeer by name %q: %v", name, err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: err.Error()}, nil
	}
	return a.jsonResponse(found)
}

func (a *API) jsonResponse(v any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Errorf("Failed to marshal response body: %v", err)
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: "Error generating response"}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func (a *API) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case "GET":
		return a.handleGet(ctx, request)
	// writes arrive through the event bus
	default:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusMethodNotAllowed, Body: "Method not allowed"}, nil
	}
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

	api := &API{
		table:  reindeer.NewStore(dynamodb.NewFromConfig(awsCfg), cfg.Table.Name, cfg.Table.NameIndex),
		logger: logger,
	}
	lambda.Start(api.Handle)
}
