// Package reindeer stores reindeer in a DynamoDB table.
package reindeer

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

var ErrNotFound = errors.New("reindeer not found")

// Client is the part of *dynamodb.Client the store uses.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type Store struct {
	client    Client
	table     string
	nameIndex string
}

func NewStore(client Client, table, nameIndex string) *Store {
	return &Store{client: client, table: table, nameIndex: nameIndex}
}

func (s *Store) Table() string { return s.table }

// Put adds the reindeer or replaces the one with the same id.
func (s *Store) Put(ctx context.Context, r Reindeer) error {
	if r.ID == "" {
		return errors.New("reindeer id is required")
	}
	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      r.Item(),
	})
	if err != nil {
		return fmt.Errorf("put reindeer %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Reindeer, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return Reindeer{}, fmt.Errorf("get reindeer %s: %w", id, err)
	}
	if result.Item == nil {
		return Reindeer{}, ErrNotFound
	}
	return FromItem(result.Item)
}

// FindByName queries the name index and returns every match.
func (s *Store) FindByName(ctx context.Context, name string) ([]Reindeer, error) {
	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(s.nameIndex),
		KeyConditionExpression: aws.String("#name = :name"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":name": &types.AttributeValueMemberS{Value: name},
		},
	})

	found := []Reindeer{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("query reindeer by name %q: %w", name, err)
		}
		for _, item := range page.Items {
			r, err := FromItem(item)
			if err != nil {
				return nil, err
			}
			found = append(found, r)
		}
	}
	return found, nil
}

// Count scans the whole table with Select=COUNT.
func (s *Store) Count(ctx context.Context) (int, error) {
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Select:    types.SelectCount,
	})

	count := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("scan %s: %w", s.table, err)
		}
		count += int(page.Count)
	}
	return count, nil
}
