package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// API is the subset of the DynamoDB client used by Store.
// *dynamodb.Client satisfies it.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store provides user record operations against a single DynamoDB table.
type Store struct {
	client API
	config Config
}

// New creates a new Store instance.
func New(client API, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// Table returns the name of the table the store reads and writes.
func (s *Store) Table() string {
	return s.config.Table
}

// key builds the primary key for a userid.
func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		KeyUserID: &types.AttributeValueMemberS{Value: id},
	}
}

// Get retrieves a record by userid, returning ErrNotFound if it is missing.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.config.Table),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return s.unmarshalRecord(result.Item)
}

// Put writes the record, replacing any existing item with the same userid.
// Attributes absent from rec are absent from the stored item afterwards.
func (s *Store) Put(ctx context.Context, rec Record) error {
	if rec.UserID() == "" {
		return ErrMissingUserID
	}

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.config.Table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

// Delete removes the record with the given userid. Deleting a missing
// record is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.config.Table),
		Key:       s.key(id),
	})
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}

// ScanAll returns every record in the table in DynamoDB's scan order.
func (s *Store) ScanAll(ctx context.Context) ([]Record, error) {
	// Paginate through all results
	records := []Record{}
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.config.Table),
		Select:    types.SelectAllAttributes,
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for _, raw := range page.Items {
			rec, err := s.unmarshalRecord(raw)
			if err != nil {
				return nil, err
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// unmarshalRecord converts a DynamoDB item to a Record.
func (s *Store) unmarshalRecord(raw map[string]types.AttributeValue) (Record, error) {
	rec := Record{}
	if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return rec, nil
}
