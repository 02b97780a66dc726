// Package dynamo stores sheet snapshots as a single DynamoDB item.
package dynamo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/jacentio/sheetstore/persist"
	"github.com/jacentio/sheetstore/sheet"
)

// API is the subset of the DynamoDB client used by Persister.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Config holds configuration for the DynamoDB backend.
type Config struct {
	// Table is the table name. Its partition key must be a string attribute named "pk".
	// Default: "sheetstore_snapshots"
	Table string

	// Key is the partition key value of the snapshot item.
	// Default: persist.DefaultKey
	Key string
}

// DefaultConfig returns the default table and key.
func DefaultConfig() Config {
	return Config{
		Table: "sheetstore_snapshots",
		Key:   persist.DefaultKey,
	}
}

func (c *Config) validate() {
	if c.Table == "" {
		c.Table = "sheetstore_snapshots"
	}
	if c.Key == "" {
		c.Key = persist.DefaultKey
	}
}

// item is the stored shape of a snapshot.
type item struct {
	PK        string `dynamodbav:"pk"`
	Body      string `dynamodbav:"body"`
	Version   int64  `dynamodbav:"version"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// Persister implements store.Persister on one DynamoDB item.
type Persister struct {
	client API
	config Config
}

// New creates a Persister.
func New(client API, config Config) *Persister {
	config.validate()
	return &Persister{client: client, config: config}
}

func (p *Persister) key() map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: p.config.Key},
	}
}

// Save writes the snapshot body and increments the item version.
func (p *Persister) Save(ctx context.Context, tree sheet.Tree) error {
	body, err := json.Marshal(sheet.Normalize(tree))
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = p.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(p.config.Table),
		Key:              p.key(),
		UpdateExpression: aws.String("SET #body = :body, #updated_at = :now ADD #version :one"),
		ExpressionAttributeNames: map[string]string{
			"#body":       "body",
			"#updated_at": "updated_at",
			"#version":    "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":body": &types.AttributeValueMemberS{Value: string(body)},
			":now":  &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
			":one":  &types.AttributeValueMemberN{Value: "1"},
		},
	})
	if err != nil {
		return fmt.Errorf("update snapshot item: %w", err)
	}
	return nil
}

// Load reads the snapshot item with a consistent read.
func (p *Persister) Load(ctx context.Context) (sheet.Tree, bool, error) {
	it, err := p.get(ctx)
	if err != nil || it == nil {
		return nil, false, err
	}

	var tree sheet.Tree
	if err := json.Unmarshal([]byte(it.Body), &tree); err != nil {
		return nil, false, fmt.Errorf("decode snapshot body: %w", err)
	}
	return sheet.Normalize(tree), true, nil
}

// Version returns the write count of the snapshot item, or 0 if it does not exist.
func (p *Persister) Version(ctx context.Context) (int64, error) {
	it, err := p.get(ctx)
	if err != nil || it == nil {
		return 0, err
	}
	return it.Version, nil
}

func (p *Persister) get(ctx context.Context) (*item, error) {
	result, err := p.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(p.config.Table),
		Key:            p.key(),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get snapshot item: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var it item
	if err := attributevalue.UnmarshalMap(result.Item, &it); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot item: %w", err)
	}
	return &it, nil
}

// CreateTable creates the snapshot table if it does not exist and waits until it is active.
func CreateTable(ctx context.Context, client *dynamodb.Client, table string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	var inUse *types.ResourceInUseException
	if err != nil && !errors.As(err, &inUse) {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	return waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(table)}, 2*time.Minute)
}
