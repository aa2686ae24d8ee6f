package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"user-avatar-service/internal/domain/user"
)

// API is the subset of the DynamoDB client used by the repository.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// UserRepoDynamo implements the Repository interface on a DynamoDB table.
type UserRepoDynamo struct {
	client API
	table  string
	log    *zap.Logger
}

// NewUserRepoDynamo creates a new instance of UserRepoDynamo.
func NewUserRepoDynamo(client API, table string, log *zap.Logger) *UserRepoDynamo {
	return &UserRepoDynamo{client: client, table: table, log: log}
}

// userItem is the stored shape of a user record. An absent avatar_url
// attribute unmarshals to the empty string.
type userItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	AvatarURL string `dynamodbav:"avatar_url"`
}

// Put writes a user record to the table.
func (r *UserRepoDynamo) Put(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	item, err := attributevalue.MarshalMap(userItem{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		r.log.Error("failed to put user item", zap.Error(err), zap.String("id", u.ID), zap.String("table", r.table))
		return fmt.Errorf("failed to put user: %w", err)
	}

	r.log.Info("user item written", zap.String("id", u.ID), zap.String("table", r.table))
	return nil
}

// ListAll reads every record in the table, following scan pagination until
// the table is exhausted. Order is whatever the scan yields.
func (r *UserRepoDynamo) ListAll(ctx context.Context) ([]user.User, error) {
	var users []user.User
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			r.log.Error("failed to scan user table", zap.Error(err), zap.String("table", r.table))
			return nil, fmt.Errorf("failed to scan users: %w", err)
		}

		var items []userItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user items: %w", err)
		}

		for _, it := range items {
			users = append(users, user.User{
				ID:        it.ID,
				Name:      it.Name,
				Email:     it.Email,
				AvatarURL: it.AvatarURL,
			})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	r.log.Debug("user table scanned", zap.Int("count", len(users)), zap.String("table", r.table))
	return users, nil
}
