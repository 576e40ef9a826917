// Package dynamodb provides DynamoDB implementations of the repository ports.
// The application uses a single table: users, recipes and comments share it,
// keyed by PK/SK with two global secondary indexes (GSI1 for slug/username
// lookups, GSI2 for the global recipe feed).
package dynamodb

import (
	"context"
	"fmt"

	"cookbook-backend/application/ports"
	"cookbook-backend/domain/core/entities"
	"cookbook-backend/domain/core/valueobjects"
	pkgerrors "cookbook-backend/pkg/errors"
	"cookbook-backend/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// UserRepository implements ports.UserRepository using DynamoDB
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string // GSI1 - username lookup
	logger    *zap.Logger
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) *UserRepository {
	return &UserRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// recipeRefItem mirrors entities.RecipeRef in storage
type recipeRefItem struct {
	RecipeID string `dynamodbav:"RecipeID"`
	Slug     string `dynamodbav:"Slug"`
	Title    string `dynamodbav:"Title"`
	Image    string `dynamodbav:"Image"`
}

// userItem represents the DynamoDB item structure for a user
type userItem struct {
	PK           string          `dynamodbav:"PK"`
	SK           string          `dynamodbav:"SK"`
	GSI1PK       string          `dynamodbav:"GSI1PK"`
	GSI1SK       string          `dynamodbav:"GSI1SK"`
	EntityType   string          `dynamodbav:"EntityType"`
	UserID       string          `dynamodbav:"UserID"`
	Username     string          `dynamodbav:"Username"`
	PasswordHash string          `dynamodbav:"PasswordHash"`
	Recipes      []recipeRefItem `dynamodbav:"Recipes"`
	Saved        []recipeRefItem `dynamodbav:"Saved"`
	CreatedAt    string          `dynamodbav:"CreatedAt"`
}

// Save persists a user as a single document. The saved-list toggle relies on
// this being one whole-item write.
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	item := userItem{
		PK:           fmt.Sprintf("USER#%s", user.ID().String()),
		SK:           "PROFILE",
		GSI1PK:       fmt.Sprintf("USERNAME#%s", user.Username()),
		GSI1SK:       "PROFILE",
		EntityType:   "USER",
		UserID:       user.ID().String(),
		Username:     user.Username(),
		PasswordHash: user.PasswordHash(),
		Recipes:      toRefItems(user.Recipes()),
		Saved:        toRefItems(user.Saved()),
		CreatedAt:    utils.FormatTimestamp(user.CreatedAt()),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal user", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save user", err)
	}
	return nil
}

// GetByID retrieves a user by identifier
func (r *UserRepository) GetByID(ctx context.Context, id valueobjects.UserID) (*entities.User, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       userKey(id.String()),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get user", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal user", err)
	}
	return item.toEntity()
}

// GetByUsername retrieves a user via the username index
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	keyEx := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("USERNAME#%s", username)))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build username query", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query user by username", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal user", err)
	}
	return item.toEntity()
}

func (item userItem) toEntity() (*entities.User, error) {
	id, err := valueobjects.NewUserIDFromString(item.UserID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse user id", err)
	}
	recipes, err := fromRefItems(item.Recipes)
	if err != nil {
		return nil, err
	}
	saved, err := fromRefItems(item.Saved)
	if err != nil {
		return nil, err
	}
	createdAt, _ := utils.ParseTimestamp(item.CreatedAt)
	return entities.ReconstructUser(id, item.Username, item.PasswordHash, recipes, saved, createdAt), nil
}

func toRefItems(refs []entities.RecipeRef) []recipeRefItem {
	items := make([]recipeRefItem, 0, len(refs))
	for _, ref := range refs {
		items = append(items, recipeRefItem{
			RecipeID: ref.ID.String(),
			Slug:     ref.Slug.String(),
			Title:    ref.Title,
			Image:    ref.Image,
		})
	}
	return items
}

func fromRefItems(items []recipeRefItem) ([]entities.RecipeRef, error) {
	refs := make([]entities.RecipeRef, 0, len(items))
	for _, item := range items {
		id, err := valueobjects.NewRecipeIDFromString(item.RecipeID)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse recipe ref", err)
		}
		slug, err := valueobjects.NewSlugFromString(item.Slug)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse recipe ref slug", err)
		}
		refs = append(refs, entities.RecipeRef{
			ID:    id,
			Slug:  slug,
			Title: item.Title,
			Image: item.Image,
		})
	}
	return refs, nil
}
