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
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// CommentRepository implements ports.CommentRepository using DynamoDB.
// Comments live under their recipe's partition; the sort key carries the
// posting timestamp so a plain ascending query returns posting order.
type CommentRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *CommentRepository {
	return &CommentRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.CommentRepository = (*CommentRepository)(nil)

// commentItem represents the DynamoDB item structure for a comment
type commentItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	CommentID  string `dynamodbav:"CommentID"`
	AuthorID   string `dynamodbav:"AuthorID"`
	RecipeID   string `dynamodbav:"RecipeID"`
	Body       string `dynamodbav:"Body"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// Save persists a comment
func (r *CommentRepository) Save(ctx context.Context, comment *entities.Comment) error {
	createdAt := utils.FormatTimestamp(comment.CreatedAt())

	item := commentItem{
		PK:         fmt.Sprintf("RECIPE#%s", comment.Recipe().String()),
		SK:         fmt.Sprintf("COMMENT#%s#%s", createdAt, comment.ID().String()),
		EntityType: "COMMENT",
		CommentID:  comment.ID().String(),
		AuthorID:   comment.Author().String(),
		RecipeID:   comment.Recipe().String(),
		Body:       comment.Body(),
		CreatedAt:  createdAt,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal comment", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save comment", err)
	}
	return nil
}

// ListByRecipe retrieves the comments on a recipe in posting order
func (r *CommentRepository) ListByRecipe(ctx context.Context, recipe valueobjects.RecipeID) ([]*entities.Comment, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("RECIPE#%s", recipe.String()))).
		And(expression.Key("SK").BeginsWith("COMMENT#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build comment query", err)
	}

	var comments []*entities.Comment
	var lastKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query comments", err)
		}

		for _, raw := range result.Items {
			var item commentItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal comment", err)
			}
			comment, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			comments = append(comments, comment)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return comments, nil
}

func (item commentItem) toEntity() (*entities.Comment, error) {
	id, err := valueobjects.NewCommentIDFromString(item.CommentID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse comment id", err)
	}
	author, err := valueobjects.NewUserIDFromString(item.AuthorID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse comment author", err)
	}
	recipe, err := valueobjects.NewRecipeIDFromString(item.RecipeID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse comment recipe", err)
	}
	createdAt, _ := utils.ParseTimestamp(item.CreatedAt)
	return entities.ReconstructComment(id, author, recipe, item.Body, createdAt), nil
}
