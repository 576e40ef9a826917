package dynamodb

import (
	"context"
	"fmt"
	"sort"

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

// feedPartition is the constant GSI2 partition holding every recipe, sorted
// by creation time for the newest-first browse feed.
const feedPartition = "RECIPE"

// RecipeRepository implements ports.RecipeRepository using DynamoDB
type RecipeRepository struct {
	client        *dynamodb.Client
	tableName     string
	slugIndexName string // GSI1 - find-one-by-slug
	feedIndexName string // GSI2 - global newest-first feed
	logger        *zap.Logger
}

// NewRecipeRepository creates a new RecipeRepository
func NewRecipeRepository(client *dynamodb.Client, tableName, slugIndexName, feedIndexName string, logger *zap.Logger) *RecipeRepository {
	return &RecipeRepository{
		client:        client,
		tableName:     tableName,
		slugIndexName: slugIndexName,
		feedIndexName: feedIndexName,
		logger:        logger,
	}
}

var _ ports.RecipeRepository = (*RecipeRepository)(nil)

// recipeItem represents the DynamoDB item structure for a recipe
type recipeItem struct {
	PK              string   `dynamodbav:"PK"`
	SK              string   `dynamodbav:"SK"`
	GSI1PK          string   `dynamodbav:"GSI1PK"`
	GSI1SK          string   `dynamodbav:"GSI1SK"`
	GSI2PK          string   `dynamodbav:"GSI2PK"`
	GSI2SK          string   `dynamodbav:"GSI2SK"`
	EntityType      string   `dynamodbav:"EntityType"`
	RecipeID        string   `dynamodbav:"RecipeID"`
	OwnerID         string   `dynamodbav:"OwnerID"`
	Slug            string   `dynamodbav:"Slug"`
	Title           string   `dynamodbav:"Title"`
	Image           string   `dynamodbav:"Image"`
	EstimatedTime   int      `dynamodbav:"EstimatedTime"`
	NumServings     int      `dynamodbav:"NumServings"`
	EstimatedCost   float64  `dynamodbav:"EstimatedCost"`
	DifficultyLevel string   `dynamodbav:"DifficultyLevel"`
	Cuisine         string   `dynamodbav:"Cuisine"`
	Description     string   `dynamodbav:"Description"`
	Ingredients     string   `dynamodbav:"Ingredients"`
	Instructions    string   `dynamodbav:"Instructions"`
	Comments        []string `dynamodbav:"Comments"`
	CreatedAt       string   `dynamodbav:"CreatedAt"`
}

// Save persists a recipe to DynamoDB
func (r *RecipeRepository) Save(ctx context.Context, recipe *entities.Recipe) error {
	attrs := recipe.Attributes()
	createdAt := utils.FormatTimestamp(recipe.CreatedAt())

	comments := make([]string, 0, len(recipe.Comments()))
	for _, id := range recipe.Comments() {
		comments = append(comments, id.String())
	}

	item := recipeItem{
		PK:              fmt.Sprintf("USER#%s", recipe.Owner().String()),
		SK:              fmt.Sprintf("RECIPE#%s", recipe.ID().String()),
		GSI1PK:          fmt.Sprintf("SLUG#%s", recipe.Slug().String()),
		GSI1SK:          "RECIPE",
		GSI2PK:          feedPartition,
		GSI2SK:          fmt.Sprintf("%s#%s", createdAt, recipe.ID().String()),
		EntityType:      "RECIPE",
		RecipeID:        recipe.ID().String(),
		OwnerID:         recipe.Owner().String(),
		Slug:            recipe.Slug().String(),
		Title:           attrs.Title,
		Image:           attrs.Image,
		EstimatedTime:   attrs.EstimatedTime,
		NumServings:     attrs.NumServings,
		EstimatedCost:   attrs.EstimatedCost,
		DifficultyLevel: attrs.DifficultyLevel,
		Cuisine:         attrs.Cuisine,
		Description:     attrs.Description,
		Ingredients:     attrs.Ingredients,
		Instructions:    attrs.Instructions,
		Comments:        comments,
		CreatedAt:       createdAt,
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal recipe", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("save recipe", err)
	}
	return nil
}

// GetBySlug retrieves a recipe via the slug index
func (r *RecipeRepository) GetBySlug(ctx context.Context, slug valueobjects.Slug) (*entities.Recipe, error) {
	keyEx := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("SLUG#%s", slug.String())))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build slug query", err)
	}

	result, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(r.slugIndexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query recipe by slug", err)
	}
	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("recipe")
	}

	var item recipeItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal recipe", err)
	}
	return item.toEntity()
}

// ListAll retrieves every recipe from the feed index, newest first
func (r *RecipeRepository) ListAll(ctx context.Context) ([]*entities.Recipe, error) {
	keyEx := expression.Key("GSI2PK").Equal(expression.Value(feedPartition))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build feed query", err)
	}

	var recipes []*entities.Recipe
	var lastKey map[string]types.AttributeValue
	for {
		input := &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(r.feedIndexName),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ScanIndexForward:          aws.Bool(false), // newest first
			ExclusiveStartKey:         lastKey,
		}

		result, err := r.client.Query(ctx, input)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query recipe feed", err)
		}

		for _, raw := range result.Items {
			var item recipeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal recipe", err)
			}
			recipe, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			recipes = append(recipes, recipe)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return recipes, nil
}

// ListByOwner retrieves all recipes owned by a user, newest first
func (r *RecipeRepository) ListByOwner(ctx context.Context, owner valueobjects.UserID) ([]*entities.Recipe, error) {
	items, err := r.queryOwnerItems(ctx, owner)
	if err != nil {
		return nil, err
	}

	recipes := make([]*entities.Recipe, 0, len(items))
	for _, item := range items {
		recipe, err := item.toEntity()
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}

	// The SK sorts by recipe ID; creation order comes from the timestamp.
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt().After(recipes[j].CreatedAt())
	})
	return recipes, nil
}

// Delete removes a single recipe. Its comments are left in place.
func (r *RecipeRepository) Delete(ctx context.Context, owner valueobjects.UserID, id valueobjects.RecipeID) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       recipeKey(owner.String(), id.String()),
	})
	if err != nil {
		return pkgerrors.NewDatabaseError("delete recipe", err)
	}
	return nil
}

// DeleteByOwner removes every recipe owned by a user. Entries in other
// users' saved lists are not touched.
func (r *RecipeRepository) DeleteByOwner(ctx context.Context, owner valueobjects.UserID) error {
	items, err := r.queryOwnerItems(ctx, owner)
	if err != nil {
		return err
	}

	for _, item := range items {
		_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key:       recipeKey(item.OwnerID, item.RecipeID),
		})
		if err != nil {
			return pkgerrors.NewDatabaseError("delete recipe", err)
		}
	}
	return nil
}

func (r *RecipeRepository) queryOwnerItems(ctx context.Context, owner valueobjects.UserID) ([]recipeItem, error) {
	keyEx := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", owner.String()))).
		And(expression.Key("SK").BeginsWith("RECIPE#"))
	expr, err := expression.NewBuilder().WithKeyCondition(keyEx).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build owner query", err)
	}

	var items []recipeItem
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
			return nil, pkgerrors.NewDatabaseError("query recipes by owner", err)
		}

		for _, raw := range result.Items {
			var item recipeItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal recipe", err)
			}
			items = append(items, item)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		lastKey = result.LastEvaluatedKey
	}

	return items, nil
}

func (item recipeItem) toEntity() (*entities.Recipe, error) {
	id, err := valueobjects.NewRecipeIDFromString(item.RecipeID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse recipe id", err)
	}
	owner, err := valueobjects.NewUserIDFromString(item.OwnerID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse recipe owner", err)
	}
	slug, err := valueobjects.NewSlugFromString(item.Slug)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse recipe slug", err)
	}

	comments := make([]valueobjects.CommentID, 0, len(item.Comments))
	for _, raw := range item.Comments {
		commentID, err := valueobjects.NewCommentIDFromString(raw)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse comment ref", err)
		}
		comments = append(comments, commentID)
	}

	createdAt, _ := utils.ParseTimestamp(item.CreatedAt)
	attrs := entities.RecipeAttributes{
		Title:           item.Title,
		Image:           item.Image,
		EstimatedTime:   item.EstimatedTime,
		NumServings:     item.NumServings,
		EstimatedCost:   item.EstimatedCost,
		DifficultyLevel: item.DifficultyLevel,
		Cuisine:         item.Cuisine,
		Description:     item.Description,
		Ingredients:     item.Ingredients,
		Instructions:    item.Instructions,
	}
	return entities.ReconstructRecipe(id, owner, slug, attrs, comments, createdAt), nil
}
