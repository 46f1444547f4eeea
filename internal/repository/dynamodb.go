package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
	pkgconfig "github.com/cloud-wave-best-zizon/product-inventory/pkg/config"
)

const keyAttribute = "product_id"

// DynamoAPI is the subset of the DynamoDB client used by DynamoProductStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	dynamodb.ScanAPIClient
}

// productItem is the DynamoDB shape of a product. Price is kept as a string so no
// precision is lost to the float conversion of the number type.
type productItem struct {
	ProductID   string `dynamodbav:"product_id"`
	Name        string `dynamodbav:"name"`
	Description string `dynamodbav:"description"`
	Price       string `dynamodbav:"price"`
	Quantity    int    `dynamodbav:"quantity"`
}

func toItem(product domain.Product) productItem {
	return productItem{
		ProductID:   product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.String(),
		Quantity:    product.Quantity,
	}
}

func (i productItem) product() (domain.Product, error) {
	price, err := decimal.NewFromString(i.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %q for product %s: %w", i.Price, i.ProductID, err)
	}
	return domain.Product{
		ID:          i.ProductID,
		Name:        i.Name,
		Description: i.Description,
		Price:       price,
		Quantity:    i.Quantity,
	}, nil
}

type DynamoProductStore struct {
	client    DynamoAPI
	tableName string
}

var _ domain.ProductStore = (*DynamoProductStore)(nil)

func NewDynamoDBClient(ctx context.Context, cfg *pkgconfig.Config) (*dynamodb.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	// 로컬 모드에서는 dynamodb-local 에 더미 자격증명으로 접속
	if cfg.LocalMode && cfg.DynamoDBEndpoint != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func NewDynamoProductStore(client DynamoAPI, tableName string) *DynamoProductStore {
	return &DynamoProductStore{
		client:    client,
		tableName: tableName,
	}
}

func (r *DynamoProductStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		keyAttribute: &types.AttributeValueMemberS{Value: id},
	}
}

func (r *DynamoProductStore) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	// DynamoDB rejects empty key values; nothing can be stored under one anyway.
	if id == "" {
		return domain.Product{}, false, nil
	}

	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            r.key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%w: failed to get item: %w", domain.ErrPersistence, err)
	}

	if result.Item == nil {
		return domain.Product{}, false, nil
	}

	var item productItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return domain.Product{}, false, fmt.Errorf("%w: failed to unmarshal product: %w", domain.ErrPersistence, err)
	}

	product, err := item.product()
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return product, true, nil
}

func (r *DynamoProductStore) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	av, err := attributevalue.MarshalMap(toItem(product))
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: failed to marshal product: %w", domain.ErrPersistence, err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: failed to put item: %w", domain.ErrPersistence, err)
	}

	return product, nil
}

func (r *DynamoProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	projection := expression.NamesList(
		expression.Name(keyAttribute),
		expression.Name("name"),
		expression.Name("description"),
		expression.Name("price"),
		expression.Name("quantity"),
	)
	expr, err := expression.NewBuilder().WithProjection(projection).Build()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build projection: %w", domain.ErrPersistence, err)
	}

	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName:                aws.String(r.tableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		ConsistentRead:           aws.Bool(true),
	})

	products := make([]domain.Product, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan table: %w", domain.ErrPersistence, err)
		}

		var items []productItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal products: %w", domain.ErrPersistence, err)
		}
		for _, item := range items {
			product, err := item.product()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
			}
			products = append(products, product)
		}
	}

	return products, nil
}

func (r *DynamoProductStore) DeleteByID(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       r.key(id),
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete item: %w", domain.ErrPersistence, err)
	}
	return nil
}
