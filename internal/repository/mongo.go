package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Quantity    int                  `bson:"quantity"`
}

func toDocument(product domain.Product) (productDocument, error) {
	price, err := primitive.ParseDecimal128(product.Price.String())
	if err != nil {
		return productDocument{}, fmt.Errorf("invalid price %s: %w", product.Price, err)
	}

	doc := productDocument{
		Name:        product.Name,
		Description: product.Description,
		Price:       price,
		Quantity:    product.Quantity,
	}
	if product.ID != "" {
		if doc.ID, err = primitive.ObjectIDFromHex(product.ID); err != nil {
			return productDocument{}, fmt.Errorf("invalid product id %q: %w", product.ID, err)
		}
	}
	return doc, nil
}

func (d productDocument) product() (domain.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return domain.Product{}, fmt.Errorf("invalid price %s for product %s: %w", d.Price, d.ID.Hex(), err)
	}
	return domain.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		Quantity:    d.Quantity,
	}, nil
}

type MongoProductStore struct {
	collection *mongo.Collection
}

var _ domain.ProductStore = (*MongoProductStore)(nil)

// NewMongoClient connects and pings the server so a bad URI fails at startup.
func NewMongoClient(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

func NewMongoProductStore(collection *mongo.Collection) *MongoProductStore {
	return &MongoProductStore{collection: collection}
}

func (r *MongoProductStore) FindByID(ctx context.Context, id string) (domain.Product, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// not an ObjectID, so it was never minted by this store
		return domain.Product{}, false, nil
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%w: failed to find product: %w", domain.ErrPersistence, err)
	}

	product, err := doc.product()
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return product, true, nil
}

func (r *MongoProductStore) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	doc, err := toDocument(product)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			return domain.Product{}, fmt.Errorf("%w: failed to insert product: %w", domain.ErrPersistence, err)
		}
	} else {
		_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
		if err != nil {
			return domain.Product{}, fmt.Errorf("%w: failed to replace product: %w", domain.ErrPersistence, err)
		}
	}

	product.ID = doc.ID.Hex()
	return product, nil
}

func (r *MongoProductStore) FindAll(ctx context.Context) ([]domain.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to find products: %w", domain.ErrPersistence, err)
	}

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: failed to decode products: %w", domain.ErrPersistence, err)
	}

	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := doc.product()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *MongoProductStore) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("%w: failed to delete product: %w", domain.ErrPersistence, err)
	}
	return nil
}
