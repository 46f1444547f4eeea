package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

func TestProductDocument_RoundTripThroughBSON(t *testing.T) {
	product := domain.Product{
		ID:          "620c8c44e136fd50c99323be",
		Name:        "The Lord of the Rings",
		Description: "Featuring Tom Bombadil",
		Price:       decimal.RequireFromString("14.99"),
		Quantity:    22,
	}

	doc, err := toDocument(product)
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var decoded productDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	got, err := decoded.product()
	require.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, product.Name, got.Name)
	assert.True(t, product.Price.Equal(got.Price))
	assert.Equal(t, product.Quantity, got.Quantity)
}

func TestToDocument_NewProductHasNoID(t *testing.T) {
	doc, err := toDocument(domain.Product{Name: "New", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.True(t, doc.ID.IsZero())

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	_, lookupErr := bson.Raw(raw).LookupErr("_id")
	assert.Error(t, lookupErr, "omitempty should drop a zero _id")
}

func TestToDocument_RejectsNonObjectID(t *testing.T) {
	_, err := toDocument(domain.Product{ID: "not-hex", Name: "x"})
	assert.ErrorContains(t, err, "invalid product id")
}

func TestProductDocument_HexID(t *testing.T) {
	oid := primitive.NewObjectID()
	price, err := primitive.ParseDecimal128("5")
	require.NoError(t, err)

	got, err := productDocument{ID: oid, Price: price}.product()
	require.NoError(t, err)
	assert.Equal(t, oid.Hex(), got.ID)
	assert.True(t, decimal.NewFromInt(5).Equal(got.Price))
}
