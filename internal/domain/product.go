package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// MarshalJSON writes the price as a JSON number (14.99) rather than the quoted
// string decimal.Decimal produces by default.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		Price json.Number `json:"price"`
	}{
		plain: plain(p),
		Price: json.Number(p.Price.String()),
	})
}

// ProductPayload is the inbound body of the create and replace requests.
// Price is a pointer so that a missing price can be told apart from zero.
type ProductPayload struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"        validate:"notblank"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"       validate:"required"`
	Quantity    int              `json:"quantity"`
}

// Product converts an accepted payload into the model moved between layers.
func (p ProductPayload) Product() Product {
	product := Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Quantity:    p.Quantity,
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	return product
}

// Outcome reports what a mutating inventory operation did.
type Outcome int

const (
	Stocked Outcome = iota + 1
	NotFound
	Corrected
	Unstocked
)

func (o Outcome) String() string {
	switch o {
	case Stocked:
		return "Stocked"
	case NotFound:
		return "NotFound"
	case Corrected:
		return "Corrected"
	case Unstocked:
		return "Unstocked"
	default:
		return "Unknown"
	}
}

// Retrieval is the result of a single product lookup: either Found or Absent.
type Retrieval struct {
	product Product
	found   bool
}

func Found(product Product) Retrieval {
	return Retrieval{product: product, found: true}
}

func Absent() Retrieval {
	return Retrieval{}
}

// Product returns the retrieved product and whether it was found.
func (r Retrieval) Product() (Product, bool) {
	return r.product, r.found
}

func (r Retrieval) IsFound() bool {
	return r.found
}
