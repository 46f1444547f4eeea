package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/domain"
)

type EventType string

// 상품 변경 이벤트 타입
const (
	ProductStocked   EventType = "ProductStocked"
	ProductCorrected EventType = "ProductCorrected"
	ProductUnstocked EventType = "ProductUnstocked"
)

// ProductEvent is published after a product is created, replaced or deleted.
type ProductEvent struct {
	EventID   string          `json:"event_id"`
	Type      EventType       `json:"type"`
	ProductID string          `json:"product_id"`
	Product   *domain.Product `json:"product"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"request_id"`
}

// NewProductEvent stamps an event for productID. product is nil for ProductUnstocked.
func NewProductEvent(eventType EventType, productID string, product *domain.Product, requestID string) ProductEvent {
	return ProductEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		ProductID: productID,
		Product:   product,
		Timestamp: time.Now().UTC(),
		RequestID: requestID,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event ProductEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ProductEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
