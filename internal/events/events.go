package events

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/catalog_api/internal/models"
)

const (
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

type ProductEvent struct {
	Type       string          `json:"type"`
	ProductID  int64           `json:"product_id"`
	Product    *models.Product `json:"product,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

func NewProductEvent(typ string, id int64, prod *models.Product) ProductEvent {
	return ProductEvent{
		Type:       typ,
		ProductID:  id,
		Product:    prod,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers product change events to a sink.
type Publisher interface {
	Publish(ctx context.Context, ev ProductEvent) error
}

type Nop struct{}

func (Nop) Publish(context.Context, ProductEvent) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev ProductEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
