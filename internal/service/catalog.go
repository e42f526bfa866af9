package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Skotchmaster/catalog_api/internal/events"
	"github.com/Skotchmaster/catalog_api/internal/logging"
	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/repo"
	"github.com/Skotchmaster/catalog_api/internal/transport"
)

const (
	publishTimeout = 5 * time.Second

	// ValidationMessage is also the client-facing text for ErrValidation.
	ValidationMessage = "Name and price are required"
)

var ErrValidation = errors.New(ValidationMessage)

type CatalogService struct {
	Repo   repo.ProductRepository
	Events events.Publisher
}

func NewCatalogService(r repo.ProductRepository, pub events.Publisher) *CatalogService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &CatalogService{Repo: r, Events: pub}
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (models.Product, error) {
	if req.Name == "" || req.Price == nil {
		return models.Product{}, ErrValidation
	}

	prod := models.Product{Name: req.Name, Price: *req.Price}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return models.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.publish(ctx, events.NewProductEvent(events.ProductCreated, created.ID, &created))
	return created, nil
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req transport.PatchProductRequest) (models.Product, error) {
	updated, err := s.Repo.PatchProduct(ctx, req, id)
	if err != nil {
		return models.Product{}, err
	}

	s.publish(ctx, events.NewProductEvent(events.ProductUpdated, updated.ID, &updated))
	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.NewProductEvent(events.ProductDeleted, id, nil))
	return nil
}

// publish never fails the request; the write to the store has already happened.
func (s *CatalogService) publish(ctx context.Context, ev events.ProductEvent) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := s.Events.Publish(pctx, ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed",
			"type", ev.Type,
			"product_id", ev.ProductID,
			"err", err,
		)
	}
}
