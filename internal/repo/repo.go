package repo

import (
	"context"
	"errors"

	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/transport"
)

var ErrNotFound = errors.New("product not found")

// ProductRepository is the ordered product collection. Ids are assigned by the
// repository and never handed out twice.
type ProductRepository interface {
	CreateProduct(ctx context.Context, prod models.Product) (models.Product, error)
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (models.Product, error)
	PatchProduct(ctx context.Context, req transport.PatchProductRequest, id int64) (models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// SeedProducts is the catalog the service starts with.
func SeedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Laptop", Price: 19999, Description: "High-performance laptop"},
	}
}

func applyPatch(prod *models.Product, req transport.PatchProductRequest) {
	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
}
