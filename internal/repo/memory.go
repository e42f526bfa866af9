package repo

import (
	"context"
	"sync"

	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/transport"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int64
}

// NewMemoryRepo builds a repository holding seed in the given order. The id
// counter starts after the largest seeded id.
func NewMemoryRepo(seed ...models.Product) *MemoryRepo {
	r := &MemoryRepo{
		products: make([]models.Product, 0, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		r.products = append(r.products, p)
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *MemoryRepo) CreateProduct(_ context.Context, prod models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prod.ID = r.nextID
	r.nextID++
	r.products = append(r.products, prod)
	return prod, nil
}

func (r *MemoryRepo) GetProducts(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *MemoryRepo) GetProduct(_ context.Context, id int64) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	return r.products[i], nil
}

func (r *MemoryRepo) PatchProduct(_ context.Context, req transport.PatchProductRequest, id int64) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Product{}, ErrNotFound
	}
	applyPatch(&r.products[i], req)
	return r.products[i], nil
}

func (r *MemoryRepo) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	r.products = append(r.products[:i], r.products[i+1:]...)
	return nil
}

// indexOf is a linear scan; callers hold r.mu.
func (r *MemoryRepo) indexOf(id int64) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
