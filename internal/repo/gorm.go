package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/catalog_api/internal/models"
	"github.com/Skotchmaster/catalog_api/internal/transport"
)

type GormRepo struct {
	DB *gorm.DB
}

// NewGormRepo migrates the products table and inserts seed when the table is empty.
func NewGormRepo(ctx context.Context, db *gorm.DB, seed ...models.Product) (*GormRepo, error) {
	if err := db.WithContext(ctx).AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("migrate products: %w", err)
	}

	var total int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if total == 0 && len(seed) > 0 {
		rows := make([]models.Product, len(seed))
		copy(rows, seed)
		if err := db.WithContext(ctx).Create(&rows).Error; err != nil {
			return nil, fmt.Errorf("seed products: %w", err)
		}
	}

	return &GormRepo{DB: db}, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod models.Product) (models.Product, error) {
	prod.ID = 0
	if err := r.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		return models.Product{}, err
	}
	return prod, nil
}

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	items := make([]models.Product, 0)
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id int64) (models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&prod).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id int64) (models.Product, error) {
	var prod models.Product
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&prod).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		applyPatch(&prod, req)
		return tx.Save(&prod).Error
	})
	if err != nil {
		return models.Product{}, err
	}
	return prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
