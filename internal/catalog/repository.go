package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Repository reads and seeds the products table.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	SeedIfEmpty(ctx context.Context, products []Product) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Migrate creates the products table when auto-migration is enabled.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{})
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

func (r *repository) SeedIfEmpty(ctx context.Context, products []Product) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting products: %w", err)
	}
	if count > 0 {
		return nil
	}
	if len(products) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("seeding products: %w", err)
	}
	return nil
}
