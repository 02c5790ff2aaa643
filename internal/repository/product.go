package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

type ProductRepository interface {
	List(ctx context.Context) ([]*model.Product, error)
	// SeedDefaults inserts the fixed catalog when the table is empty.
	SeedDefaults(ctx context.Context) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{db: db}
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).Order("id").Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepoImpl) SeedDefaults(ctx context.Context) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(defaultCatalog()).Error
}

func defaultCatalog() []*model.Product {
	return []*model.Product{
		{
			ID:          "ube-ensaymada",
			Name:        "Ube Ensaymada",
			Description: "Soft, sweet bread with ube (purple yam) and cheese.",
			Price:       2.50,
			ImageURL:    "/images/ube-ensaymada.jpg",
		},
		{
			ID:          "leche-flan",
			Name:        "Leche Flan",
			Description: "Creamy caramel custard, a classic Filipino dessert.",
			Price:       3.00,
			ImageURL:    "/images/leche-flan.jpg",
		},
		{
			ID:          "puto",
			Name:        "Puto",
			Description: "Steamed rice cakes, often topped with cheese.",
			Price:       1.00,
			ImageURL:    "/images/puto.jpg",
		},
		{
			ID:          "kutsinta",
			Name:        "Kutsinta",
			Description: "Chewy, sticky steamed rice cakes, usually with grated coconut.",
			Price:       1.25,
			ImageURL:    "/images/kutsinta.jpg",
		},
		{
			ID:          "sapin-sapin",
			Name:        "Sapin-Sapin",
			Description: "Layered sticky rice cake with various flavors and colors.",
			Price:       3.50,
			ImageURL:    "/images/sapin-sapin.jpg",
		},
		{
			ID:          "palitaw",
			Name:        "Palitaw",
			Description: "Flat, chewy rice cakes coated with grated coconut, sesame seeds, and sugar.",
			Price:       1.75,
			ImageURL:    "/images/palitaw.jpg",
		},
	}
}
