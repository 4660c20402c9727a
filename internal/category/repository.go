package category

import (
	"gorm.io/gorm"
)

type Repository interface {
	MapBySlug() (map[string]*Category, error)
	ListOrderedByName() ([]Category, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// MapBySlug loads every category keyed by its slug, the natural key used to
// match uploaded rows against the store.
func (r *repository) MapBySlug() (map[string]*Category, error) {
	var categories []*Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, err
	}

	result := make(map[string]*Category, len(categories))
	for _, c := range categories {
		result[c.Slug] = c
	}
	return result, nil
}

func (r *repository) ListOrderedByName() ([]Category, error) {
	var categories []Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
