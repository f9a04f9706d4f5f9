package repositories

import (
	"context"
	"fmt"

	"github.com/holocron-api/models"
	"gorm.io/gorm"
)

// CatalogRepository reads the characters, planets and vehicles tables.
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a new catalog repository instance
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// FindWithPagination returns one page of kind ordered by ID, plus the total row count.
func (r *CatalogRepository) FindWithPagination(ctx context.Context, kind models.Kind, offset, limit int) ([]models.Entity, int64, error) {
	db := r.db.WithContext(ctx)
	switch kind {
	case models.KindCharacter:
		return findPage[models.Character](db, offset, limit)
	case models.KindPlanet:
		return findPage[models.Planet](db, offset, limit)
	case models.KindVehicle:
		return findPage[models.Vehicle](db, offset, limit)
	}
	return nil, 0, fmt.Errorf("unknown catalog kind %q", kind)
}

// Count returns the number of rows of kind.
func (r *CatalogRepository) Count(ctx context.Context, kind models.Kind) (int64, error) {
	model, err := modelFor(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(model).Count(&count).Error
	return count, err
}

// FindByID retrieves one entity; gorm.ErrRecordNotFound when absent.
func (r *CatalogRepository) FindByID(ctx context.Context, kind models.Kind, id uint) (models.Entity, error) {
	db := r.db.WithContext(ctx)
	switch kind {
	case models.KindCharacter:
		return findOne[models.Character](db, id)
	case models.KindPlanet:
		return findOne[models.Planet](db, id)
	case models.KindVehicle:
		return findOne[models.Vehicle](db, id)
	}
	return nil, fmt.Errorf("unknown catalog kind %q", kind)
}

func modelFor(kind models.Kind) (interface{}, error) {
	switch kind {
	case models.KindCharacter:
		return &models.Character{}, nil
	case models.KindPlanet:
		return &models.Planet{}, nil
	case models.KindVehicle:
		return &models.Vehicle{}, nil
	}
	return nil, fmt.Errorf("unknown catalog kind %q", kind)
}

func findPage[T models.Entity](db *gorm.DB, offset, limit int) ([]models.Entity, int64, error) {
	var total int64
	if err := db.Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []T
	if err := db.Order("id ASC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	entities := make([]models.Entity, 0, len(rows))
	for _, row := range rows {
		entities = append(entities, row)
	}
	return entities, total, nil
}

func findOne[T models.Entity](db *gorm.DB, id uint) (models.Entity, error) {
	var row T
	if err := db.First(&row, id).Error; err != nil {
		return nil, err
	}
	return row, nil
}
