package repositories

import (
	"context"

	"github.com/holocron-api/models"
	"gorm.io/gorm"
)

// FavoriteRepository handles database operations for favorites. Methods
// taking a *gorm.DB run inside a caller's transaction.
type FavoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository instance
func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Transaction runs fn in a database transaction.
func (r *FavoriteRepository) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func preloadTargets(db *gorm.DB) *gorm.DB {
	return db.Preload("Character").Preload("Planet").Preload("Vehicle")
}

// FindByUserID retrieves a user's favorites with their targets, oldest first.
func (r *FavoriteRepository) FindByUserID(ctx context.Context, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := preloadTargets(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&favorites).Error
	return favorites, err
}

// FindOwned retrieves a favorite only if it belongs to userID.
func (r *FavoriteRepository) FindOwned(ctx context.Context, id, userID uint) (models.Favorite, error) {
	var favorite models.Favorite
	err := preloadTargets(r.db.WithContext(ctx)).
		Where("id = ? AND user_id = ?", id, userID).
		First(&favorite).Error
	return favorite, err
}

// TargetExists checks within tx that target resolves to a catalog row.
func (r *FavoriteRepository) TargetExists(tx *gorm.DB, target models.Target) (bool, error) {
	model, err := modelFor(target.Kind)
	if err != nil {
		return false, err
	}
	var count int64
	err = tx.Model(model).Where("id = ?", target.ID).Count(&count).Error
	return count > 0, err
}

// OwnerExists reports whether userID still has an account, within tx.
func (r *FavoriteRepository) OwnerExists(tx *gorm.DB, userID uint) (bool, error) {
	var count int64
	err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error
	return count > 0, err
}

// FindByTarget looks up the user's favorite for target within tx.
func (r *FavoriteRepository) FindByTarget(tx *gorm.DB, userID uint, target models.Target) (models.Favorite, error) {
	column, err := models.TargetColumn(target.Kind)
	if err != nil {
		return models.Favorite{}, err
	}
	var favorite models.Favorite
	err = tx.Where("user_id = ? AND "+column+" = ?", userID, target.ID).First(&favorite).Error
	return favorite, err
}

// Create inserts favorite within tx and loads its target.
func (r *FavoriteRepository) Create(tx *gorm.DB, favorite *models.Favorite) error {
	if err := tx.Create(favorite).Error; err != nil {
		return err
	}
	return preloadTargets(tx).First(favorite, favorite.ID).Error
}

// DeleteByID removes a favorite within tx.
func (r *FavoriteRepository) DeleteByID(tx *gorm.DB, id uint) (int64, error) {
	result := tx.Delete(&models.Favorite{}, id)
	return result.RowsAffected, result.Error
}

// DeleteOwned removes a favorite only if it belongs to userID.
func (r *FavoriteRepository) DeleteOwned(ctx context.Context, id, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}

// CountByKind counts a user's favorites per target kind.
func (r *FavoriteRepository) CountByKind(ctx context.Context, userID uint) (map[models.Kind]int64, error) {
	var row struct {
		Characters int64
		Planets    int64
		Vehicles   int64
	}
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Select("COUNT(character_id) AS characters, COUNT(planet_id) AS planets, COUNT(vehicle_id) AS vehicles").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return map[models.Kind]int64{
		models.KindCharacter: row.Characters,
		models.KindPlanet:    row.Planets,
		models.KindVehicle:   row.Vehicles,
	}, nil
}
