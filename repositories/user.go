package repositories

import (
	"context"

	"github.com/holocron-api/models"
	"gorm.io/gorm"
)

// UserRepository handles database operations for users and roles
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// DB returns the database instance
func (r *UserRepository) DB() *gorm.DB {
	return r.db
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID retrieves a user with roles by ID
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").First(&user, id).Error
	return user, err
}

// FindByEmail retrieves a user by exact, case-sensitive email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("Roles").Where("email = ?", email).First(&user).Error
	return user, err
}

// FindAll retrieves every user ordered by ID
func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Preload("Roles").Order("id").Find(&users).Error
	return users, err
}

// UpdatePassword stores a new password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("password", hash)
	return result.RowsAffected, result.Error
}

// UpdateActive sets the active flag.
func (r *UserRepository) UpdateActive(ctx context.Context, id uint, active bool) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	return result.RowsAffected, result.Error
}

// FindOrCreateRole returns the named role, creating it on first use.
func (r *UserRepository) FindOrCreateRole(ctx context.Context, name string) (models.Role, error) {
	role := models.Role{Name: name}
	err := r.db.WithContext(ctx).
		Where(models.Role{Name: name}).
		Attrs(models.Role{Description: name + " role"}).
		FirstOrCreate(&role).Error
	return role, err
}

// AddRole attaches role to the user; attaching an existing role is a no-op.
func (r *UserRepository) AddRole(ctx context.Context, user *models.User, role models.Role) error {
	if user.HasRole(role.Name) {
		return nil
	}
	return r.db.WithContext(ctx).Model(user).Association("Roles").Append(&role)
}

// Delete removes a user and everything they own in one transaction.
func (r *UserRepository) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM roles_users WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.User{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}

// CountFavorites counts favorites per user.
func (r *UserRepository) CountFavorites(ctx context.Context) (map[uint]int64, error) {
	type favoriteCount struct {
		UserID uint
		Count  int64
	}
	var rows []favoriteCount
	err := r.db.WithContext(ctx).Model(&models.Favorite{}).
		Select("user_id, COUNT(*) AS count").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}
