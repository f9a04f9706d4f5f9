package services

import (
	"context"
	"log/slog"

	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/models"
	"github.com/holocron-api/repositories"
	"gorm.io/gorm"
)

func errUserGone() error {
	return apperrors.Unauthenticated("User no longer exists")
}

// ToggleResult reports whether a toggle created or removed the favorite.
type ToggleResult struct {
	Created  bool
	Favorite *models.Favorite
}

// FavoriteService is the favorite registry: toggle, explicit add and
// remove, and owner-scoped reads.
type FavoriteService struct {
	repo   *repositories.FavoriteRepository
	logger *slog.Logger
}

func NewFavoriteService(repo *repositories.FavoriteRepository, logger *slog.Logger) *FavoriteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoriteService{repo: repo, logger: logger}
}

// Toggle creates the favorite when absent and removes it when present.
// Repeating the same call alternates between the two outcomes.
func (s *FavoriteService) Toggle(ctx context.Context, userID uint, target models.Target) (*ToggleResult, error) {
	var result ToggleResult
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.requireOwner(tx, userID); err != nil {
			return err
		}
		if err := s.requireTarget(tx, target); err != nil {
			return err
		}

		existing, err := s.repo.FindByTarget(tx, userID, target)
		switch {
		case err == nil:
			if _, err := s.repo.DeleteByID(tx, existing.ID); err != nil {
				return apperrors.Internal(err, "failed to remove favorite")
			}
			result = ToggleResult{Created: false, Favorite: &existing}
			return nil
		case !repositories.IsNotFound(err):
			return apperrors.Internal(err, "failed to look up favorite")
		}

		created, err := s.create(tx, userID, target)
		if err != nil {
			return err
		}
		result = ToggleResult{Created: true, Favorite: created}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("favorite toggled", "user_id", userID, "target", target.String(), "created", result.Created)
	return &result, nil
}

// Add creates a favorite; an existing (user, target) pair is a conflict.
func (s *FavoriteService) Add(ctx context.Context, userID uint, target models.Target) (*models.Favorite, error) {
	var created *models.Favorite
	err := s.repo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := s.requireOwner(tx, userID); err != nil {
			return err
		}
		if err := s.requireTarget(tx, target); err != nil {
			return err
		}

		_, err := s.repo.FindByTarget(tx, userID, target)
		if err == nil {
			return apperrors.Conflict("Favorite already exists")
		}
		if !repositories.IsNotFound(err) {
			return apperrors.Internal(err, "failed to look up favorite")
		}

		created, err = s.create(tx, userID, target)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("favorite added", "user_id", userID, "target", target.String(), "favorite_id", created.ID)
	return created, nil
}

// Remove deletes a favorite owned by userID. Foreign and missing favorites
// are both reported as not found.
func (s *FavoriteService) Remove(ctx context.Context, userID, favoriteID uint) error {
	n, err := s.repo.DeleteOwned(ctx, favoriteID, userID)
	if err != nil {
		return apperrors.Internal(err, "failed to delete favorite")
	}
	if n == 0 {
		return apperrors.NotFound("Favorite not found")
	}
	s.logger.Info("favorite removed", "user_id", userID, "favorite_id", favoriteID)
	return nil
}

// ListForUser returns the user's favorites with their entities embedded.
func (s *FavoriteService) ListForUser(ctx context.Context, userID uint) ([]dto.FavoriteResponse, error) {
	favorites, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list favorites")
	}

	out := make([]dto.FavoriteResponse, 0, len(favorites))
	for i := range favorites {
		resp, err := dto.NewFavoriteResponse(&favorites[i])
		if err != nil {
			return nil, apperrors.Internal(err, "corrupt favorite row")
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get returns one favorite owned by userID.
func (s *FavoriteService) Get(ctx context.Context, userID, favoriteID uint) (*dto.FavoriteResponse, error) {
	favorite, err := s.repo.FindOwned(ctx, favoriteID, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("Favorite not found")
		}
		return nil, apperrors.Internal(err, "failed to load favorite")
	}
	resp, err := dto.NewFavoriteResponse(&favorite)
	if err != nil {
		return nil, apperrors.Internal(err, "corrupt favorite row")
	}
	return &resp, nil
}

// Summary counts the user's favorites per kind.
func (s *FavoriteService) Summary(ctx context.Context, userID uint) (dto.FavoritesSummary, error) {
	counts, err := s.repo.CountByKind(ctx, userID)
	if err != nil {
		return dto.FavoritesSummary{}, apperrors.Internal(err, "failed to count favorites")
	}
	summary := dto.FavoritesSummary{
		PeopleCount:   counts[models.KindCharacter],
		PlanetsCount:  counts[models.KindPlanet],
		VehiclesCount: counts[models.KindVehicle],
	}
	summary.TotalFavorites = summary.PeopleCount + summary.PlanetsCount + summary.VehiclesCount
	return summary, nil
}

// requireOwner rejects tokens that outlived their account.
func (s *FavoriteService) requireOwner(tx *gorm.DB, userID uint) error {
	ok, err := s.repo.OwnerExists(tx, userID)
	if err != nil {
		return apperrors.Internal(err, "failed to look up user")
	}
	if !ok {
		return errUserGone()
	}
	return nil
}

func (s *FavoriteService) requireTarget(tx *gorm.DB, target models.Target) error {
	ok, err := s.repo.TargetExists(tx, target)
	if err != nil {
		return apperrors.Internal(err, "failed to look up catalog entity")
	}
	if !ok {
		return apperrors.NotFound("%s %d not found", displayName(target.Kind), target.ID)
	}
	return nil
}

func (s *FavoriteService) create(tx *gorm.DB, userID uint, target models.Target) (*models.Favorite, error) {
	favorite, err := models.NewFavorite(userID, target)
	if err != nil {
		return nil, apperrors.InvalidInput("%s", err.Error())
	}
	if err := s.repo.Create(tx, &favorite); err != nil {
		switch {
		case repositories.IsUniqueViolation(err):
			return nil, apperrors.Conflict("Favorite already exists")
		case repositories.IsForeignKeyViolation(err):
			return nil, errUserGone()
		}
		return nil, apperrors.Internal(err, "failed to create favorite")
	}
	return &favorite, nil
}
