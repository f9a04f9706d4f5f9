package services

import (
	"context"
	"math"

	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/dto"
	"github.com/holocron-api/models"
	"github.com/holocron-api/repositories"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// CatalogService serves read-only pages of the catalog.
type CatalogService struct {
	repo *repositories.CatalogRepository
}

func NewCatalogService(repo *repositories.CatalogRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// List returns one page of kind. Pages below 1 or past the last page come
// back empty rather than as an error, including pages whose offset would
// overflow int.
func (s *CatalogService) List(ctx context.Context, kind models.Kind, page, pageSize int) (*dto.CatalogPage, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	result := &dto.CatalogPage{
		Results:  []models.Entity{},
		Page:     page,
		PageSize: pageSize,
	}

	if page < 1 || page-1 > math.MaxInt/pageSize {
		total, err := s.repo.Count(ctx, kind)
		if err != nil {
			return nil, apperrors.Internal(err, "failed to count catalog")
		}
		result.TotalCount = total
		result.TotalPages = totalPages(total, pageSize)
		return result, nil
	}

	items, total, err := s.repo.FindWithPagination(ctx, kind, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperrors.Internal(err, "failed to list catalog")
	}
	result.Results = append(result.Results, items...)
	result.TotalCount = total
	result.TotalPages = totalPages(total, pageSize)
	return result, nil
}

// Get retrieves one entity of kind.
func (s *CatalogService) Get(ctx context.Context, kind models.Kind, id uint) (models.Entity, error) {
	entity, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperrors.NotFound("%s %d not found", displayName(kind), id)
		}
		return nil, apperrors.Internal(err, "failed to load catalog entity")
	}
	return entity, nil
}

func totalPages(total int64, pageSize int) int {
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func displayName(kind models.Kind) string {
	switch kind {
	case models.KindCharacter:
		return "Character"
	case models.KindPlanet:
		return "Planet"
	case models.KindVehicle:
		return "Vehicle"
	}
	return string(kind)
}
