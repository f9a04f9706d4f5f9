package dto

import "github.com/holocron-api/models"

// CatalogPage represents paginated catalog list response
type CatalogPage struct {
	Results    []models.Entity `json:"results"`
	TotalCount int64           `json:"totalCount"`
	Page       int             `json:"page"`
	PageSize   int             `json:"pageSize"`
	TotalPages int             `json:"totalPages"`
}
