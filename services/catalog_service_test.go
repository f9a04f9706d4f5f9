package services

import (
	"context"
	"math"
	"testing"

	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/database"
	"github.com/holocron-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	total := len(database.SampleCharacters)

	tests := []struct {
		name         string
		page, size   int
		wantSize     int
		wantResults  int
		wantFirstID  uint
		wantNumPages int
	}{
		{"first page", 1, 3, 3, 3, 1, 2},
		{"second page is partial", 2, 3, 3, total - 3, 4, 2},
		{"past the end is empty", 5, 3, 3, 0, 0, 2},
		{"page zero is empty", 0, 3, 3, 0, 0, 2},
		{"negative page is empty", -1, 3, 3, 0, 0, 2},
		{"overflowing offset is empty", math.MaxInt/4 + 2, 4, 4, 0, 0, 1},
		{"largest page is empty", math.MaxInt, 3, 3, 0, 0, 2},
		{"default size", 1, 0, DefaultPageSize, total, 1, 1},
		{"size is capped", 1, 1000, MaxPageSize, total, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.catalog.List(ctx, models.KindCharacter, tt.page, tt.size)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, page.PageSize)
			assert.EqualValues(t, total, page.TotalCount)
			assert.Equal(t, tt.wantNumPages, page.TotalPages)
			require.Len(t, page.Results, tt.wantResults)
			assert.NotNil(t, page.Results)
			if tt.wantResults > 0 {
				assert.Equal(t, tt.wantFirstID, page.Results[0].EntityID())
			}
		})
	}
}

func TestCatalogService_Get(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entity, err := f.catalog.Get(ctx, models.KindVehicle, 1)
	require.NoError(t, err)
	vehicle, ok := entity.(models.Vehicle)
	require.True(t, ok)
	assert.Equal(t, "X-wing", vehicle.Name)

	_, err = f.catalog.Get(ctx, models.KindPlanet, 404)
	apperrors.AssertCode(t, err, apperrors.CodeNotFound)
	assert.Equal(t, "Planet 404 not found", apperrors.PublicMessage(err))
}
