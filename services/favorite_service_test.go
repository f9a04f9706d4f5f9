package services

import (
	"context"
	"sync"
	"testing"

	"github.com/holocron-api/apperrors"
	"github.com/holocron-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, f *fixture, email string) *models.User {
	t.Helper()
	user, err := f.credentials.Register(context.Background(), email, "password")
	require.NoError(t, err)
	return user
}

func countFavorites(t *testing.T, f *fixture) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Favorite{}).Count(&n).Error)
	return n
}

func TestFavoriteService_ToggleAlternates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := registerUser(t, f, "leia@rebellion.com")
	target := models.Target{Kind: models.KindPlanet, ID: 1}

	for i := 0; i < 4; i++ {
		result, err := f.favorites.Toggle(ctx, user.ID, target)
		require.NoError(t, err)

		wantCreated := i%2 == 0
		assert.Equal(t, wantCreated, result.Created, "call %d", i+1)

		list, err := f.favorites.ListForUser(ctx, user.ID)
		require.NoError(t, err)
		if wantCreated {
			require.Len(t, list, 1)
			require.NotNil(t, result.Favorite.Planet)
			assert.Equal(t, "Tatooine", result.Favorite.Planet.Name)
		} else {
			assert.Empty(t, list)
		}
	}
}

func TestFavoriteService_ToggleUnknownTarget(t *testing.T) {
	f := newFixture(t)
	user := registerUser(t, f, "leia@rebellion.com")

	_, err := f.favorites.Toggle(context.Background(), user.ID, models.Target{Kind: models.KindVehicle, ID: 99})
	apperrors.AssertCode(t, err, apperrors.CodeNotFound)
	assert.Zero(t, countFavorites(t, f))
}

func TestFavoriteService_DeletedOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := registerUser(t, f, "alderaan@rebellion.com")
	require.NoError(t, f.credentials.DeleteUser(ctx, user.ID))
	target := models.Target{Kind: models.KindPlanet, ID: 1}

	_, err := f.favorites.Toggle(ctx, user.ID, target)
	apperrors.AssertCode(t, err, apperrors.CodeUnauthenticated)

	_, err = f.favorites.Add(ctx, user.ID, target)
	apperrors.AssertCode(t, err, apperrors.CodeUnauthenticated)

	// an owner deleted between the check and the insert trips the foreign key
	_, err = f.favorites.create(f.db, user.ID, target)
	apperrors.AssertCode(t, err, apperrors.CodeUnauthenticated)

	assert.Zero(t, countFavorites(t, f))
}

func TestFavoriteService_Add(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := registerUser(t, f, "leia@rebellion.com")
	target := models.Target{Kind: models.KindCharacter, ID: 2}

	created, err := f.favorites.Add(ctx, user.ID, target)
	require.NoError(t, err)
	require.NotNil(t, created.Character)
	assert.Equal(t, "Leia Organa", created.Character.Name)

	_, err = f.favorites.Add(ctx, user.ID, target)
	apperrors.AssertCode(t, err, apperrors.CodeConflict)

	_, err = f.favorites.Add(ctx, user.ID, models.Target{Kind: models.KindCharacter, ID: 500})
	apperrors.AssertCode(t, err, apperrors.CodeNotFound)

	assert.EqualValues(t, 1, countFavorites(t, f))
}

func TestFavoriteService_ConcurrentAdd(t *testing.T) {
	f := newFixture(t)
	user := registerUser(t, f, "leia@rebellion.com")
	target := models.Target{Kind: models.KindVehicle, ID: 3}

	const callers = 2
	errs := make([]error, callers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.favorites.Add(context.Background(), user.ID, target)
		}(i)
	}
	close(start)
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperrors.Is(err, apperrors.CodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
	assert.EqualValues(t, 1, countFavorites(t, f))
}

func TestFavoriteService_RemoveChecksOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	leia := registerUser(t, f, "leia@rebellion.com")
	han := registerUser(t, f, "han@falcon.com")

	fav, err := f.favorites.Add(ctx, leia.ID, models.Target{Kind: models.KindPlanet, ID: 2})
	require.NoError(t, err)

	err = f.favorites.Remove(ctx, han.ID, fav.ID)
	apperrors.AssertCode(t, err, apperrors.CodeNotFound)
	assert.EqualValues(t, 1, countFavorites(t, f))

	_, err = f.favorites.Get(ctx, han.ID, fav.ID)
	apperrors.AssertCode(t, err, apperrors.CodeNotFound)

	require.NoError(t, f.favorites.Remove(ctx, leia.ID, fav.ID))
	assert.Zero(t, countFavorites(t, f))

	err = f.favorites.Remove(ctx, leia.ID, fav.ID)
	apperrors.AssertCode(t, err, apperrors.CodeNotFound)
}

func TestFavoriteService_ListEmbedsEntityByKind(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := registerUser(t, f, "leia@rebellion.com")

	targets := []models.Target{
		{Kind: models.KindCharacter, ID: 1},
		{Kind: models.KindPlanet, ID: 4},
		{Kind: models.KindVehicle, ID: 2},
	}
	for _, target := range targets {
		_, err := f.favorites.Add(ctx, user.ID, target)
		require.NoError(t, err)
	}

	list, err := f.favorites.ListForUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)

	character := list[0]
	assert.Equal(t, models.KindCharacter, character.FavoriteType)
	require.NotNil(t, character.People)
	assert.Equal(t, "Luke Skywalker", character.People.Name)
	assert.Nil(t, character.Planet)
	assert.Nil(t, character.Vehicle)

	planet := list[1]
	assert.Equal(t, models.KindPlanet, planet.FavoriteType)
	require.NotNil(t, planet.Planet)
	assert.Equal(t, "frozen", planet.Planet.Climate)
	assert.Nil(t, planet.People)
	assert.Nil(t, planet.Vehicle)

	vehicle := list[2]
	assert.Equal(t, models.KindVehicle, vehicle.FavoriteType)
	require.NotNil(t, vehicle.Vehicle)
	assert.Equal(t, "Sienar Fleet Systems", vehicle.Vehicle.Manufacturer)
	assert.Nil(t, vehicle.People)
	assert.Nil(t, vehicle.Planet)

	summary, err := f.favorites.Summary(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.TotalFavorites)
	assert.EqualValues(t, 1, summary.PeopleCount)
	assert.EqualValues(t, 1, summary.PlanetsCount)
	assert.EqualValues(t, 1, summary.VehiclesCount)

	got, err := f.favorites.Get(ctx, user.ID, planet.ID)
	require.NoError(t, err)
	assert.Equal(t, planet.TargetID, got.TargetID)
}
