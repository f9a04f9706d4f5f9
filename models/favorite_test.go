package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"people":     KindCharacter,
		"Person":     KindCharacter,
		"characters": KindCharacter,
		"planet":     KindPlanet,
		"PLANETS":    KindPlanet,
		" vehicle ":  KindVehicle,
	}
	for in, want := range tests {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseKind("starship")
	assert.False(t, ok)
}

func TestFavoriteTarget(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			fav, err := NewFavorite(7, Target{Kind: kind, ID: 3})
			require.NoError(t, err)
			assert.Equal(t, uint(7), fav.UserID)

			target, err := fav.Target()
			require.NoError(t, err)
			assert.Equal(t, Target{Kind: kind, ID: 3}, target)
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		_, err := NewFavorite(1, Target{Kind: "starship", ID: 1})
		assert.Error(t, err)
	})

	t.Run("no reference", func(t *testing.T) {
		_, err := (&Favorite{ID: 1}).Target()
		assert.Error(t, err)
	})

	t.Run("two references", func(t *testing.T) {
		a, b := uint(1), uint(2)
		_, err := (&Favorite{ID: 1, PlanetID: &a, VehicleID: &b}).Target()
		assert.Error(t, err)
	})
}

func TestUserRoles(t *testing.T) {
	u := User{Roles: []Role{{Name: "editor"}, {Name: RoleAdmin}}}
	assert.True(t, u.HasRole(RoleAdmin))
	assert.False(t, u.HasRole("owner"))
	assert.Equal(t, []string{"editor", "admin"}, u.RoleNames())
	assert.Equal(t, []string{}, (&User{}).RoleNames())
}
