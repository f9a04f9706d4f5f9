package dto

import (
	"fmt"
	"time"

	"github.com/holocron-api/models"
)

// AddFavoriteRequest names exactly one target, either in the legacy
// people_id/planet_id/vehicle_id form or as kind + target_id.
type AddFavoriteRequest struct {
	PeopleID  *uint  `json:"people_id"`
	PlanetID  *uint  `json:"planet_id"`
	VehicleID *uint  `json:"vehicle_id"`
	Kind      string `json:"kind"`
	TargetID  *uint  `json:"target_id"`
}

// Target resolves the request to a single target.
func (r AddFavoriteRequest) Target() (models.Target, error) {
	var targets []models.Target
	if r.PeopleID != nil {
		targets = append(targets, models.Target{Kind: models.KindCharacter, ID: *r.PeopleID})
	}
	if r.PlanetID != nil {
		targets = append(targets, models.Target{Kind: models.KindPlanet, ID: *r.PlanetID})
	}
	if r.VehicleID != nil {
		targets = append(targets, models.Target{Kind: models.KindVehicle, ID: *r.VehicleID})
	}
	if r.Kind != "" || r.TargetID != nil {
		kind, ok := models.ParseKind(r.Kind)
		if !ok {
			return models.Target{}, fmt.Errorf("unknown favorite kind %q", r.Kind)
		}
		if r.TargetID == nil {
			return models.Target{}, fmt.Errorf("target_id is required with kind")
		}
		targets = append(targets, models.Target{Kind: kind, ID: *r.TargetID})
	}
	if len(targets) != 1 {
		return models.Target{}, fmt.Errorf("exactly one favorite type (people_id, planet_id, or vehicle_id) must be provided")
	}
	return targets[0], nil
}

// FavoriteResponse embeds the resolved entity under the key matching its
// kind; the other two keys are null.
type FavoriteResponse struct {
	ID           uint              `json:"id"`
	UserID       uint              `json:"user_id"`
	FavoriteType models.Kind       `json:"favorite_type"`
	TargetID     uint              `json:"target_id"`
	People       *models.Character `json:"people"`
	Planet       *models.Planet    `json:"planet"`
	Vehicle      *models.Vehicle   `json:"vehicle"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewFavoriteResponse converts a favorite whose target has been preloaded.
func NewFavoriteResponse(f *models.Favorite) (FavoriteResponse, error) {
	target, err := f.Target()
	if err != nil {
		return FavoriteResponse{}, err
	}

	resp := FavoriteResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		FavoriteType: target.Kind,
		TargetID:     target.ID,
		CreatedAt:    f.CreatedAt,
	}
	switch target.Kind {
	case models.KindCharacter:
		resp.People = f.Character
	case models.KindPlanet:
		resp.Planet = f.Planet
	case models.KindVehicle:
		resp.Vehicle = f.Vehicle
	}
	return resp, nil
}

// ToggleResponse reports the outcome of a toggle call.
type ToggleResponse struct {
	Msg       string            `json:"msg"`
	Favorited bool              `json:"favorited"`
	Favorite  *FavoriteResponse `json:"favorite,omitempty"`
}
