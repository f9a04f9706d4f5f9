package models

import (
	"fmt"
	"strings"
	"time"
)

// Kind names which catalog collection a favorite points into.
type Kind string

const (
	KindCharacter Kind = "character"
	KindPlanet    Kind = "planet"
	KindVehicle   Kind = "vehicle"
)

// Kinds lists every catalog kind in display order.
var Kinds = []Kind{KindCharacter, KindPlanet, KindVehicle}

var kindAliases = map[string]Kind{
	"character":  KindCharacter,
	"characters": KindCharacter,
	"people":     KindCharacter,
	"person":     KindCharacter,
	"planet":     KindPlanet,
	"planets":    KindPlanet,
	"vehicle":    KindVehicle,
	"vehicles":   KindVehicle,
}

// ParseKind accepts the singular, plural and "people" spellings used in routes.
func ParseKind(s string) (Kind, bool) {
	kind, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	return kind, ok
}

// Target is the tagged reference a favorite points at.
type Target struct {
	Kind Kind `json:"kind"`
	ID   uint `json:"target_id"`
}

func (t Target) String() string {
	return fmt.Sprintf("%s/%d", t.Kind, t.ID)
}

// Favorite links a user to exactly one catalog entity. The three nullable
// columns keep real foreign keys; exactly one of them is set.
type Favorite struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index;uniqueIndex:idx_favorites_user_character;uniqueIndex:idx_favorites_user_planet;uniqueIndex:idx_favorites_user_vehicle"`
	CharacterID *uint     `gorm:"uniqueIndex:idx_favorites_user_character;check:chk_favorites_single_target,(CASE WHEN character_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN planet_id IS NULL THEN 0 ELSE 1 END) + (CASE WHEN vehicle_id IS NULL THEN 0 ELSE 1 END) = 1"`
	PlanetID    *uint     `gorm:"uniqueIndex:idx_favorites_user_planet"`
	VehicleID   *uint     `gorm:"uniqueIndex:idx_favorites_user_vehicle"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	// Virtual fields for preload
	Character *Character `gorm:"foreignKey:CharacterID"`
	Planet    *Planet    `gorm:"foreignKey:PlanetID"`
	Vehicle   *Vehicle   `gorm:"foreignKey:VehicleID"`
}

// NewFavorite builds an unsaved favorite for target.
func NewFavorite(userID uint, target Target) (Favorite, error) {
	fav := Favorite{UserID: userID}
	id := target.ID
	switch target.Kind {
	case KindCharacter:
		fav.CharacterID = &id
	case KindPlanet:
		fav.PlanetID = &id
	case KindVehicle:
		fav.VehicleID = &id
	default:
		return Favorite{}, fmt.Errorf("unknown favorite kind %q", target.Kind)
	}
	return fav, nil
}

// Target resolves which of the three references is set.
func (f *Favorite) Target() (Target, error) {
	var targets []Target
	if f.CharacterID != nil {
		targets = append(targets, Target{Kind: KindCharacter, ID: *f.CharacterID})
	}
	if f.PlanetID != nil {
		targets = append(targets, Target{Kind: KindPlanet, ID: *f.PlanetID})
	}
	if f.VehicleID != nil {
		targets = append(targets, Target{Kind: KindVehicle, ID: *f.VehicleID})
	}
	if len(targets) != 1 {
		return Target{}, fmt.Errorf("favorite %d references %d targets, want exactly 1", f.ID, len(targets))
	}
	return targets[0], nil
}

// TargetColumn returns the column holding references of the given kind.
func TargetColumn(kind Kind) (string, error) {
	switch kind {
	case KindCharacter:
		return "character_id", nil
	case KindPlanet:
		return "planet_id", nil
	case KindVehicle:
		return "vehicle_id", nil
	}
	return "", fmt.Errorf("unknown favorite kind %q", kind)
}
