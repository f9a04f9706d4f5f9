package database

import (
	"context"
	"fmt"

	"github.com/holocron-api/models"
	"gorm.io/gorm"
)

// SeedResult counts the rows inserted by SeedCatalog.
type SeedResult struct {
	Characters int
	Planets    int
	Vehicles   int
	Skipped    bool
}

// SampleCharacters, SamplePlanets and SampleVehicles are the default catalog.
var (
	SampleCharacters = []models.Character{
		{Name: "Luke Skywalker", Gender: "male", BirthYear: "19BBY", ImageURL: "https://starwars-visualguide.com/assets/img/characters/1.jpg"},
		{Name: "Leia Organa", Gender: "female", BirthYear: "19BBY", ImageURL: "https://starwars-visualguide.com/assets/img/characters/5.jpg"},
		{Name: "Darth Vader", Gender: "male", BirthYear: "41.9BBY", ImageURL: "https://starwars-visualguide.com/assets/img/characters/4.jpg"},
		{Name: "Obi-Wan Kenobi", Gender: "male", BirthYear: "57BBY", ImageURL: "https://starwars-visualguide.com/assets/img/characters/10.jpg"},
	}

	SamplePlanets = []models.Planet{
		{Name: "Tatooine", Climate: "arid", Population: "200000", ImageURL: "https://starwars-visualguide.com/assets/img/planets/1.jpg"},
		{Name: "Alderaan", Climate: "temperate", Population: "2000000000", ImageURL: "https://starwars-visualguide.com/assets/img/planets/2.jpg"},
		{Name: "Coruscant", Climate: "temperate", Population: "1000000000000", ImageURL: "https://starwars-visualguide.com/assets/img/planets/9.jpg"},
		{Name: "Hoth", Climate: "frozen", Population: "unknown", ImageURL: "https://starwars-visualguide.com/assets/img/planets/4.jpg"},
	}

	SampleVehicles = []models.Vehicle{
		{Name: "X-wing", Model: "T-65 X-wing starfighter", Manufacturer: "Incom Corporation", ImageURL: "https://starwars-visualguide.com/assets/img/vehicles/12.jpg"},
		{Name: "TIE Fighter", Model: "Twin Ion Engine/Ln starfighter", Manufacturer: "Sienar Fleet Systems", ImageURL: "https://starwars-visualguide.com/assets/img/vehicles/13.jpg"},
		{Name: "Millennium Falcon", Model: "YT-1300 light freighter", Manufacturer: "Corellian Engineering Corporation", ImageURL: "https://starwars-visualguide.com/assets/img/vehicles/10.jpg"},
		{Name: "Imperial Star Destroyer", Model: "Imperial I-class Star Destroyer", Manufacturer: "Kuat Drive Yards", ImageURL: "https://starwars-visualguide.com/assets/img/vehicles/3.jpg"},
	}
)

// SeedCatalog inserts the sample catalog unless characters already exist.
func SeedCatalog(ctx context.Context, db *gorm.DB) (SeedResult, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Character{}).Count(&existing).Error; err != nil {
		return SeedResult{}, fmt.Errorf("failed to count characters: %w", err)
	}
	if existing > 0 {
		return SeedResult{Skipped: true}, nil
	}

	// Copy so repeated seeding of fresh databases never shares assigned IDs.
	characters := append([]models.Character(nil), SampleCharacters...)
	planets := append([]models.Planet(nil), SamplePlanets...)
	vehicles := append([]models.Vehicle(nil), SampleVehicles...)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&characters).Error; err != nil {
			return fmt.Errorf("failed to seed characters: %w", err)
		}
		if err := tx.Create(&planets).Error; err != nil {
			return fmt.Errorf("failed to seed planets: %w", err)
		}
		if err := tx.Create(&vehicles).Error; err != nil {
			return fmt.Errorf("failed to seed vehicles: %w", err)
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	return SeedResult{
		Characters: len(characters),
		Planets:    len(planets),
		Vehicles:   len(vehicles),
	}, nil
}
