package models

// Entity is implemented by the three read-only catalog kinds.
type Entity interface {
	EntityID() uint
	EntityKind() Kind
}

// Character is a person from the catalog. Stored in the "people" table.
type Character struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"type:varchar(120);not null"`
	Gender    string `json:"gender" gorm:"type:varchar(20)"`
	BirthYear string `json:"birth_year" gorm:"type:varchar(20)"`
	ImageURL  string `json:"image_url" gorm:"type:varchar(500)"`
}

func (Character) TableName() string { return "people" }

func (c Character) EntityID() uint   { return c.ID }
func (c Character) EntityKind() Kind { return KindCharacter }

// Planet is a planet from the catalog.
type Planet struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"type:varchar(120);not null"`
	Climate    string `json:"climate" gorm:"type:varchar(120)"`
	Population string `json:"population" gorm:"type:varchar(120)"`
	ImageURL   string `json:"image_url" gorm:"type:varchar(500)"`
}

func (p Planet) EntityID() uint   { return p.ID }
func (p Planet) EntityKind() Kind { return KindPlanet }

// Vehicle is a vehicle from the catalog.
type Vehicle struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"type:varchar(120);not null"`
	Model        string `json:"model" gorm:"type:varchar(120)"`
	Manufacturer string `json:"manufacturer" gorm:"type:varchar(120)"`
	ImageURL     string `json:"image_url" gorm:"type:varchar(500)"`
}

func (v Vehicle) EntityID() uint   { return v.ID }
func (v Vehicle) EntityKind() Kind { return KindVehicle }
