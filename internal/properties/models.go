package properties

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status represents the lifecycle status of a listed property
type Status string

const (
	StatusFunded  Status = "funded"
	StatusRented  Status = "rented"
	StatusSoldOut Status = "sold_out"
)

// Category groups properties for the listing navigation
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Property is a listed real-estate asset open for crowdfunding. FunderCount
// is the number of equity slots, fixed at creation; the allocation service
// treats it as read-only input.
type Property struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `gorm:"not null" json:"description"`
	CategoryID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	LocationString string         `gorm:"not null" json:"location_string"`
	Images         datatypes.JSON `gorm:"default:'[]'" json:"images"`

	// Pricing (opaque to the allocation algorithm)
	PurchasePrice      float64 `gorm:"not null" json:"purchase_price"`
	PropertyPriceTotal float64 `gorm:"not null" json:"property_price_total"`
	PropertyPrice      string  `json:"property_price"`
	Discount           string  `json:"discount"`

	// Rent
	RentalIncome float64 `json:"rental_income"`
	CurrentRent  float64 `json:"current_rent"`
	Percent      float64 `json:"percent"`

	FundedDate        *time.Time `gorm:"type:date" json:"funded_date"`
	FunderCount       int        `gorm:"not null" json:"funder_count"`
	CurrentEvaluation string     `json:"current_evaluation"`
	ServiceCharge     float64    `json:"service_charge"`

	// Estimated annualised figures shown on the listing
	EstimatedAnnualisedReturn     string `json:"estimated_annualised_return"`
	EstimatedAnnualAppreciation   string `json:"estimated_annual_appreciation"`
	EstimatedProjectedGrossYield  string `json:"estimated_projected_gross_yield"`

	Status    Status     `gorm:"not null;default:'funded';index" json:"status"`
	Approved  *time.Time `json:"approved"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
