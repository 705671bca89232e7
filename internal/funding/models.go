package funding

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents whether a share-slot is confirmed or waitlisted
type Status string

const (
	StatusFunder  Status = "funder"
	StatusPending Status = "pending"
)

// Funder is one purchased share-unit in a property, linking the buying user
// to the property. A receipt for N shares produces up to N Funder rows. Rows
// are created only by the allocation service and never updated in place.
type Funder struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;index:idx_funders_property_status" json:"property_id"`
	Status     Status    `gorm:"not null;index:idx_funders_property_status" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Funder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
