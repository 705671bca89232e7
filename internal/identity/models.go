package identity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the review state of an identification document
type Status string

const (
	StatusPending  Status = "pending"
	StatusValid    Status = "valid"
	StatusNotValid Status = "not_valid"
)

// DocumentType represents the kind of identification document
type DocumentType string

const (
	TypePassport   DocumentType = "passport"
	TypeNationalID DocumentType = "national_id"
)

// Identification is a user-submitted identity document awaiting admin review.
// FrontSide/BackSide hold storage keys of the uploaded images.
type Identification struct {
	ID        uuid.UUID    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"user_id"`
	FrontSide string       `gorm:"not null" json:"front_side"`
	BackSide  string       `gorm:"not null" json:"back_side"`
	Type      DocumentType `gorm:"not null" json:"type"`
	Status    Status       `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

func (i *Identification) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
