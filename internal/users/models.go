package users

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a platform account. IdentificationVerifiedAt is stamped by
// the identity verification service when a submitted document is approved.
type User struct {
	ID                       uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                     string     `gorm:"not null" json:"name"`
	Email                    string     `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash             string     `gorm:"not null" json:"-"`
	Role                     string     `gorm:"not null;default:'funder'" json:"role"`
	IdentificationVerifiedAt *time.Time `json:"identification_verified_at"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`
}

const (
	RoleAdmin  = "admin"
	RoleFunder = "funder"
)

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
