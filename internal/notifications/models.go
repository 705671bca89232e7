package notifications

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Severity maps to the admin panel's toast styling.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Notification is one entry in the admin activity feed.
type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	Severity  Severity   `gorm:"not null" json:"severity"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Message is the wire shape pushed to connected admin clients.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
}
