package receipts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status represents the review state of a payment receipt
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Receipt is a user's request to purchase CountShares share-units in a
// property, backed by an uploaded payment proof. It is mutated exactly once:
// pending to accepted or pending to rejected.
type Receipt struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	CountShares     int        `gorm:"not null" json:"count_shares"`
	Method          string     `gorm:"not null" json:"method"`
	Image           string     `gorm:"not null" json:"image"`
	ReceiptNumber   string     `gorm:"not null" json:"receipt_number"`
	DepositDate     *time.Time `gorm:"type:date" json:"deposit_date"`
	DepositedAmount string     `gorm:"not null" json:"deposited_amount"`
	Status          Status     `gorm:"not null;default:'pending';index" json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
