package receipts

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqarshare/admin-portal/admin-portal-backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, receipt *Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*Receipt, error)
	List(ctx context.Context, status *Status) ([]Receipt, error)
	// TransitionStatus flips a receipt from one status to another. It
	// reports whether a row actually changed, which is the exactly-once
	// guard against concurrent double-acceptance.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, receipt *Receipt) error {
	return database.FromContext(ctx, r.db).Create(receipt).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	var receipt Receipt
	err := database.FromContext(ctx, r.db).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (r *gormRepository) List(ctx context.Context, status *Status) ([]Receipt, error) {
	var receipts []Receipt
	query := database.FromContext(ctx, r.db).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&receipts).Error
	return receipts, err
}

func (r *gormRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to Status) (bool, error) {
	result := database.FromContext(ctx, r.db).
		Model(&Receipt{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
