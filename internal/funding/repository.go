package funding

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqarshare/admin-portal/admin-portal-backend/internal/database"
)

type Repository interface {
	CreateBatch(ctx context.Context, funders []*Funder) error
	CountByPropertyAndStatus(ctx context.Context, propertyID uuid.UUID, status Status) (int64, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]Funder, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Funder, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Funder, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateBatch(ctx context.Context, funders []*Funder) error {
	if len(funders) == 0 {
		return nil
	}
	return database.FromContext(ctx, r.db).Create(funders).Error
}

func (r *gormRepository) CountByPropertyAndStatus(ctx context.Context, propertyID uuid.UUID, status Status) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&Funder{}).
		Where("property_id = ? AND status = ?", propertyID, status).
		Count(&count).Error
	return count, err
}

func (r *gormRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]Funder, error) {
	var funders []Funder
	err := database.FromContext(ctx, r.db).
		Where("property_id = ?", propertyID).
		Order("created_at").
		Find(&funders).Error
	return funders, err
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Funder, error) {
	var funders []Funder
	err := database.FromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&funders).Error
	return funders, err
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Funder, error) {
	var funder Funder
	err := database.FromContext(ctx, r.db).First(&funder, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &funder, nil
}
