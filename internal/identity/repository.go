package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqarshare/admin-portal/admin-portal-backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, ident *Identification) error
	GetByID(ctx context.Context, id uuid.UUID) (*Identification, error)
	List(ctx context.Context, status *Status) ([]Identification, error)
	Update(ctx context.Context, ident *Identification) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, ident *Identification) error {
	return database.FromContext(ctx, r.db).Create(ident).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Identification, error) {
	var ident Identification
	err := database.FromContext(ctx, r.db).First(&ident, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ident, nil
}

func (r *gormRepository) List(ctx context.Context, status *Status) ([]Identification, error) {
	var idents []Identification
	query := database.FromContext(ctx, r.db).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&idents).Error
	return idents, err
}

func (r *gormRepository) Update(ctx context.Context, ident *Identification) error {
	return database.FromContext(ctx, r.db).Save(ident).Error
}
