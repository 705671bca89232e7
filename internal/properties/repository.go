package properties

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"aqarshare/admin-portal/admin-portal-backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, property *Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	// GetByIDForUpdate loads the property with its row locked for the
	// duration of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Property, error)
	List(ctx context.Context, status *Status) ([]Property, error)
	Update(ctx context.Context, property *Property) error

	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]Category, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, property *Property) error {
	return database.FromContext(ctx, r.db).Create(property).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	var property Property
	err := database.FromContext(ctx, r.db).First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Property, error) {
	var property Property
	err := database.FromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *gormRepository) List(ctx context.Context, status *Status) ([]Property, error) {
	var props []Property
	query := database.FromContext(ctx, r.db).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Find(&props).Error
	return props, err
}

func (r *gormRepository) Update(ctx context.Context, property *Property) error {
	return database.FromContext(ctx, r.db).Save(property).Error
}

func (r *gormRepository) CreateCategory(ctx context.Context, category *Category) error {
	return database.FromContext(ctx, r.db).Create(category).Error
}

func (r *gormRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	err := database.FromContext(ctx, r.db).Order("name").Find(&categories).Error
	return categories, err
}
