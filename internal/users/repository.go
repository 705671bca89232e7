package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqarshare/admin-portal/admin-portal-backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, user *User) error {
	return database.FromContext(ctx, r.db).Create(user).Error
}

func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := database.FromContext(ctx, r.db).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := database.FromContext(ctx, r.db).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) Update(ctx context.Context, user *User) error {
	return database.FromContext(ctx, r.db).Save(user).Error
}
