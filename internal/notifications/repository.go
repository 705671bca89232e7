package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"aqarshare/admin-portal/admin-portal-backend/internal/database"
)

type Repository interface {
	Create(ctx context.Context, notification *Notification) error
	List(ctx context.Context, limit, offset int) ([]Notification, error)
	// MarkRead stamps the notification and reports whether a row changed.
	MarkRead(ctx context.Context, id uuid.UUID) (bool, error)
	CountUnread(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(ctx context.Context, notification *Notification) error {
	return database.FromContext(ctx, r.db).Create(notification).Error
}

func (r *gormRepository) List(ctx context.Context, limit, offset int) ([]Notification, error) {
	var list []Notification
	err := database.FromContext(ctx, r.db).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, err
}

func (r *gormRepository) MarkRead(ctx context.Context, id uuid.UUID) (bool, error) {
	result := database.FromContext(ctx, r.db).
		Model(&Notification{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", time.Now())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *gormRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := database.FromContext(ctx, r.db).
		Model(&Notification{}).
		Where("read_at IS NULL").
		Count(&count).Error
	return count, err
}
