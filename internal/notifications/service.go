package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
)

// Broadcaster pushes a message to connected admin clients.
type Broadcaster interface {
	Broadcast(msg Message)
}

type Service interface {
	// Success and Warning persist a feed entry and push it to connected
	// clients. They never fail the calling operation; delivery problems
	// are logged and swallowed.
	Success(ctx context.Context, title string)
	Warning(ctx context.Context, title string)
	List(ctx context.Context, limit, offset int) ([]Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

type feedService struct {
	repo        Repository
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewService(repo Repository, broadcaster Broadcaster, logger *zap.Logger) Service {
	return &feedService{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *feedService) Success(ctx context.Context, title string) {
	s.emit(ctx, title, SeveritySuccess)
}

func (s *feedService) Warning(ctx context.Context, title string) {
	s.emit(ctx, title, SeverityWarning)
}

func (s *feedService) emit(ctx context.Context, title string, severity Severity) {
	notification := &Notification{
		ID:       uuid.New(),
		Title:    title,
		Severity: severity,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		s.logger.Warn("failed to persist notification",
			zap.String("title", title),
			zap.Error(err))
		return
	}

	s.broadcaster.Broadcast(Message{
		ID:        notification.ID,
		Title:     title,
		Severity:  severity,
		Timestamp: time.Now(),
	})
}

func (s *feedService) List(ctx context.Context, limit, offset int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *feedService) MarkRead(ctx context.Context, id uuid.UUID) error {
	changed, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if !changed {
		return fmt.Errorf("notification %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *feedService) CountUnread(ctx context.Context) (int64, error) {
	return s.repo.CountUnread(ctx)
}
