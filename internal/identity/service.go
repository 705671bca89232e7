package identity

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/database"
	"aqarshare/admin-portal/admin-portal-backend/internal/users"
	"aqarshare/admin-portal/admin-portal-backend/pkg/workflows"
)

// Notifier delivers admin-panel confirmations; fire-and-forget.
type Notifier interface {
	Success(ctx context.Context, title string)
	Warning(ctx context.Context, title string)
}

// ImageStore uploads document images and returns the stored object key.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type SubmitRequest struct {
	UserID    uuid.UUID
	Type      DocumentType
	FrontSide io.Reader
	BackSide  io.Reader
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Identification, error)
	Get(ctx context.Context, id uuid.UUID) (*Identification, error)
	List(ctx context.Context, status *Status) ([]Identification, error)
	Approve(ctx context.Context, id uuid.UUID) (*Identification, error)
	Reject(ctx context.Context, id uuid.UUID) (*Identification, error)
}

type verificationService struct {
	repo         Repository
	userRepo     users.Repository
	tx           database.TxRunner
	notifier     Notifier
	images       ImageStore
	stateMachine *workflows.StateMachine
}

func NewService(repo Repository, userRepo users.Repository, tx database.TxRunner, notifier Notifier, images ImageStore) Service {
	return &verificationService{
		repo:     repo,
		userRepo: userRepo,
		tx:       tx,
		notifier: notifier,
		images:   images,
		stateMachine: workflows.NewStateMachine(map[string][]string{
			string(StatusPending): {string(StatusValid), string(StatusNotValid)},
		}),
	}
}

func (s *verificationService) Submit(ctx context.Context, req SubmitRequest) (*Identification, error) {
	if req.Type != TypePassport && req.Type != TypeNationalID {
		return nil, fmt.Errorf("unsupported document type %q", req.Type)
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, apperrors.ErrNotFound)
	}

	identID := uuid.New()
	frontKey, err := s.images.Upload(ctx, imageKey(identID, "front"), req.FrontSide)
	if err != nil {
		return nil, fmt.Errorf("upload front side: %w", err)
	}
	backKey, err := s.images.Upload(ctx, imageKey(identID, "back"), req.BackSide)
	if err != nil {
		return nil, fmt.Errorf("upload back side: %w", err)
	}

	ident := &Identification{
		ID:        identID,
		UserID:    req.UserID,
		FrontSide: frontKey,
		BackSide:  backKey,
		Type:      req.Type,
		Status:    StatusPending,
	}
	if err := s.repo.Create(ctx, ident); err != nil {
		return nil, err
	}
	return ident, nil
}

func (s *verificationService) Get(ctx context.Context, id uuid.UUID) (*Identification, error) {
	ident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ident == nil {
		return nil, fmt.Errorf("identification %s: %w", id, apperrors.ErrNotFound)
	}
	return ident, nil
}

func (s *verificationService) List(ctx context.Context, status *Status) ([]Identification, error) {
	return s.repo.List(ctx, status)
}

// Approve marks a pending identification valid and stamps the owning user as
// verified. Both writes happen in one transaction.
func (s *verificationService) Approve(ctx context.Context, id uuid.UUID) (*Identification, error) {
	ident, err := s.transition(ctx, id, StatusValid, func(ctx context.Context, ident *Identification) error {
		user, err := s.userRepo.GetByID(ctx, ident.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", ident.UserID, apperrors.ErrNotFound)
		}
		now := time.Now()
		user.IdentificationVerifiedAt = &now
		return s.userRepo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	s.notifier.Success(ctx, "Accepted")
	return ident, nil
}

// Reject marks a pending identification not_valid. The owning user is left
// untouched.
func (s *verificationService) Reject(ctx context.Context, id uuid.UUID) (*Identification, error) {
	ident, err := s.transition(ctx, id, StatusNotValid, nil)
	if err != nil {
		return nil, err
	}
	s.notifier.Success(ctx, "Rejected")
	return ident, nil
}

func (s *verificationService) transition(ctx context.Context, id uuid.UUID, to Status, after func(ctx context.Context, ident *Identification) error) (*Identification, error) {
	var ident *Identification
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		ident, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if ident == nil {
			return fmt.Errorf("identification %s: %w", id, apperrors.ErrNotFound)
		}
		if !s.stateMachine.CanTransition(string(ident.Status), string(to)) {
			return fmt.Errorf("identification %s is %s: %w", id, ident.Status, apperrors.ErrInvalidStateTransition)
		}
		ident.Status = to
		if err := s.repo.Update(ctx, ident); err != nil {
			return err
		}
		if after != nil {
			return after(ctx, ident)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ident, nil
}

func imageKey(id uuid.UUID, side string) string {
	return fmt.Sprintf("identifications/%s/%s", id, side)
}
