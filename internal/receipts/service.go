package receipts

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/database"
	"aqarshare/admin-portal/admin-portal-backend/internal/funding"
)

// Notifier delivers admin-panel confirmations; fire-and-forget.
type Notifier interface {
	Success(ctx context.Context, title string)
	Warning(ctx context.Context, title string)
}

// ImageStore uploads payment proofs and returns the stored object key.
type ImageStore interface {
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

type SubmitRequest struct {
	UserID          uuid.UUID
	PropertyID      uuid.UUID
	CountShares     int
	Method          string
	ReceiptNumber   string
	DepositDate     *time.Time
	DepositedAmount string
	Image           io.Reader
}

// AcceptResult pairs the accepted receipt with how its share-units landed.
type AcceptResult struct {
	Receipt    *Receipt        `json:"receipt"`
	Allocation *funding.Result `json:"allocation"`
}

type Service interface {
	Submit(ctx context.Context, req SubmitRequest) (*Receipt, error)
	Get(ctx context.Context, id uuid.UUID) (*Receipt, error)
	List(ctx context.Context, status *Status) ([]Receipt, error)
	// Accept allocates the receipt's share-units and marks it accepted in a
	// single transaction. The receipt is preserved even when some or all
	// units are dropped for lack of capacity.
	Accept(ctx context.Context, id uuid.UUID) (*AcceptResult, error)
	Reject(ctx context.Context, id uuid.UUID) (*Receipt, error)
}

type lifecycleService struct {
	repo      Repository
	allocator funding.Service
	tx        database.TxRunner
	notifier  Notifier
	images    ImageStore
	logger    *zap.Logger
}

func NewService(repo Repository, allocator funding.Service, tx database.TxRunner, notifier Notifier, images ImageStore, logger *zap.Logger) Service {
	return &lifecycleService{
		repo:      repo,
		allocator: allocator,
		tx:        tx,
		notifier:  notifier,
		images:    images,
		logger:    logger,
	}
}

func (s *lifecycleService) Submit(ctx context.Context, req SubmitRequest) (*Receipt, error) {
	if req.CountShares <= 0 {
		return nil, fmt.Errorf("count_shares must be positive, got %d", req.CountShares)
	}

	receiptID := uuid.New()
	imageKey := ""
	if req.Image != nil {
		key, err := s.images.Upload(ctx, fmt.Sprintf("receipts/%s/proof", receiptID), req.Image)
		if err != nil {
			return nil, fmt.Errorf("upload payment proof: %w", err)
		}
		imageKey = key
	}

	receipt := &Receipt{
		ID:              receiptID,
		UserID:          req.UserID,
		PropertyID:      req.PropertyID,
		CountShares:     req.CountShares,
		Method:          req.Method,
		Image:           imageKey,
		ReceiptNumber:   req.ReceiptNumber,
		DepositDate:     req.DepositDate,
		DepositedAmount: req.DepositedAmount,
		Status:          StatusPending,
	}
	if err := s.repo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (s *lifecycleService) Get(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	receipt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, fmt.Errorf("receipt %s: %w", id, apperrors.ErrNotFound)
	}
	return receipt, nil
}

func (s *lifecycleService) List(ctx context.Context, status *Status) ([]Receipt, error) {
	return s.repo.List(ctx, status)
}

func (s *lifecycleService) Accept(ctx context.Context, id uuid.UUID) (*AcceptResult, error) {
	var result AcceptResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		receipt, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("receipt %s: %w", id, apperrors.ErrNotFound)
		}
		if receipt.Status != StatusPending {
			return fmt.Errorf("receipt %s is %s: %w", id, receipt.Status, apperrors.ErrInvalidStateTransition)
		}

		allocation, err := s.allocator.Allocate(ctx, funding.Request{
			UserID:      receipt.UserID,
			PropertyID:  receipt.PropertyID,
			CountShares: receipt.CountShares,
		})
		if err != nil {
			return err
		}

		// Guarded update so a concurrent accept of the same receipt can
		// win the race only once.
		changed, err := s.repo.TransitionStatus(ctx, id, StatusPending, StatusAccepted)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("receipt %s: %w", id, apperrors.ErrInvalidStateTransition)
		}

		receipt.Status = StatusAccepted
		result.Receipt = receipt
		result.Allocation = allocation
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Success(ctx, "Accepted")
	s.logger.Info("receipt accepted",
		zap.String("receipt_id", id.String()),
		zap.Int("confirmed", result.Allocation.Confirmed),
		zap.Int("waitlisted", result.Allocation.Waitlisted),
		zap.Int("dropped", result.Allocation.Dropped))
	return &result, nil
}

// Reject marks a pending receipt rejected. No funder rows are created.
func (s *lifecycleService) Reject(ctx context.Context, id uuid.UUID) (*Receipt, error) {
	var receipt *Receipt
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		receipt, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return fmt.Errorf("receipt %s: %w", id, apperrors.ErrNotFound)
		}
		if receipt.Status != StatusPending {
			return fmt.Errorf("receipt %s is %s: %w", id, receipt.Status, apperrors.ErrInvalidStateTransition)
		}
		changed, err := s.repo.TransitionStatus(ctx, id, StatusPending, StatusRejected)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("receipt %s: %w", id, apperrors.ErrInvalidStateTransition)
		}
		receipt.Status = StatusRejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Success(ctx, "Rejected")
	return receipt, nil
}
