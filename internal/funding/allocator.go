package funding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/database"
	"aqarshare/admin-portal/admin-portal-backend/internal/properties"
)

// Notifier delivers admin-panel advisories; fire-and-forget.
type Notifier interface {
	Success(ctx context.Context, title string)
	Warning(ctx context.Context, title string)
}

// Request asks for CountShares share-units of a property on behalf of a user.
type Request struct {
	UserID      uuid.UUID
	PropertyID  uuid.UUID
	CountShares int
}

// Result reports how the requested units were placed. Confirmed units became
// status=funder rows, Waitlisted became status=pending rows, Dropped units
// exceeded both capacities and produced no rows.
type Result struct {
	Confirmed  int `json:"confirmed"`
	Waitlisted int `json:"waitlisted"`
	Dropped    int `json:"dropped"`
}

// CapacityReport describes a property's current roster against its limits.
type CapacityReport struct {
	PropertyID      uuid.UUID `json:"property_id"`
	FunderCount     int       `json:"funder_count"`
	HardCapacity    int       `json:"hard_capacity"`
	PendingCapacity int       `json:"pending_capacity"`
	SoftCapacity    int       `json:"soft_capacity"`
	Confirmed       int       `json:"confirmed"`
	Waitlisted      int       `json:"waitlisted"`
	Remaining       int       `json:"remaining"`
}

type Service interface {
	// Allocate assigns each requested unit to confirmed or waitlisted
	// status, dropping units once both capacities are exhausted. It must be
	// called inside the caller's transaction scope (it joins it) and
	// serializes per property.
	Allocate(ctx context.Context, req Request) (*Result, error)
	CheckCapacity(ctx context.Context, propertyID uuid.UUID) (*CapacityReport, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]Funder, error)
}

type allocationService struct {
	repo       Repository
	properties properties.Repository
	tx         database.TxRunner
	notifier   Notifier
	locks      *propertyLocks
	logger     *zap.Logger
}

func NewService(repo Repository, propertyRepo properties.Repository, tx database.TxRunner, notifier Notifier, logger *zap.Logger) Service {
	return &allocationService{
		repo:       repo,
		properties: propertyRepo,
		tx:         tx,
		notifier:   notifier,
		locks:      newPropertyLocks(),
		logger:     logger,
	}
}

func (s *allocationService) Allocate(ctx context.Context, req Request) (*Result, error) {
	if req.CountShares <= 0 {
		return nil, fmt.Errorf("count_shares must be positive, got %d", req.CountShares)
	}

	release := s.locks.Acquire(req.PropertyID)
	defer release()

	var result *Result
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		property, err := s.properties.GetByIDForUpdate(ctx, req.PropertyID)
		if err != nil {
			return err
		}
		if property == nil {
			return fmt.Errorf("property %s: %w", req.PropertyID, apperrors.ErrNotFound)
		}

		capacity := CapacityFor(property.FunderCount)
		confirmed, waitlisted, err := s.rosterCounts(ctx, req.PropertyID)
		if err != nil {
			return err
		}
		total := confirmed + waitlisted

		// Advisories only; the loop below still runs and stops once the
		// capacities are exhausted.
		if total >= capacity.Soft() {
			s.notifier.Warning(ctx, "The number of participants in this property has been completed")
		}
		if total+req.CountShares > capacity.Soft() {
			s.notifier.Warning(ctx, fmt.Sprintf(
				"The purchase could not be completed because the number of available funders is %d",
				capacity.Soft()-total))
		}

		var created []*Funder
		res := &Result{}
		for i := 0; i < req.CountShares; i++ {
			switch {
			case confirmed < capacity.Hard:
				created = append(created, &Funder{
					UserID:     req.UserID,
					PropertyID: req.PropertyID,
					Status:     StatusFunder,
				})
				confirmed++
				res.Confirmed++
			case waitlisted < capacity.Pending:
				created = append(created, &Funder{
					UserID:     req.UserID,
					PropertyID: req.PropertyID,
					Status:     StatusPending,
				})
				waitlisted++
				res.Waitlisted++
			default:
				res.Dropped++
			}
		}

		if err := s.repo.CreateBatch(ctx, created); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("allocated funding units",
		zap.String("property_id", req.PropertyID.String()),
		zap.String("user_id", req.UserID.String()),
		zap.Int("requested", req.CountShares),
		zap.Int("confirmed", result.Confirmed),
		zap.Int("waitlisted", result.Waitlisted),
		zap.Int("dropped", result.Dropped))

	return result, nil
}

// CheckCapacity reports the remaining room for a property; it returns
// ErrCapacityExceeded (alongside the report) when the roster already meets
// or exceeds soft capacity.
func (s *allocationService) CheckCapacity(ctx context.Context, propertyID uuid.UUID) (*CapacityReport, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("property %s: %w", propertyID, apperrors.ErrNotFound)
	}

	capacity := CapacityFor(property.FunderCount)
	confirmed, waitlisted, err := s.rosterCounts(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	report := &CapacityReport{
		PropertyID:      propertyID,
		FunderCount:     property.FunderCount,
		HardCapacity:    capacity.Hard,
		PendingCapacity: capacity.Pending,
		SoftCapacity:    capacity.Soft(),
		Confirmed:       confirmed,
		Waitlisted:      waitlisted,
		Remaining:       capacity.Soft() - confirmed - waitlisted,
	}
	if report.Remaining <= 0 {
		report.Remaining = 0
		return report, fmt.Errorf("property %s: %w", propertyID, apperrors.ErrCapacityExceeded)
	}
	return report, nil
}

func (s *allocationService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]Funder, error) {
	return s.repo.ListByProperty(ctx, propertyID)
}

func (s *allocationService) rosterCounts(ctx context.Context, propertyID uuid.UUID) (int, int, error) {
	confirmed, err := s.repo.CountByPropertyAndStatus(ctx, propertyID, StatusFunder)
	if err != nil {
		return 0, 0, err
	}
	waitlisted, err := s.repo.CountByPropertyAndStatus(ctx, propertyID, StatusPending)
	if err != nil {
		return 0, 0, err
	}
	return int(confirmed), int(waitlisted), nil
}
