package funding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/properties"
)

// memoryRepository keeps funder rows in memory so multi-step allocation
// scenarios see their own writes.
type memoryRepository struct {
	mu      sync.Mutex
	funders []*Funder
}

func (r *memoryRepository) CreateBatch(ctx context.Context, funders []*Funder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funders = append(r.funders, funders...)
	return nil
}

func (r *memoryRepository) CountByPropertyAndStatus(ctx context.Context, propertyID uuid.UUID, status Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, f := range r.funders {
		if f.PropertyID == propertyID && f.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]Funder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Funder
	for _, f := range r.funders {
		if f.PropertyID == propertyID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Funder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Funder
	for _, f := range r.funders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Funder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.funders {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

type memoryPropertyRepository struct {
	property *properties.Property
}

func (r *memoryPropertyRepository) Create(ctx context.Context, p *properties.Property) error {
	r.property = p
	return nil
}

func (r *memoryPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*properties.Property, error) {
	if r.property != nil && r.property.ID == id {
		return r.property, nil
	}
	return nil, nil
}

func (r *memoryPropertyRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*properties.Property, error) {
	return r.GetByID(ctx, id)
}

func (r *memoryPropertyRepository) List(ctx context.Context, status *properties.Status) ([]properties.Property, error) {
	if r.property == nil {
		return nil, nil
	}
	return []properties.Property{*r.property}, nil
}

func (r *memoryPropertyRepository) Update(ctx context.Context, p *properties.Property) error {
	r.property = p
	return nil
}

func (r *memoryPropertyRepository) CreateCategory(ctx context.Context, c *properties.Category) error {
	return nil
}

func (r *memoryPropertyRepository) ListCategories(ctx context.Context) ([]properties.Category, error) {
	return nil, nil
}

// passthroughTxRunner runs the callback without a real transaction.
type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	mu        sync.Mutex
	warnings  []string
	successes []string
}

func (n *recordingNotifier) Success(ctx context.Context, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, title)
}

func (n *recordingNotifier) Warning(ctx context.Context, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warnings = append(n.warnings, title)
}

func newTestAllocator(funderCount int) (Service, *memoryRepository, *recordingNotifier, uuid.UUID) {
	repo := &memoryRepository{}
	propertyRepo := &memoryPropertyRepository{
		property: &properties.Property{
			ID:          uuid.New(),
			Name:        "Marina Heights",
			FunderCount: funderCount,
			Status:      properties.StatusFunded,
		},
	}
	notifier := &recordingNotifier{}
	service := NewService(repo, propertyRepo, passthroughTxRunner{}, notifier, zap.NewNop())
	return service, repo, notifier, propertyRepo.property.ID
}

func TestAllocateFillsHardCapacityFirst(t *testing.T) {
	service, repo, notifier, propertyID := newTestAllocator(10)
	ctx := context.Background()

	result, err := service.Allocate(ctx, Request{
		UserID:      uuid.New(),
		PropertyID:  propertyID,
		CountShares: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Confirmed)
	assert.Equal(t, 0, result.Waitlisted)
	assert.Equal(t, 0, result.Dropped)

	confirmed, _ := repo.CountByPropertyAndStatus(ctx, propertyID, StatusFunder)
	assert.EqualValues(t, 10, confirmed)
	assert.Empty(t, notifier.warnings)
}

func TestAllocateOverflowsToWaitlist(t *testing.T) {
	service, repo, _, propertyID := newTestAllocator(10)
	ctx := context.Background()

	result, err := service.Allocate(ctx, Request{
		UserID:      uuid.New(),
		PropertyID:  propertyID,
		CountShares: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Confirmed)
	assert.Equal(t, 2, result.Waitlisted)
	assert.Equal(t, 0, result.Dropped)

	waitlisted, _ := repo.CountByPropertyAndStatus(ctx, propertyID, StatusPending)
	assert.EqualValues(t, 2, waitlisted)
}

func TestAllocateDropsBeyondSoftCapacity(t *testing.T) {
	service, repo, notifier, propertyID := newTestAllocator(10)
	ctx := context.Background()

	result, err := service.Allocate(ctx, Request{
		UserID:      uuid.New(),
		PropertyID:  propertyID,
		CountShares: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, 10, result.Confirmed)
	assert.Equal(t, 2, result.Waitlisted)
	assert.Equal(t, 3, result.Dropped)

	// Dropped units never become rows.
	all, _ := repo.ListByProperty(ctx, propertyID)
	assert.Len(t, all, 12)

	require.NotEmpty(t, notifier.warnings)
	assert.Contains(t, notifier.warnings[0], "could not be completed")
}

func TestAllocateOnFullRosterDropsEverything(t *testing.T) {
	service, _, notifier, propertyID := newTestAllocator(10)
	ctx := context.Background()

	_, err := service.Allocate(ctx, Request{UserID: uuid.New(), PropertyID: propertyID, CountShares: 12})
	require.NoError(t, err)

	result, err := service.Allocate(ctx, Request{UserID: uuid.New(), PropertyID: propertyID, CountShares: 3})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Confirmed)
	assert.Equal(t, 0, result.Waitlisted)
	assert.Equal(t, 3, result.Dropped)
	assert.Contains(t, notifier.warnings, "The number of participants in this property has been completed")
}

func TestAllocateSequentialRequestsRespectCapacities(t *testing.T) {
	service, repo, _, propertyID := newTestAllocator(5)
	ctx := context.Background()

	// 5 hard slots, 1 pending slot.
	first, err := service.Allocate(ctx, Request{UserID: uuid.New(), PropertyID: propertyID, CountShares: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, first.Confirmed)

	second, err := service.Allocate(ctx, Request{UserID: uuid.New(), PropertyID: propertyID, CountShares: 3})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Confirmed)
	assert.Equal(t, 1, second.Waitlisted)
	assert.Equal(t, 1, second.Dropped)

	confirmed, _ := repo.CountByPropertyAndStatus(ctx, propertyID, StatusFunder)
	waitlisted, _ := repo.CountByPropertyAndStatus(ctx, propertyID, StatusPending)
	assert.EqualValues(t, 5, confirmed)
	assert.EqualValues(t, 1, waitlisted)
}

func TestAllocateRejectsNonPositiveCount(t *testing.T) {
	service, _, _, propertyID := newTestAllocator(10)

	_, err := service.Allocate(context.Background(), Request{
		UserID:      uuid.New(),
		PropertyID:  propertyID,
		CountShares: 0,
	})
	assert.Error(t, err)
}

func TestAllocateUnknownProperty(t *testing.T) {
	service, _, _, _ := newTestAllocator(10)

	_, err := service.Allocate(context.Background(), Request{
		UserID:      uuid.New(),
		PropertyID:  uuid.New(),
		CountShares: 1,
	})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestCheckCapacityReportsRemaining(t *testing.T) {
	service, _, _, propertyID := newTestAllocator(10)
	ctx := context.Background()

	report, err := service.CheckCapacity(ctx, propertyID)
	require.NoError(t, err)
	assert.Equal(t, 10, report.HardCapacity)
	assert.Equal(t, 2, report.PendingCapacity)
	assert.Equal(t, 12, report.SoftCapacity)
	assert.Equal(t, 12, report.Remaining)
}

func TestCheckCapacityFullySubscribed(t *testing.T) {
	service, _, _, propertyID := newTestAllocator(10)
	ctx := context.Background()

	_, err := service.Allocate(ctx, Request{UserID: uuid.New(), PropertyID: propertyID, CountShares: 12})
	require.NoError(t, err)

	report, err := service.CheckCapacity(ctx, propertyID)
	assert.True(t, errors.Is(err, apperrors.ErrCapacityExceeded))
	require.NotNil(t, report)
	assert.Equal(t, 0, report.Remaining)
	assert.Equal(t, 10, report.Confirmed)
	assert.Equal(t, 2, report.Waitlisted)
}

func TestAllocateConcurrentRequestsNeverExceedCapacity(t *testing.T) {
	service, repo, _, propertyID := newTestAllocator(10)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Allocate(ctx, Request{
				UserID:      uuid.New(),
				PropertyID:  propertyID,
				CountShares: 3,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	confirmed, _ := repo.CountByPropertyAndStatus(ctx, propertyID, StatusFunder)
	waitlisted, _ := repo.CountByPropertyAndStatus(ctx, propertyID, StatusPending)
	assert.EqualValues(t, 10, confirmed)
	assert.EqualValues(t, 2, waitlisted)
}
