package properties

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, property *Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status *Status) ([]Property, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]Property), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, property *Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockRepository) CreateCategory(ctx context.Context, category *Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Category), args.Error(1)
}

func TestCreateDefaultsToFunded(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*properties.Property")).Return(nil)

	property, err := service.Create(ctx, CreatePropertyRequest{
		Name:        "Marina Heights",
		FunderCount: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, StatusFunded, property.Status)
	assert.Equal(t, 10, property.FunderCount)
}

func TestCreateRequiresName(t *testing.T) {
	service := NewService(new(MockRepository))

	_, err := service.Create(context.Background(), CreatePropertyRequest{FunderCount: 5})

	assert.Error(t, err)
}

func TestCreateRejectsNegativeFunderCount(t *testing.T) {
	service := NewService(new(MockRepository))

	_, err := service.Create(context.Background(), CreatePropertyRequest{
		Name:        "Marina Heights",
		FunderCount: -1,
	})

	assert.Error(t, err)
}

func TestMarkSoldOutFromFunded(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	property := &Property{ID: uuid.New(), Name: "Marina Heights", Status: StatusFunded}
	mockRepo.On("GetByID", ctx, property.ID).Return(property, nil)
	mockRepo.On("Update", ctx, property).Return(nil)

	updated, err := service.MarkSoldOut(ctx, property.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusSoldOut, updated.Status)
	mockRepo.AssertExpectations(t)
}

func TestMarkSoldOutFromRented(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	property := &Property{ID: uuid.New(), Status: StatusRented}
	mockRepo.On("GetByID", ctx, property.ID).Return(property, nil)
	mockRepo.On("Update", ctx, property).Return(nil)

	updated, err := service.MarkSoldOut(ctx, property.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusSoldOut, updated.Status)
}

func TestMarkSoldOutAlreadySoldOut(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	property := &Property{ID: uuid.New(), Status: StatusSoldOut}
	mockRepo.On("GetByID", ctx, property.ID).Return(property, nil)

	_, err := service.MarkSoldOut(ctx, property.ID)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestMarkSoldOutUnknownProperty(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	ctx := context.Background()
	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	_, err := service.MarkSoldOut(ctx, id)

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
