package identity

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqarshare/admin-portal/admin-portal-backend/internal/apperrors"
	"aqarshare/admin-portal/admin-portal-backend/internal/users"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, ident *Identification) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Identification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Identification), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, status *Status) ([]Identification, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]Identification), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, ident *Identification) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *users.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type passthroughTxRunner struct{}

func (passthroughTxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingNotifier struct {
	successes []string
	warnings  []string
}

func (n *recordingNotifier) Success(ctx context.Context, title string) {
	n.successes = append(n.successes, title)
}

func (n *recordingNotifier) Warning(ctx context.Context, title string) {
	n.warnings = append(n.warnings, title)
}

type fakeImageStore struct{}

func (fakeImageStore) Upload(ctx context.Context, key string, body io.Reader) (string, error) {
	return key, nil
}

func TestApproveStampsUserVerifiedAt(t *testing.T) {
	mockRepo := new(MockRepository)
	mockUsers := new(MockUserRepository)
	notifier := &recordingNotifier{}
	service := NewService(mockRepo, mockUsers, passthroughTxRunner{}, notifier, fakeImageStore{})

	ctx := context.Background()
	user := &users.User{ID: uuid.New(), Name: "Sara"}
	ident := &Identification{ID: uuid.New(), UserID: user.ID, Status: StatusPending}

	mockRepo.On("GetByID", ctx, ident.ID).Return(ident, nil)
	mockRepo.On("Update", ctx, ident).Return(nil)
	mockUsers.On("GetByID", ctx, user.ID).Return(user, nil)
	mockUsers.On("Update", ctx, user).Return(nil)

	approved, err := service.Approve(ctx, ident.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusValid, approved.Status)
	require.NotNil(t, user.IdentificationVerifiedAt)
	assert.Equal(t, []string{"Accepted"}, notifier.successes)
	mockRepo.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
}

func TestRejectLeavesUserUntouched(t *testing.T) {
	mockRepo := new(MockRepository)
	mockUsers := new(MockUserRepository)
	notifier := &recordingNotifier{}
	service := NewService(mockRepo, mockUsers, passthroughTxRunner{}, notifier, fakeImageStore{})

	ctx := context.Background()
	ident := &Identification{ID: uuid.New(), UserID: uuid.New(), Status: StatusPending}

	mockRepo.On("GetByID", ctx, ident.ID).Return(ident, nil)
	mockRepo.On("Update", ctx, ident).Return(nil)

	rejected, err := service.Reject(ctx, ident.ID)

	require.NoError(t, err)
	assert.Equal(t, StatusNotValid, rejected.Status)
	assert.Equal(t, []string{"Rejected"}, notifier.successes)
	mockUsers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApproveAlreadyReviewed(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockUserRepository), passthroughTxRunner{}, &recordingNotifier{}, fakeImageStore{})

	ctx := context.Background()
	ident := &Identification{ID: uuid.New(), Status: StatusValid}
	mockRepo.On("GetByID", ctx, ident.ID).Return(ident, nil)

	_, err := service.Approve(ctx, ident.ID)

	assert.True(t, errors.Is(err, apperrors.ErrInvalidStateTransition))
}

func TestApproveUnknownIdentification(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockUserRepository), passthroughTxRunner{}, &recordingNotifier{}, fakeImageStore{})

	ctx := context.Background()
	id := uuid.New()
	mockRepo.On("GetByID", ctx, id).Return(nil, nil)

	_, err := service.Approve(ctx, id)

	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSubmitUploadsBothSides(t *testing.T) {
	mockRepo := new(MockRepository)
	mockUsers := new(MockUserRepository)
	service := NewService(mockRepo, mockUsers, passthroughTxRunner{}, &recordingNotifier{}, fakeImageStore{})

	ctx := context.Background()
	user := &users.User{ID: uuid.New()}
	mockUsers.On("GetByID", ctx, user.ID).Return(user, nil)
	mockRepo.On("Create", ctx, mock.AnythingOfType("*identity.Identification")).Return(nil)

	ident, err := service.Submit(ctx, SubmitRequest{
		UserID:    user.ID,
		Type:      TypePassport,
		FrontSide: strings.NewReader("front"),
		BackSide:  strings.NewReader("back"),
	})

	require.NoError(t, err)
	assert.Equal(t, StatusPending, ident.Status)
	assert.Contains(t, ident.FrontSide, "front")
	assert.Contains(t, ident.BackSide, "back")
	mockRepo.AssertExpectations(t)
}

func TestSubmitRejectsUnknownDocumentType(t *testing.T) {
	service := NewService(new(MockRepository), new(MockUserRepository), passthroughTxRunner{}, &recordingNotifier{}, fakeImageStore{})

	_, err := service.Submit(context.Background(), SubmitRequest{
		UserID: uuid.New(),
		Type:   DocumentType("drivers_license"),
	})

	assert.Error(t, err)
}
