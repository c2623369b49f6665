package booking

import (
	"context"
	"testing"
	"time"

	"tooltrack/internal/domain"
	"tooltrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Apply(ctx context.Context, id int64, p repository.BookingPatch, onApprove repository.ApprovalSideEffect) (*domain.Booking, error) {
	args := m.Called(ctx, id, p, onApprove)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) HasConflict(ctx context.Context, toolID int64, start, end time.Time, excludeID int64) (bool, error) {
	args := m.Called(ctx, toolID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListPending(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CalendarRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) History(ctx context.Context, f repository.HistoryFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, f)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func testRequest(hours int) CreateBookingRequest {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return CreateBookingRequest{
		ToolID:    1,
		StartDate: start,
		EndDate:   start.Add(time.Duration(hours) * time.Hour),
		Duration:  hours,
		Purpose:   "trenching",
	}
}

func TestSubmit_Success(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.BookingPending && b.UserID == 7
	})).Return(nil)

	b, err := svc.Submit(context.Background(), 7, testRequest(4))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	repo.AssertExpectations(t)
}

func TestSubmit_RejectsInvertedInterval(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	req := testRequest(4)
	req.StartDate, req.EndDate = req.EndDate, req.StartDate

	_, err := svc.Submit(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create")
}

func TestSubmit_RejectsShortDuration(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	req := testRequest(1)
	_, err := svc.Submit(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create")
}

func TestSubmit_RejectsDurationIntervalMismatch(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	req := testRequest(4)
	req.Duration = 6

	_, err := svc.Submit(context.Background(), 7, req)
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create")
}

func TestSubmit_DurationRoundsUpPartialHours(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	// 3h30m rounds up to 4
	req := testRequest(4)
	req.EndDate = req.StartDate.Add(3*time.Hour + 30*time.Minute)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Submit(context.Background(), 7, req)
	assert.NoError(t, err)
}

func TestSubmit_MapsRepositoryConflict(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrConflict)

	_, err := svc.Submit(context.Background(), 7, testRequest(4))
	assert.ErrorIs(t, err, ErrConflict)
}

func TestSubmit_MapsToolUnavailable(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrToolUnavailable)

	_, err := svc.Submit(context.Background(), 7, testRequest(4))
	assert.ErrorIs(t, err, ErrToolUnavailable)
}

func pendingBooking(id, userID int64) *domain.Booking {
	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:        id,
		UserID:    userID,
		ToolID:    1,
		StartDate: start,
		EndDate:   start.Add(4 * time.Hour),
		Duration:  4,
		Status:    domain.BookingPending,
	}
}

func TestUpdate_NonOwnerForbidden(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(1, 7), nil)

	purpose := "other"
	_, err := svc.Update(context.Background(), 1, 8, false, UpdateBookingRequest{Purpose: &purpose})
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Apply")
}

func TestUpdate_StatusChangeRequiresAdmin(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(1, 7), nil)

	status := string(domain.BookingApproved)
	_, err := svc.Update(context.Background(), 1, 7, false, UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "Apply")
}

func TestUpdate_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(1)).Return(pendingBooking(1, 7), nil)

	status := "cancelled"
	_, err := svc.Update(context.Background(), 1, 9, true, UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Apply")
}

func TestUpdate_ApprovalStampsApproverAndFiresHook(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, repository.MarkToolInUse)

	current := pendingBooking(1, 7)
	repo.On("GetByID", mock.Anything, int64(1)).Return(current, nil)

	approvedCopy := *current
	approvedCopy.Status = domain.BookingApproved
	repo.On("Apply", mock.Anything, int64(1), mock.MatchedBy(func(p repository.BookingPatch) bool {
		return p.Status != nil && *p.Status == domain.BookingApproved &&
			p.ApprovedBy != nil && *p.ApprovedBy == 9 &&
			p.ApprovedAt != nil
	}), mock.AnythingOfType("repository.ApprovalSideEffect")).Return(&approvedCopy, nil)

	status := string(domain.BookingApproved)
	updated, err := svc.Update(context.Background(), 1, 9, true, UpdateBookingRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, updated.Status)
	repo.AssertExpectations(t)
}

func TestUpdate_IntervalChangeValidatedAgainstEffectiveValues(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	current := pendingBooking(1, 7)
	repo.On("GetByID", mock.Anything, int64(1)).Return(current, nil)

	// moving only the end so the stored duration no longer matches
	newEnd := current.StartDate.Add(6 * time.Hour)
	_, err := svc.Update(context.Background(), 1, 7, false, UpdateBookingRequest{EndDate: &newEnd})
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Apply")
}

func TestUpdate_OwnerCanMoveInterval(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	current := pendingBooking(1, 7)
	repo.On("GetByID", mock.Anything, int64(1)).Return(current, nil)

	newStart := current.StartDate.Add(24 * time.Hour)
	newEnd := newStart.Add(4 * time.Hour)
	moved := *current
	moved.StartDate, moved.EndDate = newStart, newEnd
	repo.On("Apply", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(&moved, nil)

	updated, err := svc.Update(context.Background(), 1, 7, false, UpdateBookingRequest{
		StartDate: &newStart,
		EndDate:   &newEnd,
	})
	require.NoError(t, err)
	assert.True(t, updated.StartDate.Equal(newStart))
}

func TestCheckAvailability_RejectsMalformedInterval(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	_, err := svc.CheckAvailability(context.Background(), 1, at, at, 0)
	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "HasConflict")
}

func TestCheckAvailability_InvertsConflict(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	repo.On("HasConflict", mock.Anything, int64(1), start, end, int64(5)).Return(true, nil)

	available, err := svc.CheckAvailability(context.Background(), 1, start, end, 5)
	require.NoError(t, err)
	assert.False(t, available)
	repo.AssertExpectations(t)
}

func TestDelete_MapsNotFound(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := NewService(repo, nil)

	repo.On("Delete", mock.Anything, int64(99)).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}
