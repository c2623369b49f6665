package booking

import (
	"context"
	"errors"
	"math"
	"time"

	"tooltrack/internal/domain"
	"tooltrack/internal/repository"
)

type Service struct {
	bookings BookingRepository

	// onApprove runs inside the approval transaction. The default marks
	// the tool in-use; callers may replace it (or set nil) to change the
	// resource-status policy without touching conflict logic.
	onApprove repository.ApprovalSideEffect
}

func NewService(bookings BookingRepository, onApprove repository.ApprovalSideEffect) *Service {
	return &Service{bookings: bookings, onApprove: onApprove}
}

// validateInterval checks interval shape and the intake duration rule:
// whole hours, minimum 2, equal to the rounded-up interval length. The
// stored duration is never re-derived afterwards.
func validateInterval(start, end time.Time, duration int) error {
	if !start.Before(end) {
		return ErrValidation
	}
	if duration < 2 {
		return ErrValidation
	}
	if duration != int(math.Ceil(end.Sub(start).Hours())) {
		return ErrValidation
	}
	return nil
}

func mapRepoErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	case errors.Is(err, repository.ErrToolNotFound):
		return ErrToolNotFound
	case errors.Is(err, repository.ErrToolUnavailable):
		return ErrToolUnavailable
	case errors.Is(err, repository.ErrInvalidTransition):
		return ErrInvalidTransition
	case errors.Is(err, repository.ErrNotEditable):
		return ErrNotEditable
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	}
	return err
}

// Submit creates a pending booking. The tool must be in the available
// lifecycle state and the interval must be conflict-free; both checks
// commit atomically with the insert.
func (s *Service) Submit(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if err := validateInterval(req.StartDate, req.EndDate, req.Duration); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		UserID:    userID,
		ToolID:    req.ToolID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Duration:  req.Duration,
		Purpose:   req.Purpose,
		Status:    domain.BookingPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}

// Update applies a partial patch. Status changes require the admin
// capability and a legal state-machine transition; approval records the
// approver and timestamp and fires the approval side effect. Interval or
// tool changes re-run the conflict check excluding the booking itself.
func (s *Service) Update(ctx context.Context, id, actorID int64, isAdmin bool, req UpdateBookingRequest) (*domain.Booking, error) {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !isAdmin && current.UserID != actorID {
		return nil, ErrForbidden
	}

	patch := repository.BookingPatch{
		ToolID:    req.ToolID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Duration:  req.Duration,
		Purpose:   req.Purpose,
		Cost:      req.Cost,
		FuelUsed:  req.FuelUsed,
	}

	var approve repository.ApprovalSideEffect
	if req.Status != nil {
		if !isAdmin {
			return nil, ErrForbidden
		}
		next := domain.BookingStatus(*req.Status)
		switch next {
		case domain.BookingPending, domain.BookingApproved, domain.BookingDenied, domain.BookingCompleted:
		default:
			return nil, ErrValidation
		}
		patch.Status = &next

		if next == domain.BookingApproved {
			now := time.Now()
			patch.ApprovedBy = &actorID
			patch.ApprovedAt = &now
			approve = s.onApprove
		}
	}

	if req.StartDate != nil || req.EndDate != nil || req.Duration != nil {
		start := current.StartDate
		end := current.EndDate
		duration := current.Duration
		if req.StartDate != nil {
			start = *req.StartDate
		}
		if req.EndDate != nil {
			end = *req.EndDate
		}
		if req.Duration != nil {
			duration = *req.Duration
		}
		if err := validateInterval(start, end, duration); err != nil {
			return nil, err
		}
	}

	updated, err := s.bookings.Apply(ctx, id, patch, approve)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

// Delete is the administrative hard delete: it bypasses the state
// machine entirely and removes the booking in any state.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// CheckAvailability exposes the conflict pre-check. A malformed interval
// is a validation error, not "unavailable".
func (s *Service) CheckAvailability(ctx context.Context, toolID int64, start, end time.Time, excludeID int64) (bool, error) {
	if !start.Before(end) {
		return false, ErrValidation
	}
	conflict, err := s.bookings.HasConflict(ctx, toolID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return !conflict, nil
}

// Calendar returns pending/approved bookings intersecting [start, end].
func (s *Service) Calendar(ctx context.Context, start, end time.Time) ([]domain.Booking, error) {
	if !start.Before(end) {
		return nil, ErrValidation
	}
	return s.bookings.CalendarRange(ctx, start, end)
}

// History returns approved/completed bookings for reporting.
func (s *Service) History(ctx context.Context, f repository.HistoryFilter) ([]domain.Booking, error) {
	return s.bookings.History(ctx, f)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *Service) ListPending(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListPending(ctx)
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}
