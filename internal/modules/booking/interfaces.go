package booking

import (
	"context"
	"time"

	"tooltrack/internal/domain"
	"tooltrack/internal/repository"
)

// BookingRepository is the persistence contract the service needs. The
// write paths (Create, Apply, Delete) are atomic: conflict check and
// mutation commit together or not at all.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Apply(ctx context.Context, id int64, p repository.BookingPatch, onApprove repository.ApprovalSideEffect) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	HasConflict(ctx context.Context, toolID int64, start, end time.Time, excludeID int64) (bool, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	ListPending(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	CalendarRange(ctx context.Context, start, end time.Time) ([]domain.Booking, error)
	History(ctx context.Context, f repository.HistoryFilter) ([]domain.Booking, error)
}
