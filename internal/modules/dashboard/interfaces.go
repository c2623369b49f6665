package dashboard

import (
	"context"
	"time"

	"tooltrack/internal/domain"
)

type ToolCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.ToolStatus) (int64, error)
}

type BookingCounter interface {
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
	CountActiveAt(ctx context.Context, at time.Time) (int64, error)
	SumApprovedDuration(ctx context.Context, from, to time.Time) (int64, error)
}
