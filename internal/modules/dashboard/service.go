package dashboard

import (
	"context"
	"math"
	"time"

	"tooltrack/internal/domain"
)

// DefaultShiftHours is the bookable shift length per working day
// (08:00-19:00).
const DefaultShiftHours = 11

// Stats is the dashboard aggregate. Utilization and availability are
// derived on read and never persisted.
type Stats struct {
	TotalTools      int64   `json:"total_tools"`
	AvailableTools  int64   `json:"available_tools"`
	PendingRequests int64   `json:"pending_requests"`
	ActiveBookings  int64   `json:"active_bookings"`
	ToolAvailability float64 `json:"tool_availability"`
	ToolUtilization  float64 `json:"tool_utilization"`
}

type Service struct {
	tools      ToolCounter
	bookings   BookingCounter
	shiftHours int
}

func NewService(tools ToolCounter, bookings BookingCounter, shiftHours int) *Service {
	if shiftHours <= 0 {
		shiftHours = DefaultShiftHours
	}
	return &Service{tools: tools, bookings: bookings, shiftHours: shiftHours}
}

// WorkingDaysInMonth counts Monday-Friday days in the month containing t.
func WorkingDaysInMonth(t time.Time) int {
	year, month := t.Year(), t.Month()
	first := time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	workingDays := 0
	for day := 1; day <= daysInMonth; day++ {
		wd := time.Date(year, month, day, 0, 0, 0, 0, t.Location()).Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			workingDays++
		}
	}
	return workingDays
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Compute aggregates the booking set as of the given instant.
//
// Utilization for the calendar month of asOf is the sum of duration hours
// of approved bookings starting in that month, divided by the theoretical
// capacity totalTools x workingDays x shiftHours. Availability is defined
// as 100 - utilization: it is purely derivative of booked hours, not a
// measure of how many tools are currently free. Zero capacity yields 0%,
// not an error.
func (s *Service) Compute(ctx context.Context, asOf time.Time) (*Stats, error) {
	totalTools, err := s.tools.Count(ctx)
	if err != nil {
		return nil, err
	}
	availableTools, err := s.tools.CountByStatus(ctx, domain.ToolAvailable)
	if err != nil {
		return nil, err
	}
	pending, err := s.bookings.CountByStatus(ctx, domain.BookingPending)
	if err != nil {
		return nil, err
	}
	active, err := s.bookings.CountActiveAt(ctx, asOf)
	if err != nil {
		return nil, err
	}

	startOfMonth := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)
	bookedHours, err := s.bookings.SumApprovedDuration(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return nil, err
	}

	capacity := totalTools * int64(WorkingDaysInMonth(asOf)) * int64(s.shiftHours)

	utilization := 0.0
	if capacity > 0 {
		utilization = float64(bookedHours) / float64(capacity) * 100
	}
	if utilization > 100 {
		utilization = 100
	}

	return &Stats{
		TotalTools:       totalTools,
		AvailableTools:   availableTools,
		PendingRequests:  pending,
		ActiveBookings:   active,
		ToolUtilization:  round2(utilization),
		ToolAvailability: round2(100 - utilization),
	}, nil
}
