package booking

import "time"

type CreateBookingRequest struct {
	ToolID    int64     `json:"tool_id" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Duration  int       `json:"duration" binding:"required,min=2"`
	Purpose   string    `json:"purpose"`
}

// UpdateBookingRequest is a partial patch; absent fields stay unchanged.
// Status changes are admin-only, interval/tool changes re-run the
// conflict check.
type UpdateBookingRequest struct {
	ToolID    *int64     `json:"tool_id"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Duration  *int       `json:"duration"`
	Purpose   *string    `json:"purpose"`
	Status    *string    `json:"status"`
	Cost      *float64   `json:"cost"`
	FuelUsed  *float64   `json:"fuel_used"`
}

type CheckAvailabilityRequest struct {
	StartDate        time.Time `json:"start_date" binding:"required"`
	EndDate          time.Time `json:"end_date" binding:"required"`
	ExcludeBookingID int64     `json:"exclude_booking_id"`
}
