package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingDenied    BookingStatus = "denied"
	BookingCompleted BookingStatus = "completed"
)

// BlocksInterval reports whether a booking in this status participates in
// the no-overlap invariant. Denied and completed bookings are history:
// they stay on record but do not block new reservations.
func (s BookingStatus) BlocksInterval() bool {
	return s == BookingPending || s == BookingApproved
}

// CanTransitionTo encodes the booking state machine:
// pending -> approved | denied, approved -> completed | denied.
// Denied and completed are terminal for normal flow; administrative hard
// delete bypasses this table entirely.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingApproved || next == BookingDenied
	case BookingApproved:
		return next == BookingCompleted || next == BookingDenied
	}
	return false
}

// Editable reports whether date/tool/duration fields may still change.
func (s BookingStatus) Editable() bool {
	return s != BookingCompleted && s != BookingDenied
}

// Booking reserves a tool for the half-open interval [StartDate, EndDate).
// Duration is whole hours, validated at intake and never re-derived.
type Booking struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	ToolID     int64         `json:"tool_id" validate:"required"`
	StartDate  time.Time     `json:"start_date" validate:"required"`
	EndDate    time.Time     `json:"end_date" validate:"required"`
	Duration   int           `json:"duration"`
	Purpose    string        `json:"purpose,omitempty"`
	Status     BookingStatus `json:"status"`
	Cost       *float64      `json:"cost,omitempty"`
	FuelUsed   *float64      `json:"fuel_used,omitempty"`
	ApprovedBy *int64        `json:"approved_by,omitempty"`
	ApprovedAt *time.Time    `json:"approved_at,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Tool *Tool `json:"tool,omitempty" gorm:"foreignKey:ToolID"`
}
