package domain

import "time"

type ToolStatus string

const (
	ToolAvailable  ToolStatus = "available"
	ToolInUse      ToolStatus = "in-use"
	ToolMaintenance ToolStatus = "maintenance"
	ToolOutOfOrder ToolStatus = "out-of-order"
)

// ValidToolStatus reports whether s is one of the lifecycle states the
// engine accepts. Statuses are stored as plain strings, so the legal set
// is enforced application-side.
func ValidToolStatus(s ToolStatus) bool {
	switch s {
	case ToolAvailable, ToolInUse, ToolMaintenance, ToolOutOfOrder:
		return true
	}
	return false
}

// Tool is a bookable piece of shared equipment. Code is the stable
// human-readable identifier shown on the physical tool, unique across
// the fleet.
type Tool struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name" validate:"required"`
	Code        string     `json:"code" validate:"required"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	Status      ToolStatus `json:"status"`
	ImageURL    string     `json:"image_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
