package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{BookingPending, BookingApproved, true},
		{BookingPending, BookingDenied, true},
		{BookingPending, BookingCompleted, false},
		{BookingPending, BookingPending, false},
		{BookingApproved, BookingCompleted, true},
		{BookingApproved, BookingDenied, true},
		{BookingApproved, BookingPending, false},
		{BookingApproved, BookingApproved, false},
		{BookingDenied, BookingApproved, false},
		{BookingDenied, BookingPending, false},
		{BookingCompleted, BookingApproved, false},
		{BookingCompleted, BookingDenied, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestBookingStatusBlocksInterval(t *testing.T) {
	assert.True(t, BookingPending.BlocksInterval())
	assert.True(t, BookingApproved.BlocksInterval())
	assert.False(t, BookingDenied.BlocksInterval())
	assert.False(t, BookingCompleted.BlocksInterval())
}

func TestBookingStatusEditable(t *testing.T) {
	assert.True(t, BookingPending.Editable())
	assert.True(t, BookingApproved.Editable())
	assert.False(t, BookingDenied.Editable())
	assert.False(t, BookingCompleted.Editable())
}
