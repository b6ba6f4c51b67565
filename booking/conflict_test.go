package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/warp/rental-engine/booking"
)

func entry(productID string, start, end booking.Date) booking.ConfirmedRental {
	return booking.ConfirmedRental{
		ID:        "entry-" + productID + "-" + start.String(),
		ProductID: productID,
		StartDate: start,
		EndDate:   end,
		Status:    booking.LedgerStatusConfirmed,
	}
}

func TestHasConflict_SameProductOverlapping(t *testing.T) {
	ledger := []booking.ConfirmedRental{
		entry("p1", date(2024, time.June, 1), date(2024, time.June, 5)),
	}

	candidate := span(date(2024, time.June, 3), date(2024, time.June, 8))
	assert.True(t, booking.HasConflict("p1", candidate, ledger))
}

func TestHasConflict_OtherProductIgnored(t *testing.T) {
	// GIVEN: Only product p2 is booked for the period
	// WHEN: Checking p1 for the exact same period
	// THEN: No conflict, availability is per article

	ledger := []booking.ConfirmedRental{
		entry("p2", date(2024, time.June, 1), date(2024, time.June, 5)),
	}

	candidate := span(date(2024, time.June, 1), date(2024, time.June, 5))
	assert.False(t, booking.HasConflict("p1", candidate, ledger))
	assert.True(t, booking.HasConflict("p2", candidate, ledger))
}

func TestHasConflict_EmptyLedger(t *testing.T) {
	candidate := span(date(2024, time.June, 1), date(2024, time.June, 5))
	assert.False(t, booking.HasConflict("p1", candidate, nil))
}

func TestFindConflict_ReturnsBlockingEntry(t *testing.T) {
	blocking := entry("p1", date(2024, time.June, 1), date(2024, time.June, 5))
	ledger := []booking.ConfirmedRental{
		entry("p1", date(2024, time.January, 1), date(2024, time.January, 3)),
		blocking,
	}

	found, ok := booking.FindConflict("p1", span(date(2024, time.June, 5), date(2024, time.June, 7)), ledger)
	assert.True(t, ok)
	assert.Equal(t, blocking.ID, found.ID)
}
