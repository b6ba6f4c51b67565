package booking_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// recordingNotifier captures notifications; Err makes every call fail.
type recordingNotifier struct {
	Submitted []booking.RentalRequest
	Decided   []booking.RentalRequest
	Err       error
}

func (n *recordingNotifier) RequestSubmitted(_ context.Context, req booking.RentalRequest) error {
	n.Submitted = append(n.Submitted, req)
	return n.Err
}

func (n *recordingNotifier) RequestDecided(_ context.Context, req booking.RentalRequest) error {
	n.Decided = append(n.Decided, req)
	return n.Err
}

func newTestWorkflow(t *testing.T) (*booking.Workflow, *store.Memory, *recordingNotifier) {
	t.Helper()

	mem := store.NewMemory()
	notifier := &recordingNotifier{}

	// Deterministic ids and a clock that advances one second per call, so
	// repeated approvals get strictly increasing CreatedAt values.
	var idSeq, tickSeq int
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	wf := &booking.Workflow{
		Requests: mem,
		Ledger:   mem,
		Notifier: notifier,
		Clock: func() time.Time {
			tickSeq++
			return base.Add(time.Duration(tickSeq) * time.Second)
		},
		NewID: func() string {
			idSeq++
			return fmt.Sprintf("id-%d", idSeq)
		},
	}
	return wf, mem, notifier
}

func submitInput(productID string, start, end booking.Date) booking.SubmitInput {
	return booking.SubmitInput{
		ProductID:     productID,
		ProductTitle:  "Party Tent 6x3m",
		StartDate:     start,
		EndDate:       end,
		CustomerName:  "Anna Schmidt",
		CustomerEmail: "anna@example.com",
		TotalPrice:    decimal.NewFromInt(120),
	}
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	wf, mem, notifier := newTestWorkflow(t)
	ctx := context.Background()

	req, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, booking.StatusPending, req.Status)
	assert.Equal(t, req.CreatedAt, req.UpdatedAt)

	stored, err := mem.LoadRequests(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, req.ID, stored[0].ID)

	require.Len(t, notifier.Submitted, 1)
	assert.Equal(t, req.ID, notifier.Submitted[0].ID)
}

func TestSubmit_MissingFieldsRejected(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)

	in := submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5))
	in.CustomerEmail = "  "
	in.ProductID = ""

	_, err := wf.Submit(context.Background(), in)

	var verr *booking.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "productId")
	assert.Contains(t, verr.Fields, "customerEmail")
	assert.True(t, booking.IsClientError(err))
}

func TestSubmit_EndNotAfterStartRejected(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)

	in := submitInput("p1", date(2024, time.June, 5), date(2024, time.June, 5))
	_, err := wf.Submit(context.Background(), in)

	var verr *booking.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSubmit_NegativePriceRejected(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)

	in := submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5))
	in.TotalPrice = decimal.NewFromInt(-1)

	_, err := wf.Submit(context.Background(), in)
	var verr *booking.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSubmit_NotificationFailureDoesNotFailSubmission(t *testing.T) {
	// GIVEN: The mail server is down
	// WHEN: A valid request is submitted
	// THEN: The submission still succeeds

	wf, mem, notifier := newTestWorkflow(t)
	notifier.Err = errors.New("smtp: connection refused")

	req, err := wf.Submit(context.Background(), submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	stored, _ := mem.LoadRequests(context.Background())
	require.Len(t, stored, 1)
	assert.Equal(t, req.ID, stored[0].ID)
}

// =============================================================================
// CONFLICT ENFORCEMENT THROUGH THE WORKFLOW
// =============================================================================

func TestSubmit_ConflictScenario(t *testing.T) {
	// The canonical double-booking scenario:
	//   A: p1, June 1 - June 5, approved          -> blocks the period
	//   B: p1, June 5 - June 7  -> conflict (boundary touch counts)
	//   C: p1, June 6 - June 8  -> accepted

	wf, mem, _ := newTestWorkflow(t)
	ctx := context.Background()

	reqA, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)
	_, err = wf.Decide(ctx, reqA.ID, booking.StatusApproved, "")
	require.NoError(t, err)

	ledger, _ := mem.LoadLedger(ctx)
	require.Len(t, ledger, 1)

	_, err = wf.Submit(ctx, submitInput("p1", date(2024, time.June, 5), date(2024, time.June, 7)))
	require.Error(t, err)
	assert.ErrorIs(t, err, booking.ErrBookingConflict)
	var cerr *booking.ConflictError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "p1", cerr.ProductID)

	_, err = wf.Submit(ctx, submitInput("p1", date(2024, time.June, 6), date(2024, time.June, 8)))
	assert.NoError(t, err, "adjacent-day request must be accepted")
}

func TestSubmit_PendingRequestsDoNotBlock(t *testing.T) {
	// Only CONFIRMED rentals block dates; two pending requests for the
	// same period may coexist until the admin decides.

	wf, _, _ := newTestWorkflow(t)
	ctx := context.Background()

	_, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)
	_, err = wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	assert.NoError(t, err)
}

// =============================================================================
// DECIDE
// =============================================================================

func TestDecide_ApprovalMaterializesLedgerEntry(t *testing.T) {
	wf, mem, notifier := newTestWorkflow(t)
	ctx := context.Background()

	req, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	decided, err := wf.Decide(ctx, req.ID, booking.StatusApproved, "deposit received")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, decided.Status)
	assert.Equal(t, "deposit received", decided.AdminNote)
	assert.True(t, decided.UpdatedAt.After(decided.CreatedAt))

	ledger, _ := mem.LoadLedger(ctx)
	require.Len(t, ledger, 1)
	e := ledger[0]
	assert.Equal(t, req.ID, e.RequestID)
	assert.Equal(t, req.ProductID, e.ProductID)
	assert.Equal(t, req.ProductTitle, e.ProductTitle)
	assert.True(t, e.StartDate.Equal(req.StartDate))
	assert.True(t, e.EndDate.Equal(req.EndDate))
	assert.Equal(t, req.CustomerEmail, e.CustomerEmail)
	assert.Equal(t, booking.LedgerStatusConfirmed, e.Status)

	require.Len(t, notifier.Decided, 1)
	assert.Equal(t, booking.StatusApproved, notifier.Decided[0].Status)
}

func TestDecide_RejectionLeavesLedgerEmpty(t *testing.T) {
	wf, mem, _ := newTestWorkflow(t)
	ctx := context.Background()

	req, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	decided, err := wf.Decide(ctx, req.ID, booking.StatusRejected, "not available")
	require.NoError(t, err)
	assert.Equal(t, booking.StatusRejected, decided.Status)

	ledger, _ := mem.LoadLedger(ctx)
	assert.Empty(t, ledger)
}

func TestDecide_UnknownRequest(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)

	_, err := wf.Decide(context.Background(), "nope", booking.StatusApproved, "")
	assert.ErrorIs(t, err, booking.ErrRequestNotFound)
	assert.True(t, booking.IsNotFound(err))
}

func TestDecide_PendingIsNotADecision(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)
	ctx := context.Background()

	req, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	_, err = wf.Decide(ctx, req.ID, booking.StatusPending, "")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)

	_, err = wf.Decide(ctx, req.ID, "bogus", "")
	assert.ErrorIs(t, err, booking.ErrInvalidStatus)
}

func TestDecide_RepeatedApprovalDuplicatesUntilCleanup(t *testing.T) {
	// Re-approving is NOT guarded: each call appends a ledger snapshot.
	// This pins the long-standing behavior; cleanup collapses the copies.

	wf, mem, _ := newTestWorkflow(t)
	ctx := context.Background()

	req, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	_, err = wf.Decide(ctx, req.ID, booking.StatusApproved, "")
	require.NoError(t, err)
	_, err = wf.Decide(ctx, req.ID, booking.StatusApproved, "")
	require.NoError(t, err)

	ledger, _ := mem.LoadLedger(ctx)
	require.Len(t, ledger, 2, "each approval call appends an entry")
	assert.Equal(t, req.ID, ledger[0].RequestID)
	assert.Equal(t, req.ID, ledger[1].RequestID)

	result, err := wf.RunCleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Removed)

	ledger, _ = mem.LoadLedger(ctx)
	require.Len(t, ledger, 1)
}

// =============================================================================
// DELETE
// =============================================================================

func TestDelete_RemovesRequestAndItsLedgerEntries(t *testing.T) {
	wf, mem, _ := newTestWorkflow(t)
	ctx := context.Background()

	reqA, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)
	_, err = wf.Decide(ctx, reqA.ID, booking.StatusApproved, "")
	require.NoError(t, err)

	reqB, err := wf.Submit(ctx, submitInput("p2", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)
	_, err = wf.Decide(ctx, reqB.ID, booking.StatusApproved, "")
	require.NoError(t, err)

	deleted, err := wf.Delete(ctx, reqA.ID)
	require.NoError(t, err)
	assert.Equal(t, reqA.ID, deleted.ID)

	requests, _ := mem.LoadRequests(ctx)
	require.Len(t, requests, 1)
	assert.Equal(t, reqB.ID, requests[0].ID)

	// Only A's ledger entries are purged
	ledger, _ := mem.LoadLedger(ctx)
	require.Len(t, ledger, 1)
	assert.Equal(t, reqB.ID, ledger[0].RequestID)
}

func TestDelete_PendingRequestPurgesLedgerToo(t *testing.T) {
	// The purge is unconditional: even a request that was never approved
	// triggers a sweep for ledger entries carrying its id.

	wf, mem, _ := newTestWorkflow(t)
	ctx := context.Background()

	req, err := wf.Submit(ctx, submitInput("p1", date(2024, time.June, 1), date(2024, time.June, 5)))
	require.NoError(t, err)

	// Stale entry referencing the pending request (e.g. from a reverted decision)
	require.NoError(t, mem.SaveLedger(ctx, []booking.ConfirmedRental{
		{ID: "stale", RequestID: req.ID, ProductID: "p1"},
	}))

	_, err = wf.Delete(ctx, req.ID)
	require.NoError(t, err)

	ledger, _ := mem.LoadLedger(ctx)
	assert.Empty(t, ledger)
}

func TestDelete_UnknownRequest(t *testing.T) {
	wf, _, _ := newTestWorkflow(t)

	_, err := wf.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, booking.ErrRequestNotFound)
}

// =============================================================================
// NO DOUBLE-BOOKING PROPERTY
// =============================================================================

func TestWorkflow_NoOverlappingConfirmedRentals(t *testing.T) {
	// Property: rentals confirmed through submit+approve never overlap for
	// the same article, whatever order requests arrive in.

	wf, mem, _ := newTestWorkflow(t)
	ctx := context.Background()

	spans := [][2]int{{1, 5}, {5, 7}, {6, 8}, {2, 4}, {9, 12}, {12, 14}, {20, 25}}
	for _, s := range spans {
		req, err := wf.Submit(ctx, submitInput("p1",
			date(2024, time.June, s[0]), date(2024, time.June, s[1])))
		if err != nil {
			assert.ErrorIs(t, err, booking.ErrBookingConflict)
			continue
		}
		_, err = wf.Decide(ctx, req.ID, booking.StatusApproved, "")
		require.NoError(t, err)
	}

	ledger, _ := mem.LoadLedger(ctx)
	require.NotEmpty(t, ledger)
	for i := range ledger {
		for j := i + 1; j < len(ledger); j++ {
			assert.False(t, ledger[i].Range().Overlaps(ledger[j].Range()),
				"confirmed rentals %s and %s overlap", ledger[i].Range(), ledger[j].Range())
		}
	}
}
