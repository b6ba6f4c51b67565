/*
workflow.go - Rental request lifecycle

PURPOSE:
  Orchestrates the full lifecycle of a rental request:
  1. Submit:  Validate, check the confirmed ledger for conflicts, persist
              the request as pending, notify the operator
  2. Decide:  Admin approves or rejects; approval materializes a
              date-blocking ledger entry; customer is notified
  3. Delete:  Remove a request and purge any ledger entries it produced

REQUEST FLOW:

  Customer submits     Conflict check      Persist          Admin
  request         ──▶  against ledger ──▶  pending     ──▶  decision
                                                                │
                                                          ┌──────────┐
                                                          │ Approved │──▶ ledger entry
                                                          └──────────┘
                                                                │
                                                          ┌──────────┐
                                                          │ Rejected │──▶ (no entry)
                                                          └──────────┘

STATE MACHINE:
  pending -> approved | rejected. Both outcomes are terminal in intent,
  but Decide does NOT refuse a repeated call: re-approving an already
  approved request appends a second ledger entry. This mirrors the
  behavior the admin panel has always had; CleanupLedger collapses the
  duplicates. Flagged for product-owner review rather than silently fixed.

NOTIFICATIONS:
  Dispatched after persistence succeeds, and strictly best-effort: a
  failed email is logged and counted, never surfaced to the caller.

PERSISTENCE MODEL:
  Every operation reads the whole collection, mutates in memory, and
  writes the whole collection back. There is no locking and no
  cross-collection transaction; a write failure after a successful read
  loses the in-memory mutation. Accepted limitation of the file-backed
  store (see store/jsonfile).

SEE ALSO:
  - conflict.go: Overlap detection
  - cleanup.go: Ledger deduplication
  - notify.go: Notifier contract
*/
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/rental-engine/metrics"
)

// =============================================================================
// STORE CONTRACTS - Whole-collection load/save
// =============================================================================

// RequestStore persists the rental-requests collection.
type RequestStore interface {
	LoadRequests(ctx context.Context) ([]RentalRequest, error)
	SaveRequests(ctx context.Context, requests []RentalRequest) error
}

// LedgerStore persists the confirmed-rentals collection.
type LedgerStore interface {
	LoadLedger(ctx context.Context) ([]ConfirmedRental, error)
	SaveLedger(ctx context.Context, entries []ConfirmedRental) error
}

// =============================================================================
// WORKFLOW - Submit / Decide / Delete / RunCleanup
// =============================================================================

// Workflow drives the request lifecycle. Zero-value Clock and NewID fall
// back to the real clock and random UUIDs; tests override them.
type Workflow struct {
	Requests RequestStore
	Ledger   LedgerStore
	Notifier Notifier
	Log      *zap.Logger

	Clock func() time.Time
	NewID func() string
}

func (w *Workflow) now() time.Time {
	if w.Clock != nil {
		return w.Clock()
	}
	return time.Now().UTC()
}

func (w *Workflow) newID() string {
	if w.NewID != nil {
		return w.NewID()
	}
	return uuid.NewString()
}

func (w *Workflow) log() *zap.Logger {
	if w.Log != nil {
		return w.Log
	}
	return zap.NewNop()
}

func (w *Workflow) notifier() Notifier {
	if w.Notifier != nil {
		return w.Notifier
	}
	return NopNotifier{}
}

// -----------------------------------------------------------------------------
// Submit
// -----------------------------------------------------------------------------

// SubmitInput carries a parsed submission. Fields arrive already typed; the
// API layer is responsible for JSON decoding and date parsing.
type SubmitInput struct {
	ProductID     string
	ProductTitle  string
	StartDate     Date
	EndDate       Date
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Message       string
	TotalPrice    decimal.Decimal
}

func (in SubmitInput) validate() error {
	var missing []string
	if in.ProductID == "" {
		missing = append(missing, "productId")
	}
	if in.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}
	if in.EndDate.IsZero() {
		missing = append(missing, "endDate")
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		missing = append(missing, "customerEmail")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Reason: "missing required fields"}
	}

	if !in.EndDate.After(in.StartDate) {
		return &ValidationError{Reason: "endDate must be after startDate"}
	}
	if in.TotalPrice.IsNegative() {
		return &ValidationError{Fields: []string{"totalPrice"}, Reason: "must not be negative"}
	}
	return nil
}

// Submit validates the input, checks the confirmed ledger for conflicts and
// persists a new pending request. The operator notification is best-effort.
func (w *Workflow) Submit(ctx context.Context, in SubmitInput) (*RentalRequest, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	requested := DateRange{Start: in.StartDate, End: in.EndDate}

	ledger, err := w.Ledger.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("load confirmed rentals: %w", err)
	}
	if existing, found := FindConflict(in.ProductID, requested, ledger); found {
		metrics.BookingConflictsTotal.Inc()
		return nil, &ConflictError{
			ProductID: in.ProductID,
			Requested: requested,
			Existing:  existing.Range(),
		}
	}

	requests, err := w.Requests.LoadRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rental requests: %w", err)
	}

	now := w.now()
	req := RentalRequest{
		ID:            w.newID(),
		ProductID:     in.ProductID,
		ProductTitle:  in.ProductTitle,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Message:       strings.TrimSpace(in.Message),
		TotalPrice:    in.TotalPrice,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	requests = append(requests, req)
	if err := w.Requests.SaveRequests(ctx, requests); err != nil {
		return nil, fmt.Errorf("save rental requests: %w", err)
	}

	metrics.RequestsSubmittedTotal.Inc()
	w.log().Info("rental request submitted",
		zap.String("request_id", req.ID),
		zap.String("product_id", req.ProductID),
		zap.String("period", req.Range().String()),
	)

	if err := w.notifier().RequestSubmitted(ctx, req); err != nil {
		metrics.NotifyErrorsTotal.WithLabelValues("submitted").Inc()
		w.log().Warn("submission notification failed",
			zap.String("request_id", req.ID), zap.Error(err))
	}

	return &req, nil
}

// -----------------------------------------------------------------------------
// Decide
// -----------------------------------------------------------------------------

// Decide applies an admin decision. status must be StatusApproved or
// StatusRejected. Approval unconditionally appends a ledger snapshot, even
// if the request was already approved before (see the state-machine note in
// the file header). The customer notification is best-effort.
func (w *Workflow) Decide(ctx context.Context, requestID string, status RequestStatus, adminNote string) (*RentalRequest, error) {
	if !status.DecisionTarget() {
		return nil, ErrInvalidStatus
	}

	requests, err := w.Requests.LoadRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rental requests: %w", err)
	}

	idx := -1
	for i := range requests {
		if requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrRequestNotFound
	}

	now := w.now()
	requests[idx].Status = status
	requests[idx].AdminNote = adminNote
	requests[idx].UpdatedAt = now

	if status == StatusApproved {
		ledger, err := w.Ledger.LoadLedger(ctx)
		if err != nil {
			return nil, fmt.Errorf("load confirmed rentals: %w", err)
		}
		ledger = append(ledger, newConfirmedRental(w.newID(), requests[idx], now))
		if err := w.Ledger.SaveLedger(ctx, ledger); err != nil {
			return nil, fmt.Errorf("save confirmed rentals: %w", err)
		}
	}

	if err := w.Requests.SaveRequests(ctx, requests); err != nil {
		return nil, fmt.Errorf("save rental requests: %w", err)
	}

	switch status {
	case StatusApproved:
		metrics.RequestsApprovedTotal.Inc()
	case StatusRejected:
		metrics.RequestsRejectedTotal.Inc()
	}

	decided := requests[idx]
	w.log().Info("rental request decided",
		zap.String("request_id", decided.ID),
		zap.String("status", string(status)),
	)

	if err := w.notifier().RequestDecided(ctx, decided); err != nil {
		metrics.NotifyErrorsTotal.WithLabelValues("decided").Inc()
		w.log().Warn("decision notification failed",
			zap.String("request_id", decided.ID), zap.Error(err))
	}

	return &decided, nil
}

// -----------------------------------------------------------------------------
// Delete
// -----------------------------------------------------------------------------

// Delete removes a request and purges every ledger entry referencing it.
// The purge runs regardless of the request's last status: if a stale or
// duplicate ledger entry exists for this request, deleting the request is
// the admin's way to get rid of it. A failed purge is logged, not surfaced;
// the request deletion itself already succeeded.
func (w *Workflow) Delete(ctx context.Context, requestID string) (*RentalRequest, error) {
	requests, err := w.Requests.LoadRequests(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rental requests: %w", err)
	}

	idx := -1
	for i := range requests {
		if requests[i].ID == requestID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrRequestNotFound
	}

	deleted := requests[idx]
	requests = append(requests[:idx], requests[idx+1:]...)
	if err := w.Requests.SaveRequests(ctx, requests); err != nil {
		return nil, fmt.Errorf("save rental requests: %w", err)
	}

	if err := w.purgeLedgerEntries(ctx, requestID); err != nil {
		w.log().Warn("ledger purge after request deletion failed",
			zap.String("request_id", requestID), zap.Error(err))
	}

	w.log().Info("rental request deleted",
		zap.String("request_id", deleted.ID),
		zap.String("product_title", deleted.ProductTitle),
	)
	return &deleted, nil
}

func (w *Workflow) purgeLedgerEntries(ctx context.Context, requestID string) error {
	ledger, err := w.Ledger.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("load confirmed rentals: %w", err)
	}

	kept := ledger[:0]
	for _, entry := range ledger {
		if entry.RequestID != requestID {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(ledger) {
		return nil
	}
	if err := w.Ledger.SaveLedger(ctx, kept); err != nil {
		return fmt.Errorf("save confirmed rentals: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// RunCleanup
// -----------------------------------------------------------------------------

// RunCleanup deduplicates the confirmed ledger and persists the result.
// Idempotent: a second pass over a cleaned ledger removes nothing.
func (w *Workflow) RunCleanup(ctx context.Context) (CleanupResult, error) {
	ledger, err := w.Ledger.LoadLedger(ctx)
	if err != nil {
		return CleanupResult{}, fmt.Errorf("load confirmed rentals: %w", err)
	}

	cleaned, result := CleanupLedger(ledger)
	if err := w.Ledger.SaveLedger(ctx, cleaned); err != nil {
		return CleanupResult{}, fmt.Errorf("save confirmed rentals: %w", err)
	}

	metrics.CleanupRemovedTotal.Add(float64(result.Removed))
	w.log().Info("confirmed rentals cleaned up",
		zap.Int("original", result.Original),
		zap.Int("cleaned", result.Cleaned),
		zap.Int("removed", result.Removed),
	)
	return result, nil
}
