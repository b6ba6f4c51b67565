/*
Package booking contains the rental booking core: the request lifecycle
(pending -> approved/rejected), conflict detection against the confirmed
ledger, and ledger cleanup.

KEY CONCEPTS IN THIS FILE (types.go):
  - RequestStatus: The request state machine values
  - RentalRequest: A customer's booking intent awaiting an admin decision
  - ConfirmedRental: A date-blocking ledger entry materialized on approval

DESIGN PRINCIPLES:
  1. Snapshots: ConfirmedRental copies the request fields at decision time,
     so later edits to articles or requests never rewrite history
  2. Precision: Uses decimal.Decimal for prices to avoid floating-point errors
  3. Day granularity: All dates are calendar days (see date.go)

SEE ALSO:
  - workflow.go: The lifecycle operating on these types
  - conflict.go: Overlap detection over ConfirmedRental entries
  - cleanup.go: Ledger deduplication
*/
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REQUEST STATUS - pending -> approved | rejected
// =============================================================================

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Valid reports whether s is one of the known status values.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DecisionTarget reports whether s is a status an admin decision may set.
// Pending is the initial state only; it is never a decision outcome.
func (s RequestStatus) DecisionTarget() bool {
	return s == StatusApproved || s == StatusRejected
}

// =============================================================================
// RENTAL REQUEST - Customer booking intent
// =============================================================================

// RentalRequest is a customer-submitted booking intent. Created with
// StatusPending; only the approval workflow mutates it afterwards.
type RentalRequest struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"productId"`
	ProductTitle  string          `json:"productTitle"`
	StartDate     Date            `json:"startDate"`
	EndDate       Date            `json:"endDate"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Message       string          `json:"message,omitempty"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Status        RequestStatus   `json:"status"`
	AdminNote     string          `json:"adminNote,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// Range returns the requested reservation span.
func (r RentalRequest) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// =============================================================================
// CONFIRMED RENTAL - Date-blocking ledger entry
// =============================================================================

// LedgerStatusConfirmed is the fixed status of every ledger entry.
const LedgerStatusConfirmed = "confirmed"

// ConfirmedRental is a materialized reservation. It is created only when a
// request is approved and carries a denormalized snapshot of the request at
// decision time. RequestID is a back-reference for lookup, not ownership.
type ConfirmedRental struct {
	ID            string          `json:"id"`
	RequestID     string          `json:"requestId"`
	ProductID     string          `json:"productId"`
	ProductTitle  string          `json:"productTitle"`
	StartDate     Date            `json:"startDate"`
	EndDate       Date            `json:"endDate"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Range returns the reserved span.
func (c ConfirmedRental) Range() DateRange {
	return DateRange{Start: c.StartDate, End: c.EndDate}
}

// newConfirmedRental snapshots an approved request into a ledger entry.
func newConfirmedRental(id string, req RentalRequest, now time.Time) ConfirmedRental {
	return ConfirmedRental{
		ID:            id,
		RequestID:     req.ID,
		ProductID:     req.ProductID,
		ProductTitle:  req.ProductTitle,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TotalPrice:    req.TotalPrice,
		Status:        LedgerStatusConfirmed,
		CreatedAt:     now,
	}
}
