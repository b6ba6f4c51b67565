/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Inputs are decoded
  into these and validated/parsed once at the boundary; domain types are
  serialized directly in responses (their json tags ARE the API contract,
  inherited from the site's data files).

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response wrappers

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rental-engine/booking"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// SubmitRentalRequest is the customer booking submission.
type SubmitRentalRequest struct {
	ProductID     string          `json:"productId"`
	ProductTitle  string          `json:"productTitle"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Message       string          `json:"message"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// SubmitRentalResponse acknowledges a stored submission.
type SubmitRentalResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}

// DecideRentalRequest is the admin decision body.
type DecideRentalRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"adminNote"`
}

// DeletedRequestSummary identifies what was deleted.
type DeletedRequestSummary struct {
	ID           string `json:"id"`
	ProductTitle string `json:"productTitle"`
	CustomerName string `json:"customerName"`
}

// DeleteRentalResponse acknowledges a deletion.
type DeleteRentalResponse struct {
	Success        bool                  `json:"success"`
	Message        string                `json:"message"`
	DeletedRequest DeletedRequestSummary `json:"deletedRequest"`
}

// CleanupResponse reports a manual cleanup run.
type CleanupResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Details booking.CleanupResult `json:"details"`
}

// ArticleRequest is the create/update body for catalog articles.
// Price is a pointer so "missing" and "0" can be told apart.
type ArticleRequest struct {
	Title       string           `json:"title"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	ImageURL    string           `json:"imageUrl"`
	Features    []string         `json:"features"`
	Available   *bool            `json:"available"`
}

// ContactRequest is the website contact form body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SuccessResponse is the generic {success, message} acknowledgment.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope for all non-2xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
