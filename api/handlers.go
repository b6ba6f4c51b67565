/*
handlers.go - HTTP API handlers for the rental booking site

PURPOSE:
  Exposes the catalog and booking workflow via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Articles:
    GET    /api/articles                       List all articles
    GET    /api/articles/category/{category}   List articles by category
    GET    /api/articles/{id}                  Get article
    POST   /api/articles                       Create article
    PUT    /api/articles/{id}                  Update article
    DELETE /api/articles/{id}                  Delete article

  Rental requests:
    GET    /api/rental-requests                List all requests (admin)
    POST   /api/rental-requests                Submit booking request
    PUT    /api/rental-requests/{id}           Approve/reject (admin)
    DELETE /api/rental-requests/{id}           Delete request (admin)

  Confirmed rentals:
    GET    /api/confirmed-rentals              Public ledger (calendar blocking)
    GET    /mietdaten.json                     Legacy alias for the same
    POST   /api/cleanup-rentals                Deduplicate the ledger (admin)

  Other:
    POST   /api/contact                        Contact form
    GET    /metrics                            Prometheus metrics

ERROR HANDLING:
  Errors are returned as JSON {"error": "..."} with appropriate status:
  - 400: Validation errors, booking conflicts, invalid status
  - 404: Unknown article/request id
  - 500: Persistence or email failures

SECURITY NOTE:
  NO authentication or authorization. The admin endpoints are public, as
  they have always been on this site. Do not expose this to the open
  internet without a reverse proxy in front.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/rental-engine/booking"
	"github.com/warp/rental-engine/catalog"
	"github.com/warp/rental-engine/mailer"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Workflow *booking.Workflow
	Articles *catalog.Service
	Ledger   booking.LedgerStore
	Mailer   *mailer.Mailer
	Log      *zap.Logger
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.Log.Error("response encoding failed", zap.Error(err))
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respond(w, status, ErrorResponse{Error: msg})
}

// fail maps a domain error onto an HTTP status.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	switch {
	case booking.IsClientError(err) || errors.Is(err, catalog.ErrMissingFields):
		h.respondError(w, http.StatusBadRequest, err.Error())
	case booking.IsNotFound(err) || errors.Is(err, catalog.ErrArticleNotFound):
		h.respondError(w, http.StatusNotFound, err.Error())
	default:
		h.Log.Error("internal error", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// =============================================================================
// ARTICLE HANDLERS
// =============================================================================

// ListArticles handles GET /api/articles
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Articles.List(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, articles)
}

// ListArticlesByCategory handles GET /api/articles/category/{category}
func (h *Handler) ListArticlesByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	articles, err := h.Articles.ListByCategory(r.Context(), category)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, articles)
}

// GetArticle handles GET /api/articles/{id}
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := h.Articles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, article)
}

func articleInput(req ArticleRequest) catalog.ArticleInput {
	return catalog.ArticleInput{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Features:    req.Features,
		Available:   req.Available,
	}
}

// CreateArticle handles POST /api/articles
func (h *Handler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	article, err := h.Articles.Create(r.Context(), articleInput(req))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusCreated, article)
}

// UpdateArticle handles PUT /api/articles/{id}
func (h *Handler) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req ArticleRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	article, err := h.Articles.Update(r.Context(), chi.URLParam(r, "id"), articleInput(req))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, article)
}

// DeleteArticle handles DELETE /api/articles/{id}
func (h *Handler) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := h.Articles.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, SuccessResponse{Success: true, Message: "article deleted"})
}

// =============================================================================
// RENTAL REQUEST HANDLERS
// =============================================================================

// ListRentalRequests handles GET /api/rental-requests
func (h *Handler) ListRentalRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Workflow.Requests.LoadRequests(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, requests)
}

// SubmitRentalRequest handles POST /api/rental-requests
func (h *Handler) SubmitRentalRequest(w http.ResponseWriter, r *http.Request) {
	var req SubmitRentalRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	in := booking.SubmitInput{
		ProductID:     req.ProductID,
		ProductTitle:  req.ProductTitle,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Message:       req.Message,
		TotalPrice:    req.TotalPrice,
	}

	// Dates: missing stays zero (the workflow reports the missing field);
	// present but malformed is a 400 right here.
	if strings.TrimSpace(req.StartDate) != "" {
		d, err := booking.ParseDate(req.StartDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.StartDate = d
	}
	if strings.TrimSpace(req.EndDate) != "" {
		d, err := booking.ParseDate(req.EndDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		in.EndDate = d
	}

	created, err := h.Workflow.Submit(r.Context(), in)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.respond(w, http.StatusCreated, SubmitRentalResponse{
		Success:   true,
		Message:   "request submitted",
		RequestID: created.ID,
	})
}

// DecideRentalRequest handles PUT /api/rental-requests/{id}
func (h *Handler) DecideRentalRequest(w http.ResponseWriter, r *http.Request) {
	var req DecideRentalRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := h.Workflow.Decide(r.Context(),
		chi.URLParam(r, "id"), booking.RequestStatus(req.Status), req.AdminNote)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, updated)
}

// DeleteRentalRequest handles DELETE /api/rental-requests/{id}
func (h *Handler) DeleteRentalRequest(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Workflow.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, DeleteRentalResponse{
		Success: true,
		Message: "request deleted",
		DeletedRequest: DeletedRequestSummary{
			ID:           deleted.ID,
			ProductTitle: deleted.ProductTitle,
			CustomerName: deleted.CustomerName,
		},
	})
}

// =============================================================================
// CONFIRMED RENTALS / CLEANUP
// =============================================================================

// ListConfirmedRentals handles GET /api/confirmed-rentals and the legacy
// GET /mietdaten.json. Public: the booking form grays out blocked dates
// from this.
func (h *Handler) ListConfirmedRentals(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Ledger.LoadLedger(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, entries)
}

// CleanupRentals handles POST /api/cleanup-rentals
func (h *Handler) CleanupRentals(w http.ResponseWriter, r *http.Request) {
	result, err := h.Workflow.RunCleanup(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.respond(w, http.StatusOK, CleanupResponse{
		Success: true,
		Message: "confirmed rentals cleaned up",
		Details: result,
	})
}

// =============================================================================
// CONTACT FORM
// =============================================================================

// SubmitContact handles POST /api/contact. Unlike booking notifications,
// a failed send here IS a failed operation.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeBody(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		h.respondError(w, http.StatusBadRequest, "name, email and message are required")
		return
	}

	err := h.Mailer.SendContact(r.Context(), mailer.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		h.Log.Error("contact mail failed", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to send message")
		return
	}
	h.respond(w, http.StatusOK, SuccessResponse{Success: true, Message: "message sent"})
}
