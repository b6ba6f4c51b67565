// Package catalog manages the rentable article catalog. Articles are plain
// CRUD records; all booking logic lives in package booking.
package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrArticleNotFound is returned when an article id is unknown.
	ErrArticleNotFound = errors.New("article not found")

	// ErrMissingFields is returned when a create/update omits required fields.
	ErrMissingFields = errors.New("missing required fields: title, category, description, price")
)

// Article is a rentable catalog item. Price is per day.
type Article struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	Features    []string        `json:"features"`
	Available   bool            `json:"available"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ArticleInput carries the writable article fields. Price is a pointer so a
// missing price can be told apart from a zero price; Available defaults to
// true when omitted.
type ArticleInput struct {
	Title       string
	Category    string
	Description string
	Price       *decimal.Decimal
	ImageURL    string
	Features    []string
	Available   *bool
}

func (in ArticleInput) validate() error {
	if in.Title == "" || in.Category == "" || in.Description == "" || in.Price == nil {
		return ErrMissingFields
	}
	return nil
}
