package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ArticleStore persists the articles collection, whole-collection at a time.
type ArticleStore interface {
	LoadArticles(ctx context.Context) ([]Article, error)
	SaveArticles(ctx context.Context, articles []Article) error
}

// Service implements article CRUD over the store. Zero-value Clock and NewID
// fall back to the real clock and random UUIDs; tests override them.
type Service struct {
	Store ArticleStore

	Clock func() time.Time
	NewID func() string
}

func (s *Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// List returns all articles.
func (s *Service) List(ctx context.Context) ([]Article, error) {
	return s.Store.LoadArticles(ctx)
}

// ListByCategory returns the articles in the given category.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Article, error) {
	articles, err := s.Store.LoadArticles(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.Category == category {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Get returns a single article by id.
func (s *Service) Get(ctx context.Context, id string) (*Article, error) {
	articles, err := s.Store.LoadArticles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		if articles[i].ID == id {
			return &articles[i], nil
		}
	}
	return nil, ErrArticleNotFound
}

// Create validates the input and appends a new article.
func (s *Service) Create(ctx context.Context, in ArticleInput) (*Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	articles, err := s.Store.LoadArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	now := s.now()
	article := Article{
		ID:          s.newID(),
		Title:       strings.TrimSpace(in.Title),
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Price:       *in.Price,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		Features:    in.Features,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if article.Features == nil {
		article.Features = []string{}
	}
	if in.Available != nil {
		article.Available = *in.Available
	}

	articles = append(articles, article)
	if err := s.Store.SaveArticles(ctx, articles); err != nil {
		return nil, fmt.Errorf("save articles: %w", err)
	}
	return &article, nil
}

// Update validates the input and replaces the writable fields of an article.
func (s *Service) Update(ctx context.Context, id string, in ArticleInput) (*Article, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	articles, err := s.Store.LoadArticles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load articles: %w", err)
	}

	idx := -1
	for i := range articles {
		if articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrArticleNotFound
	}

	a := &articles[idx]
	a.Title = strings.TrimSpace(in.Title)
	a.Category = strings.TrimSpace(in.Category)
	a.Description = strings.TrimSpace(in.Description)
	a.Price = *in.Price
	a.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Features != nil {
		a.Features = in.Features
	}
	if in.Available != nil {
		a.Available = *in.Available
	}
	a.UpdatedAt = s.now()

	if err := s.Store.SaveArticles(ctx, articles); err != nil {
		return nil, fmt.Errorf("save articles: %w", err)
	}
	updated := articles[idx]
	return &updated, nil
}

// Delete removes an article by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	articles, err := s.Store.LoadArticles(ctx)
	if err != nil {
		return fmt.Errorf("load articles: %w", err)
	}

	idx := -1
	for i := range articles {
		if articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrArticleNotFound
	}

	articles = append(articles[:idx], articles[idx+1:]...)
	if err := s.Store.SaveArticles(ctx, articles); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}
	return nil
}
