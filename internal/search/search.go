// Package search keeps an optional full-text index of projects.
package search

import (
	"context"
	"errors"
)

// ErrDisabled is returned by indexes that are not backed by a search engine.
var ErrDisabled = errors.New("search index disabled")

// Document is the searchable projection of a project.
type Document struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Index is implemented by the Elasticsearch backend and by Noop.
type Index interface {
	Enabled() bool
	// Search returns matching project ids, best match first.
	Search(ctx context.Context, query string, limit int) ([]uint, error)
	Upsert(ctx context.Context, doc Document) error
	Delete(ctx context.Context, id uint) error
	Reindex(ctx context.Context, docs []Document) error
}

// Noop is used when no search engine is configured; callers fall back to
// database matching.
type Noop struct{}

func (Noop) Enabled() bool { return false }

func (Noop) Search(context.Context, string, int) ([]uint, error) { return nil, ErrDisabled }

func (Noop) Upsert(context.Context, Document) error { return nil }

func (Noop) Delete(context.Context, uint) error { return nil }

func (Noop) Reindex(context.Context, []Document) error { return nil }
