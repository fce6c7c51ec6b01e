// Package store persists users and posts. Postgres implementations back the
// server; in-memory implementations back tests.
package store

import (
	"context"
	"errors"

	"blog/internal/models"
)

var (
	ErrNotFound   = errors.New("store: not found")
	ErrEmailTaken = errors.New("store: email already taken")
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	// Create inserts the user, relying on the store's unique constraint for
	// the atomic email check. Password must already be hashed by the caller.
	Create(ctx context.Context, user *models.User) (*models.User, error)
}

type PostStore interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// Update overwrites title, body and photos. Returns ErrNotFound if the
	// id does not resolve; the store is left unchanged in that case.
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	// Delete removes by id. Deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Post, error)
	// List returns the requested page sorted by creation time descending,
	// plus whether a further page exists.
	List(ctx context.Context, page, perPage int) ([]models.Post, bool, error)
	All(ctx context.Context) ([]models.Post, error)
	// Search matches term as a case-insensitive substring of title or body.
	Search(ctx context.Context, term string) ([]models.Post, error)
}
