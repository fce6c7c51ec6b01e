package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"blog/internal/models"
)

type PostgresPostStore struct {
	db *sqlx.DB
}

func NewPostgresPostStore(db *sqlx.DB) *PostgresPostStore {
	return &PostgresPostStore{db: db}
}

func (s *PostgresPostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO posts (title, body, photos)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, post.Title, post.Body, post.Photos).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("store: create post: %w", err)
	}
	return post, nil
}

func (s *PostgresPostStore) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	err := s.db.QueryRowxContext(ctx, `
		UPDATE posts
		SET title=$1, body=$2, photos=$3, updated_at=NOW()
		WHERE id=$4
		RETURNING created_at, updated_at
	`, post.Title, post.Body, post.Photos, post.ID).Scan(&post.CreatedAt, &post.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: update post: %w", err)
	}
	return post, nil
}

func (s *PostgresPostStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, id); err != nil {
		return fmt.Errorf("store: delete post: %w", err)
	}
	return nil
}

func (s *PostgresPostStore) Get(ctx context.Context, id int64) (*models.Post, error) {
	var p models.Post
	err := s.db.GetContext(ctx, &p, `
		SELECT id, title, body, photos, created_at, updated_at
		FROM posts
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get post: %w", err)
	}
	return &p, nil
}

func (s *PostgresPostStore) List(ctx context.Context, page, perPage int) ([]models.Post, bool, error) {
	if page < 1 {
		page = 1
	}

	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, `
		SELECT id, title, body, photos, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, false, fmt.Errorf("store: list posts: %w", err)
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts`); err != nil {
		return nil, false, fmt.Errorf("store: count posts: %w", err)
	}

	return posts, page*perPage < total, nil
}

func (s *PostgresPostStore) All(ctx context.Context) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, `
		SELECT id, title, body, photos, created_at, updated_at
		FROM posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("store: all posts: %w", err)
	}
	return posts, nil
}

func (s *PostgresPostStore) Search(ctx context.Context, term string) ([]models.Post, error) {
	posts := []models.Post{}
	err := s.db.SelectContext(ctx, &posts, `
		SELECT id, title, body, photos, created_at, updated_at
		FROM posts
		WHERE title ILIKE '%' || $1 || '%' OR body ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
	`, term)
	if err != nil {
		return nil, fmt.Errorf("store: search posts: %w", err)
	}
	return posts, nil
}
