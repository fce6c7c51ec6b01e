package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"blog/internal/models"
)

const uniqueViolation = "23505"

type PostgresUserStore struct {
	db *sqlx.DB
}

func NewPostgresUserStore(db *sqlx.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE email=$1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find user by email: %w", err)
	}
	return &u, nil
}

func (s *PostgresUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `
		SELECT id, email, password_hash, role, created_at
		FROM users
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: find user by id: %w", err)
	}
	return &u, nil
}

func (s *PostgresUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, user.Email, user.Password, user.Role).Scan(&user.ID, &user.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("store: create user: %w", err)
	}
	return user, nil
}
