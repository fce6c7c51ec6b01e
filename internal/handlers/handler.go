package handlers

import (
	"log/slog"

	"blog/internal/auth"
	"blog/internal/mail"
	"blog/internal/store"
	"blog/internal/upload"
)

type Handler struct {
	Auth   *AuthHandler
	Admin  *AdminHandler
	Public *PublicHandler
}

type Deps struct {
	Users    store.UserStore
	Posts    store.PostStore
	Tokens   *auth.TokenManager
	Notifier *mail.Notifier
	Uploads  *upload.Saver
	Log      *slog.Logger
	PerPage  int
}

func New(deps Deps) (*Handler, error) {
	rd, err := NewRenderer(deps.Log)
	if err != nil {
		return nil, err
	}
	return &Handler{
		Auth:   &AuthHandler{deps: deps, render: rd},
		Admin:  &AdminHandler{deps: deps, render: rd},
		Public: &PublicHandler{deps: deps, render: rd},
	}, nil
}
