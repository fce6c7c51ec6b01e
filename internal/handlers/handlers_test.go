package handlers

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog/internal/auth"
	"blog/internal/mail"
	"blog/internal/middleware"
	"blog/internal/models"
	"blog/internal/store"
	"blog/internal/upload"
)

// spyMailer records welcome sends so tests can observe the fire-and-forget
// dispatch.
type spyMailer struct {
	sent chan string
}

func (m *spyMailer) SendWelcome(ctx context.Context, email string) error {
	m.sent <- email
	return nil
}

type testApp struct {
	router *chi.Mux
	users  *store.MemoryUserStore
	posts  *store.MemoryPostStore
	tokens *auth.TokenManager
	mails  chan string
}

// newTestApp wires the handlers onto the same routes the server registers,
// backed by in-memory stores.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tokens, err := auth.NewTokenManager([]byte("test-secret"))
	require.NoError(t, err)

	users := store.NewMemoryUserStore()
	posts := store.NewMemoryPostStore()
	mails := make(chan string, 8)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	h, err := New(Deps{
		Users:    users,
		Posts:    posts,
		Tokens:   tokens,
		Notifier: mail.NewNotifier(&spyMailer{sent: mails}, log),
		Uploads:  upload.NewSaver(t.TempDir(), "uploads"),
		Log:      log,
		PerPage:  9,
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/", h.Public.Home)
	r.Get("/post/{id}", h.Public.PostByID)
	r.Post("/search", h.Public.Search)

	r.Get("/admin", h.Auth.LoginPage)
	r.Post("/admin", h.Auth.Login)
	r.Get("/register", h.Auth.RegisterPage)
	r.Post("/register", h.Auth.Register)
	r.Get("/logout", h.Auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens, users))

		r.Get("/dashboard", h.Admin.Dashboard)
		r.Get("/add-post", h.Admin.AddPostPage)
		r.Post("/add-post", h.Admin.AddPost)
		r.Get("/edit-post/{id}", h.Admin.EditPostPage)
		r.Put("/edit-post/{id}", h.Admin.EditPost)
		r.Post("/edit-post/{id}", h.Admin.EditPost)
		r.Delete("/delete-post/{id}", h.Admin.DeletePost)
		r.Post("/delete-post/{id}", h.Admin.DeletePost)
	})

	return &testApp{router: r, users: users, posts: posts, tokens: tokens, mails: mails}
}

// adminToken creates an admin account and returns a session token for it.
func (a *testApp) adminToken(t *testing.T, email string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := a.users.Create(context.Background(), &models.User{
		Email: email, Password: string(hash), Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	token, err := a.tokens.Issue(u.ID)
	require.NoError(t, err)
	return token
}

func (a *testApp) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func formRequest(method, path string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// multipartRequest builds a multipart body from plain fields and
// field→filename file parts (each with throwaway content).
func multipartRequest(t *testing.T, method, path string, fields map[string]string, files map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, filename := range files {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}
