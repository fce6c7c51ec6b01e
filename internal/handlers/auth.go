package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"blog/internal/middleware"
	"blog/internal/models"
	"blog/internal/store"
)

type AuthHandler struct {
	deps   Deps
	render *Renderer
}

// LoginPage GET /admin
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin_login", viewData{Title: "Admin"})
}

// Login POST /admin
//
// The rejection message is identical for an unknown email and a wrong
// password so the response cannot be used for account enumeration.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	reject := func() {
		h.render.Render(w, http.StatusUnauthorized, "admin_login", viewData{
			Title: "Admin",
			Error: "Invalid Credentials",
		})
	}

	user, err := h.deps.Users.FindByEmail(r.Context(), email)
	if errors.Is(err, store.ErrNotFound) {
		reject()
		return
	}
	if err != nil {
		h.deps.Log.Error("login lookup failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		reject()
		return
	}

	// Best-effort; never blocks or fails the login.
	h.deps.Notifier.Welcome(user.Email)

	token, err := h.deps.Tokens.Issue(user.ID)
	if err != nil {
		h.deps.Log.Error("token issue failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// RegisterPage GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "admin_register", viewData{
		Title: "Admin",
		Error: r.URL.Query().Get("error"),
	})
}

// Register POST /register
//
// Self-registration always creates a user-role account; any role field in
// the form is ignored. Admins are seeded from configuration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.render.Render(w, http.StatusBadRequest, "admin_register", viewData{
			Title: "Admin",
			Error: "Email and password are required",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.deps.Log.Error("password hash failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	_, err = h.deps.Users.Create(r.Context(), &models.User{
		Email:    email,
		Password: string(hash),
		Role:     models.RoleUser,
	})
	if errors.Is(err, store.ErrEmailTaken) {
		h.render.Render(w, http.StatusConflict, "admin_register", viewData{
			Title: "Admin",
			Error: "Email already in use",
		})
		return
	}
	if err != nil {
		h.deps.Log.Error("register failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.deps.Notifier.Welcome(email)

	// Registration does not establish a session; the caller logs in next.
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// Logout GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
