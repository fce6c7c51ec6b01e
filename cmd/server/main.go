package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/db"
	"blog/internal/handlers"
	"blog/internal/mail"
	"blog/internal/middleware"
	"blog/internal/models"
	"blog/internal/store"
	"blog/internal/upload"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Error("config", "err", err)
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if err := db.Migrate(context.Background(), dbConn); err != nil {
		log.Error("db migrate", "err", err)
		os.Exit(1)
	}

	tokens, err := auth.NewTokenManager([]byte(cfg.JWTSecret))
	if err != nil {
		log.Error("token manager", "err", err)
		os.Exit(1)
	}

	users := store.NewPostgresUserStore(dbConn)
	posts := store.NewPostgresPostStore(dbConn)

	if err := seedAdmin(context.Background(), users, cfg, log); err != nil {
		log.Error("admin seed", "err", err)
		os.Exit(1)
	}

	var mailer mail.Mailer = mail.NopMailer{}
	if cfg.SMTPHost != "" {
		mailer = &mail.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.MailFrom,
		}
	}

	h, err := handlers.New(handlers.Deps{
		Users:    users,
		Posts:    posts,
		Tokens:   tokens,
		Notifier: mail.NewNotifier(mailer, log),
		Uploads:  upload.NewSaver(cfg.PublicDir, cfg.UploadsDir),
		Log:      log,
		PerPage:  cfg.PerPage,
	})
	if err != nil {
		log.Error("handlers", "err", err)
		os.Exit(1)
	}

	r := chi.NewRouter()

	// Static assets and uploaded media
	fileServer := http.FileServer(http.Dir(cfg.PublicDir))
	r.Handle("/css/*", fileServer)
	r.Handle("/uploads/*", fileServer)

	// Public
	r.Get("/", h.Public.Home)
	r.Get("/post/{id}", h.Public.PostByID)
	r.Post("/search", h.Public.Search)

	r.Get("/admin", h.Auth.LoginPage)
	r.Post("/admin", h.Auth.Login)
	r.Get("/register", h.Auth.RegisterPage)
	r.Post("/register", h.Auth.Register)
	r.Get("/logout", h.Auth.Logout)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(tokens, users))

		r.Get("/dashboard", h.Admin.Dashboard)
		r.Get("/add-post", h.Admin.AddPostPage)
		r.Post("/add-post", h.Admin.AddPost)
		r.Get("/edit-post/{id}", h.Admin.EditPostPage)
		r.Put("/edit-post/{id}", h.Admin.EditPost)
		r.Post("/edit-post/{id}", h.Admin.EditPost) // HTML forms cannot PUT
		r.Delete("/delete-post/{id}", h.Admin.DeletePost)
		r.Post("/delete-post/{id}", h.Admin.DeletePost)
	})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		log.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	log.Info("server exited")
}

// seedAdmin ensures the configured bootstrap admin account exists.
// Self-registration only ever creates user-role accounts.
func seedAdmin(ctx context.Context, users store.UserStore, cfg *config.Config, log *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if _, err := users.Create(ctx, &models.User{
		Email:    cfg.AdminEmail,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}); err != nil && !errors.Is(err, store.ErrEmailTaken) {
		return err
	}

	log.Info("seeded admin account", "email", cfg.AdminEmail)
	return nil
}
