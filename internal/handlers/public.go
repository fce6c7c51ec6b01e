package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"blog/internal/models"
	"blog/internal/store"
)

// PublicHandler serves the unauthenticated pages.
type PublicHandler struct {
	deps   Deps
	render *Renderer
}

type homeData struct {
	Posts       []models.Post
	CurrentPage int
	NextPage    int // 0 when there is no further page
}

// Home GET /
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	posts, hasNext, err := h.deps.Posts.List(r.Context(), page, h.deps.PerPage)
	if err != nil {
		h.deps.Log.Error("home list failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	next := 0
	if hasNext {
		next = page + 1
	}
	h.render.Render(w, http.StatusOK, "home", viewData{
		Title: "Go Blog",
		Data:  homeData{Posts: posts, CurrentPage: page, NextPage: next},
	})
}

// PostByID GET /post/{id}
func (h *PublicHandler) PostByID(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	post, err := h.deps.Posts.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.deps.Log.Error("post page load failed", "id", id, "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.render.Render(w, http.StatusOK, "post", viewData{Title: post.Title, Data: post})
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Search POST /search
//
// The term is stripped to alphanumerics before matching, so it can never
// smuggle wildcard or pattern syntax into the query.
func (h *PublicHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := nonAlphanumeric.ReplaceAllString(r.FormValue("searchTerm"), "")

	posts, err := h.deps.Posts.Search(r.Context(), term)
	if err != nil {
		h.deps.Log.Error("search failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.render.Render(w, http.StatusOK, "search", viewData{Title: "Search", Data: posts})
}
