package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"blog/internal/models"
	"blog/internal/store"
)

// maxUploadBytes bounds a single add/edit multipart body.
const maxUploadBytes = 10 << 20

var photoFields = [models.MaxPhotos]string{"photo1", "photo2", "photo3"}

// AdminHandler serves the privileged surface. Every route is registered
// behind middleware.RequireAdmin.
type AdminHandler struct {
	deps   Deps
	render *Renderer
}

// Dashboard GET /dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	posts, err := h.deps.Posts.All(r.Context())
	if err != nil {
		h.deps.Log.Error("dashboard list failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.render.Render(w, http.StatusOK, "dashboard", viewData{Title: "Dashboard", Data: posts})
}

// AddPostPage GET /add-post
func (h *AdminHandler) AddPostPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "add_post", viewData{Title: "Add Post"})
}

// AddPost POST /add-post
func (h *AdminHandler) AddPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	body := r.FormValue("body")
	if title == "" || body == "" {
		JSONError(w, http.StatusBadRequest, "All fields must be filled")
		return
	}

	photos, err := h.mergePhotos(r, nil)
	if err != nil {
		h.deps.Log.Error("photo upload failed", "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if _, err := h.deps.Posts.Create(r.Context(), &models.Post{
		Title:  title,
		Body:   body,
		Photos: photos,
	}); err != nil {
		// Uploaded files are orphaned here; logged, not rolled back.
		h.deps.Log.Error("create post failed", "err", err, "photos", photos)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// EditPostPage GET /edit-post/{id}
func (h *AdminHandler) EditPostPage(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	post, err := h.deps.Posts.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.deps.Log.Error("edit page load failed", "id", id, "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	h.render.Render(w, http.StatusOK, "edit_post", viewData{Title: "Edit Post", Data: post})
}

// EditPost PUT/POST /edit-post/{id}
//
// Photos merge by slot: a slot with no new upload keeps the photo already
// stored there; a new upload replaces only its own slot.
func (h *AdminHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		JSONError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	title := r.FormValue("title")
	body := r.FormValue("body")
	if title == "" || body == "" {
		JSONError(w, http.StatusBadRequest, "All fields must be filled")
		return
	}

	id := postID(r)
	existing, err := h.deps.Posts.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		JSONError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		h.deps.Log.Error("edit lookup failed", "id", id, "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	photos, err := h.mergePhotos(r, existing.Photos)
	if err != nil {
		h.deps.Log.Error("photo upload failed", "id", id, "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	existing.Title = title
	existing.Body = body
	existing.Photos = photos

	if _, err := h.deps.Posts.Update(r.Context(), existing); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			JSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		h.deps.Log.Error("update post failed", "id", id, "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.Redirect(w, r, "/edit-post/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// DeletePost DELETE/POST /delete-post/{id}
//
// Deletion is idempotent by id; an absent id is reported as success.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := postID(r)
	if err := h.deps.Posts.Delete(r.Context(), id); err != nil {
		h.deps.Log.Error("delete post failed", "id", id, "err", err)
		JSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// mergePhotos saves any uploaded photo fields and fills untouched slots from
// the existing list.
func (h *AdminHandler) mergePhotos(r *http.Request, existing models.PhotoList) (models.PhotoList, error) {
	photos := make(models.PhotoList, 0, models.MaxPhotos)
	for i, field := range photoFields {
		file, hdr, err := r.FormFile(field)
		if errors.Is(err, http.ErrMissingFile) {
			if i < len(existing) {
				photos = append(photos, existing[i])
			}
			continue
		}
		if err != nil {
			return nil, err
		}
		path, err := h.deps.Uploads.Save(field, file, hdr)
		if err != nil {
			return nil, err
		}
		photos = append(photos, path)
	}
	return photos, nil
}

func postID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}
