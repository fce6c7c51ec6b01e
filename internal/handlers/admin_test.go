package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog/internal/models"
	"blog/internal/store"
)

func TestPrivilegedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	// a post that must survive every unauthorized attempt untouched
	p, err := app.posts.Create(context.Background(), &models.Post{Title: "keep", Body: "me"})
	require.NoError(t, err)

	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/add-post"},
		{http.MethodPost, "/add-post"},
		{http.MethodGet, "/edit-post/" + strconv.FormatInt(p.ID, 10)},
		{http.MethodPut, "/edit-post/" + strconv.FormatInt(p.ID, 10)},
		{http.MethodDelete, "/delete-post/" + strconv.FormatInt(p.ID, 10)},
	}

	for _, token := range []string{"", "garbage"} {
		for _, rt := range routes {
			w := app.do(httptest.NewRequest(rt.method, rt.path, nil), token)
			assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s token=%q", rt.method, rt.path, token)
		}
	}

	got, err := app.posts.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep", got.Title)
}

func TestUserRoleForbiddenEverywhere(t *testing.T) {
	app := newTestApp(t)

	u, err := app.users.Create(context.Background(), &models.User{
		Email: "plain@example.com", Password: "x", Role: models.RoleUser,
	})
	require.NoError(t, err)
	token, err := app.tokens.Issue(u.ID)
	require.NoError(t, err)

	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/add-post"},
		{http.MethodPost, "/add-post"},
		{http.MethodGet, "/edit-post/1"},
		{http.MethodPut, "/edit-post/1"},
		{http.MethodDelete, "/delete-post/1"},
	}
	for _, rt := range routes {
		w := app.do(httptest.NewRequest(rt.method, rt.path, nil), token)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", rt.method, rt.path)
	}
}

func TestAddPostValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t, "admin@example.com")

	w := app.do(multipartRequest(t, http.MethodPost, "/add-post",
		map[string]string{"title": "only a title"}, nil), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.do(multipartRequest(t, http.MethodPost, "/add-post",
		map[string]string{"body": "only a body"}, nil), token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	all, err := app.posts.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestAddPostWithPhotos(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t, "admin@example.com")

	w := app.do(multipartRequest(t, http.MethodPost, "/add-post",
		map[string]string{"title": "A", "body": "B"},
		map[string]string{"photo1": "cat.png", "photo3": "dog.jpg"},
	), token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	all, err := app.posts.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	p := all[0]
	assert.Equal(t, "A", p.Title)
	assert.Equal(t, "B", p.Body)
	require.Len(t, p.Photos, 2)
	assert.Contains(t, p.Photos[0], "uploads/photo1-")
	assert.Contains(t, p.Photos[0], ".png")
	assert.Contains(t, p.Photos[1], "uploads/photo3-")
}

func TestEditPostMergesPhotosBySlot(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t, "admin@example.com")

	p, err := app.posts.Create(context.Background(), &models.Post{
		Title:  "old title",
		Body:   "old body",
		Photos: models.PhotoList{"uploads/photo1-old.png", "uploads/photo2-old.png"},
	})
	require.NoError(t, err)

	w := app.do(multipartRequest(t, http.MethodPut, "/edit-post/"+strconv.FormatInt(p.ID, 10),
		map[string]string{"title": "new title", "body": "new body"},
		map[string]string{"photo2": "replacement.png"},
	), token)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	got, err := app.posts.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "new body", got.Body)
	require.Len(t, got.Photos, 2)
	assert.Equal(t, "uploads/photo1-old.png", got.Photos[0], "untouched slot keeps its photo")
	assert.Contains(t, got.Photos[1], "uploads/photo2-", "uploaded slot is replaced")
	assert.NotEqual(t, "uploads/photo2-old.png", got.Photos[1])
}

func TestEditMissingPostNotFound(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t, "admin@example.com")

	w := app.do(multipartRequest(t, http.MethodPut, "/edit-post/999",
		map[string]string{"title": "t", "body": "b"}, nil), token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	all, err := app.posts.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "failed update must leave the store unchanged")
}

func TestDeleteThenGetNotFound(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t, "admin@example.com")

	p, err := app.posts.Create(context.Background(), &models.Post{Title: "A", Body: "B"})
	require.NoError(t, err)

	w := app.do(httptest.NewRequest(http.MethodDelete, "/delete-post/"+strconv.FormatInt(p.ID, 10), nil), token)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	_, err = app.posts.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// deleting an absent id reports success
	w = app.do(httptest.NewRequest(http.MethodDelete, "/delete-post/"+strconv.FormatInt(p.ID, 10), nil), token)
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestDashboardListsPosts(t *testing.T) {
	app := newTestApp(t)
	token := app.adminToken(t, "admin@example.com")

	_, err := app.posts.Create(context.Background(), &models.Post{Title: "visible on dashboard", Body: "b"})
	require.NoError(t, err)

	w := app.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visible on dashboard")
}
