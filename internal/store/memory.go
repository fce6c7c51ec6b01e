package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"blog/internal/models"
)

// MemoryUserStore is a mutex-guarded UserStore used in tests.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: map[int64]models.User{}}
}

func (s *MemoryUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, ErrEmailTaken
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return user, nil
}

// Count reports the number of stored users.
func (s *MemoryUserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// MemoryPostStore is a mutex-guarded PostStore used in tests.
type MemoryPostStore struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]models.Post
}

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{nextID: 1, posts: map[int64]models.Post{}}
}

func (s *MemoryPostStore) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post.ID = s.nextID
	s.nextID++
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Photos == nil {
		post.Photos = models.PhotoList{}
	}
	s.posts[post.ID] = *post
	return post, nil
}

func (s *MemoryPostStore) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.posts[post.ID]
	if !ok {
		return nil, ErrNotFound
	}
	post.CreatedAt = existing.CreatedAt
	post.UpdatedAt = time.Now()
	if post.Photos == nil {
		post.Photos = models.PhotoList{}
	}
	s.posts[post.ID] = *post
	return post, nil
}

func (s *MemoryPostStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *MemoryPostStore) Get(ctx context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryPostStore) List(ctx context.Context, page, perPage int) ([]models.Post, bool, error) {
	if page < 1 {
		page = 1
	}
	all := s.sorted()
	start := (page - 1) * perPage
	if start > len(all) {
		start = len(all)
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], page*perPage < len(all), nil
}

func (s *MemoryPostStore) All(ctx context.Context) ([]models.Post, error) {
	return s.sorted(), nil
}

func (s *MemoryPostStore) Search(ctx context.Context, term string) ([]models.Post, error) {
	term = strings.ToLower(term)
	var out []models.Post
	for _, p := range s.sorted() {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Body), term) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *MemoryPostStore) sorted() []models.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
