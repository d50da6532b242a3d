package storage

import (
	"context"
	"strings"
	"sync"

	"itemvault/internal/common"
	"itemvault/internal/server/models"
)

// MemoryStore keeps everything in process memory. State is lost on restart;
// that is fine for development and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*models.User // by id
	byEmail map[string]string       // lowercased email -> id
	items   map[string]*models.Item // by id
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
		items:   make(map[string]*models.Item),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return common.ErrEmailTaken
	}
	u := *user
	s.users[u.ID] = &u
	s.byEmail[key] = u.ID
	return nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, common.ErrNotFound
	}
	u := *s.users[id]
	return &u, nil
}

func (s *MemoryStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *MemoryStore) ListItems(ctx context.Context, userID string) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Item, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	sortItems(out)
	return out, nil
}

func (s *MemoryStore) GetItem(ctx context.Context, userID, id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return nil, common.ErrNotFound
	}
	out := *item
	return &out, nil
}

func (s *MemoryStore) SaveItem(ctx context.Context, item *models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := *item
	s.items[it.ID] = &it
	return nil
}

func (s *MemoryStore) DeleteItem(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.UserID != userID {
		return common.ErrNotFound
	}
	delete(s.items, id)
	return nil
}
