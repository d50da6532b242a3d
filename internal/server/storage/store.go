// Package storage provides persistence for users and their items. Two
// implementations exist: an in-memory store for development and tests, and
// a Redis-backed one for a durable dev setup.
package storage

import (
	"context"
	"sort"

	"itemvault/internal/server/models"
)

// Store is the persistence boundary the HTTP layer depends on.
//
// Item operations are always scoped to an owner: an item id belonging to a
// different user behaves exactly like a missing one (common.ErrNotFound),
// so ownership never leaks through error shapes.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)

	ListItems(ctx context.Context, userID string) ([]models.Item, error)
	GetItem(ctx context.Context, userID, id string) (*models.Item, error)
	SaveItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, userID, id string) error
}

// sortItems orders a listing oldest first, ties broken by id so the order
// is stable.
func sortItems(items []models.Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
}
