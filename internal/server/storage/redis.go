package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"

	"itemvault/internal/common"
	"itemvault/internal/server/models"
)

// RedisStore persists users and items in Redis. Layout:
//
//	user:{id}            JSON user record
//	user:email:{email}   user id (lowercased email)
//	item:{id}            JSON item record
//	items:user:{userID}  set of item ids owned by the user
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// redisUser is the storage shape of a user; unlike the wire shape it has to
// carry the password hash.
type redisUser struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"password_hash"`
}

func userKey(id string) string       { return fmt.Sprintf("user:%s", id) }
func emailKey(email string) string   { return fmt.Sprintf("user:email:%s", strings.ToLower(email)) }
func itemKey(id string) string       { return fmt.Sprintf("item:%s", id) }
func userItemsKey(uid string) string { return fmt.Sprintf("items:user:%s", uid) }

func (s *RedisStore) CreateUser(ctx context.Context, user *models.User) error {
	// Claim the email first; SetNX loses the race for a taken address.
	claimed, err := s.client.SetNX(ctx, emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return common.ErrEmailTaken
	}

	data, err := json.Marshal(redisUser{
		ID: user.ID, Email: user.Email, Name: user.Name, PasswordHash: user.PasswordHash,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, userKey(user.ID), data, 0).Err()
}

func (s *RedisStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := s.client.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	return s.UserByID(ctx, id)
}

func (s *RedisStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	var u redisUser
	if err := json.Unmarshal([]byte(data), &u); err != nil {
		return nil, err
	}
	return &models.User{ID: u.ID, Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash}, nil
}

func (s *RedisStore) ListItems(ctx context.Context, userID string) ([]models.Item, error) {
	ids, err := s.client.SMembers(ctx, userItemsKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Item{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, itemKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, err
		}
		var item models.Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (s *RedisStore) GetItem(ctx context.Context, userID, id string) (*models.Item, error) {
	data, err := s.client.Get(ctx, itemKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, common.ErrNotFound
		}
		return nil, err
	}
	var item models.Item
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, common.ErrNotFound
	}
	return &item, nil
}

func (s *RedisStore) SaveItem(ctx context.Context, item *models.Item) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	pipe := s.client.Pipeline()
	pipe.Set(ctx, itemKey(item.ID), data, 0)
	pipe.SAdd(ctx, userItemsKey(item.UserID), item.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) DeleteItem(ctx context.Context, userID, id string) error {
	// Ownership check first; also yields ErrNotFound for missing items.
	if _, err := s.GetItem(ctx, userID, id); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, itemKey(id))
	pipe.SRem(ctx, userItemsKey(userID), id)
	_, err := pipe.Exec(ctx)
	return err
}
