// Package models defines the domain records exchanged with the server.
package models

import (
	"strings"
	"time"

	"itemvault/internal/common"
)

// User is the authenticated account as the server reports it. The client
// never mutates a User; it only receives one from login, signup, or the
// current-user lookup.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Item is a single entry in the user's collection. ID, UserID, and CreatedAt
// are server-issued; the client never assigns them.
type Item struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is the client-side projection of an Item used for create and update
// payloads. It deliberately carries none of the server-issued fields, so a
// Draft can never smuggle a stale id or timestamp into a request. Whether a
// Draft creates a new item or updates an existing one is decided by the
// caller, not inferred from its shape.
type Draft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate rejects drafts whose name is empty after trimming. Runs before
// any network call is made.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return common.ErrEmptyName
	}
	return nil
}
