// Package models defines the server-side records. Wire shapes here are the
// contract the client's decoder relies on.
package models

import "time"

// User is an account. The password hash never leaves the server.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"-"`
}

// Item belongs to exactly one user. ID and CreatedAt are issued here, never
// accepted from a client.
type Item struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}
