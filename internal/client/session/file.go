package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const credFileName = "credentials.json"

// EnvToken is an environment override for the stored token. When set, it
// wins over the credentials file and cannot be cleared by Clear.
const EnvToken = "ITEMVAULT_TOKEN"

// credentials is the on-disk shape of the stored token.
type credentials struct {
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// FileStore keeps the token in a JSON file under the user's home directory
// (~/.itemvault/credentials.json by default). The directory is created with
// 0700 and the file written with 0600.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir. An empty dir resolves to
// ~/.itemvault.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("home: %w", err)
		}
		dir = filepath.Join(home, ".itemvault")
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, credFileName)
}

func (s *FileStore) Set(token string) error {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return fmt.Errorf("empty token")
	}
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(credentials{Token: token, CreatedAt: time.Now()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.WriteFile(s.path(), b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Get returns the env override when present, then the file token. A missing
// or unreadable credentials file means "not logged in", not an error.
func (s *FileStore) Get() (string, bool) {
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return stripBearer(env), true
	}
	b, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}
	var c credentials
	if err := json.Unmarshal(b, &c); err != nil {
		return "", false
	}
	token := stripBearer(strings.TrimSpace(c.Token))
	return token, token != ""
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// stripBearer tolerates tokens pasted with their header scheme attached.
func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
