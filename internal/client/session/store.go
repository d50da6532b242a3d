// Package session owns the bearer token the client holds between runs.
// The token's presence is necessary but not sufficient for authentication:
// only a successful current-user lookup confirms it is still valid.
package session

// Store persists an opaque bearer token. Implementations must be safe to
// call from multiple call sites; writes are last-write-wins.
type Store interface {
	// Set replaces the stored token.
	Set(token string) error

	// Get returns the stored token, or ok=false when none is present.
	Get() (token string, ok bool)

	// Clear removes the stored token. Clearing an absent token is a no-op.
	Clear() error
}

// Memory is an in-memory Store. It is the test double and the backing store
// for ephemeral sessions that should not survive the process.
type Memory struct {
	token string
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Set(token string) error {
	m.token = token
	return nil
}

func (m *Memory) Get() (string, bool) {
	return m.token, m.token != ""
}

func (m *Memory) Clear() error {
	m.token = ""
	return nil
}
