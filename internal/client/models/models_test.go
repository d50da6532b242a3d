package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemvault/internal/common"
)

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr error
	}{
		{"ok", Draft{Name: "Book", Description: "Read it"}, nil},
		{"empty description ok", Draft{Name: "Book"}, nil},
		{"empty name", Draft{Description: "x"}, common.ErrEmptyName},
		{"whitespace name", Draft{Name: "   \t"}, common.ErrEmptyName},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.draft.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestItemCreatedAtWireFormat(t *testing.T) {
	// The server sends RFC 3339 timestamps; they must land in time.Time.
	raw := `{"id":"i1","userId":"u1","name":"Book","description":"","createdAt":"2025-06-01T10:30:00Z"}`

	var it Item
	require.NoError(t, json.Unmarshal([]byte(raw), &it))
	assert.Equal(t, time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC), it.CreatedAt)
}
