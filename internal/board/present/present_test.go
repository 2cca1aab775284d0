package present

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openboard/internal/board/models"
)

func TestUsers(t *testing.T) {
	users := []models.User{
		{ID: "u1", Name: "Alice", Email: "alice@example.com", AvatarURL: "https://cdn/a.png"},
		{ID: "u2", Name: "Bob", Email: "bob@example.com"},
	}

	t.Run("public viewer never sees email", func(t *testing.T) {
		got := Users(users, ViewerPublic)
		require.Len(t, got, 2)
		for _, u := range got {
			assert.Empty(t, u.Email)
		}
		assert.Equal(t, "Alice", got[0].Name)
		assert.Equal(t, "https://cdn/a.png", got[0].AvatarURL)

		// The field must be absent from the wire too, not just empty.
		data, err := json.Marshal(got)
		require.NoError(t, err)
		assert.False(t, strings.Contains(string(data), "email"))
	})

	t.Run("full viewer keeps email", func(t *testing.T) {
		got := Users(users, ViewerFull)
		require.Len(t, got, 2)
		assert.Equal(t, "alice@example.com", got[0].Email)
	})

	t.Run("empty input yields empty non-nil slice", func(t *testing.T) {
		assert.NotNil(t, Users(nil, ViewerPublic))
	})
}

func TestAttachments(t *testing.T) {
	got := Attachments([]models.Attachment{
		{ID: "a1", CardID: "c1", Name: "draft.md", Type: "text/markdown", Size: 2048,
			StorageKey: "secret/key", CreatorUserID: "u1"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "draft.md", got[0].Name)
	assert.Equal(t, int64(2048), got[0].Size)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "secret/key"))
	assert.False(t, strings.Contains(string(data), "u1"))
}
