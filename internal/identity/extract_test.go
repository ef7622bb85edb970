package identity

import (
	"testing"

	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_GitHub(t *testing.T) {
	raw := map[string]any{
		"id":         float64(8437221), // JSON numbers decode as float64
		"email":      "dev@example.com",
		"avatar_url": "https://avatars.example.com/u/8437221",
		"name":       "Dev Example",
	}

	ident, err := Extract(raw, domain.ProviderGitHub)
	require.NoError(t, err)

	assert.Equal(t, "8437221", ident.ID)
	assert.Equal(t, "dev@example.com", ident.Email)
	assert.Equal(t, "https://avatars.example.com/u/8437221", ident.AvatarURL)
	assert.Equal(t, "Dev Example", ident.Name)
}

func TestExtract_Google(t *testing.T) {
	raw := map[string]any{
		"sub":     "109876543210",
		"email":   "dev@gmail.com",
		"picture": "https://lh3.example.com/photo.jpg",
		"name":    "Dev Example",
	}

	ident, err := Extract(raw, domain.ProviderGoogle)
	require.NoError(t, err)

	assert.Equal(t, "109876543210", ident.ID)
	assert.Equal(t, "dev@gmail.com", ident.Email)
	assert.Equal(t, "https://lh3.example.com/photo.jpg", ident.AvatarURL)
}

func TestExtract_UnsupportedProvider(t *testing.T) {
	_, err := Extract(map[string]any{"id": "x"}, "linkedin")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestExtract_MissingID(t *testing.T) {
	raw := map[string]any{
		"email": "dev@example.com",
	}

	_, err := Extract(raw, domain.ProviderGitHub)
	assert.ErrorIs(t, err, ErrMissingProviderID)
}

func TestExtract_OptionalFieldsAbsent(t *testing.T) {
	ident, err := Extract(map[string]any{"sub": "go-1"}, domain.ProviderGoogle)
	require.NoError(t, err)

	assert.Equal(t, "go-1", ident.ID)
	assert.Empty(t, ident.Email)
	assert.Empty(t, ident.AvatarURL)
	assert.Empty(t, ident.Name)
}

func TestDisplayNameHint(t *testing.T) {
	tests := []struct {
		name  string
		ident ProviderIdentity
		want  string
	}{
		{"provider name wins", ProviderIdentity{ID: "g-1", Email: "a@x.com", Name: "Alice"}, "Alice"},
		{"email local part", ProviderIdentity{ID: "g-1", Email: "a@x.com"}, "a"},
		{"email without at", ProviderIdentity{ID: "g-1", Email: "not-an-email"}, "not-an-email"},
		{"falls back to id", ProviderIdentity{ID: "g-1"}, "g-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ident.DisplayNameHint())
		})
	}
}
