package identity

import (
	"errors"

	"github.com/jobtrail/jobtrail/internal/domain"
)

// Extractor errors
var (
	// ErrUnsupportedProvider is returned for a provider name outside the
	// statically known set. Always a caller or configuration bug.
	ErrUnsupportedProvider = errors.New("unsupported identity provider")

	// ErrMissingProviderID is returned when a raw payload has no value under
	// the provider's id key. Malformed upstream data, not a normal absence.
	ErrMissingProviderID = errors.New("provider payload is missing its id field")
)

// ProviderIdentity is the canonical shape of an inbound federated credential,
// independent of which provider issued it. It is transient and never persisted.
type ProviderIdentity struct {
	ID        string
	Email     string
	AvatarURL string
	Name      string // display-name hint, provider-dependent
}

// fieldMap names the raw payload keys a provider uses for each canonical field.
type fieldMap struct {
	id     string
	email  string
	avatar string
	name   string
}

// providerFields is the static provider → field-name table. Adding a provider
// means adding a row here, a constant in domain, and an accounts column.
var providerFields = map[string]fieldMap{
	domain.ProviderGitHub: {id: "id", email: "email", avatar: "avatar_url", name: "name"},
	domain.ProviderGoogle: {id: "sub", email: "email", avatar: "picture", name: "name"},
}
