package domain

import "time"

// Account represents an internal authentication identity. It carries one
// nullable external-id binding per supported provider; uniqueness of each
// binding is enforced by the storage layer.
type Account struct {
	ID          string     `json:"id" db:"id"`
	GitHubID    *string    `json:"github_id" db:"github_id"`
	GoogleID    *string    `json:"google_id" db:"google_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt *time.Time `json:"last_login_at" db:"last_login_at"`
}

// ProviderID returns the external id bound for the given provider, or nil.
func (a *Account) ProviderID(provider string) *string {
	switch provider {
	case ProviderGitHub:
		return a.GitHubID
	case ProviderGoogle:
		return a.GoogleID
	}
	return nil
}

// SetProviderID sets the external id binding for the given provider.
func (a *Account) SetProviderID(provider, providerID string) {
	switch provider {
	case ProviderGitHub:
		a.GitHubID = &providerID
	case ProviderGoogle:
		a.GoogleID = &providerID
	}
}

// Linked reports whether the account holds a binding for the given provider.
func (a *Account) Linked(provider string) bool {
	return a.ProviderID(provider) != nil
}

// Supported provider names. The set is fixed at compile time; adding a
// provider means a new constant, a new accounts column, and a new field
// mapping row in the identity package.
const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"
)

// Providers lists all supported provider names.
var Providers = []string{ProviderGitHub, ProviderGoogle}
