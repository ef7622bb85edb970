package domain

import "time"

// Profile holds the mutable, user-facing attributes of an Account. It is
// created once, when the Account is first provisioned, and owned 1:1 by it.
// Display name and primary email are globally unique; per-provider emails
// are not. Primary email stays empty until a provider or the user supplies
// one; absent values are stored as NULL so they never collide.
type Profile struct {
	AccountID    string    `json:"account_id" db:"account_id"`
	DisplayName  *string   `json:"display_name" db:"display_name"`
	PrimaryEmail string    `json:"primary_email" db:"primary_email"`
	AvatarURL    *string   `json:"avatar_url" db:"avatar_url"`
	GitHubEmail  *string   `json:"github_email" db:"github_email"`
	GoogleEmail  *string   `json:"google_email" db:"google_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// SetProviderEmail sets the contact email slot for the given provider.
func (p *Profile) SetProviderEmail(provider, email string) {
	switch provider {
	case ProviderGitHub:
		p.GitHubEmail = &email
	case ProviderGoogle:
		p.GoogleEmail = &email
	}
}

// ProviderEmail returns the contact email stored for the given provider, or nil.
func (p *Profile) ProviderEmail(provider string) *string {
	switch provider {
	case ProviderGitHub:
		return p.GitHubEmail
	case ProviderGoogle:
		return p.GoogleEmail
	}
	return nil
}
