package service

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/internal/dto"
)

// IdentityService resolves inbound federated credentials to accounts and
// links additional providers to already-authenticated accounts.
type IdentityService interface {
	// ResolveLogin finds the account bound to the credential in the raw
	// payload, creating and provisioning one on first login.
	ResolveLogin(ctx context.Context, raw map[string]any, provider string) (*domain.Account, error)

	// Link attaches the provider credential in the raw payload to the given
	// already-authenticated account.
	Link(ctx context.Context, current *domain.Account, raw map[string]any, provider string) (*dto.AuthStatusResponse, error)

	// AuthStatus reports whether the caller is authenticated and which
	// providers are linked. A nil account yields authenticated=false.
	AuthStatus(ctx context.Context, account *domain.Account) (*dto.AuthStatusResponse, error)
}

// ProfileService exposes the uniqueness-checked profile read/update paths.
// Every profile-editing surface must go through these, never around them.
type ProfileService interface {
	Get(ctx context.Context, accountID string) (*dto.ProfileResponse, error)
	UpdateDisplayName(ctx context.Context, accountID, displayName string) error
	UpdatePrimaryEmail(ctx context.Context, accountID, email string) error
	UpdateAvatar(ctx context.Context, accountID, avatarURL string) error
}

// SessionService issues and validates the tokens that carry an authenticated
// account between requests.
type SessionService interface {
	IssueTokens(ctx context.Context, account *domain.Account, provider string) (*AuthResponseWithRefreshToken, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResponseWithRefreshToken, error)
	Logout(ctx context.Context, accountID, refreshToken string) error

	// Authenticate validates an access token and loads the account it names.
	// The returned claims are the token's raw claim set, for principal
	// construction at the boundary.
	Authenticate(ctx context.Context, accessToken string) (*domain.Account, jwt.MapClaims, error)
}
