package repository

import (
	"context"

	"github.com/jobtrail/jobtrail/internal/domain"
)

// AccountRepository defines methods for account operations
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (*domain.Account, error)
	SetProviderID(ctx context.Context, accountID, provider, providerID string) error
	UpdateLastLogin(ctx context.Context, accountID string) error
}

// ProfileRepository defines methods for profile operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	GetByAccountID(ctx context.Context, accountID string) (*domain.Profile, error)
	UpdateDisplayName(ctx context.Context, accountID, displayName string) error
	UpdatePrimaryEmail(ctx context.Context, accountID, email string) error
	UpdateAvatar(ctx context.Context, accountID, avatarURL string) error
	SetProviderEmail(ctx context.Context, accountID, provider, email string) error
	ExistsDisplayName(ctx context.Context, displayName string) (bool, error)
	ExistsPrimaryEmail(ctx context.Context, email string) (bool, error)
}

// TokenRepository defines methods for token operations
type TokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	GetByAccountID(ctx context.Context, accountID string) ([]*domain.RefreshToken, error)
	Delete(ctx context.Context, tokenID string) error
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) error
}
