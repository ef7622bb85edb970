package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/identity"
	"github.com/jobtrail/jobtrail/internal/repository"
)

// identityService implements IdentityService interface
type identityService struct {
	accountRepo repository.AccountRepository
	profileRepo repository.ProfileRepository
}

// NewIdentityService creates a new identity service
func NewIdentityService(
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
) IdentityService {
	return &identityService{
		accountRepo: accountRepo,
		profileRepo: profileRepo,
	}
}

// ResolveLogin resolves an inbound federated credential to exactly one
// account. A returning login refreshes any profile attributes the provider
// now reports differently; a first login provisions a new account with its
// profile. The unique index on the provider-id column is the backstop for
// two concurrent first logins: the losing writer gets a conflict, never a
// duplicate account.
func (s *identityService) ResolveLogin(ctx context.Context, raw map[string]any, provider string) (*domain.Account, error) {
	ident, err := identity.Extract(raw, provider)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByProviderID(ctx, provider, ident.ID)
	if err == nil {
		if err := s.syncProfile(ctx, account.ID, ident, provider); err != nil {
			return nil, err
		}
		if err := s.accountRepo.UpdateLastLogin(ctx, account.ID); err != nil {
			// Last-login is informational; the login itself stands.
			_ = err
		}
		return account, nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	return s.provision(ctx, ident, provider)
}

// provision creates a new account with a single provider binding and its
// profile, seeded with the provider's email and avatar. The display name is
// intentionally left unset; it is only ever set through profile editing or a
// later returning login.
func (s *identityService) provision(ctx context.Context, ident identity.ProviderIdentity, provider string) (*domain.Account, error) {
	account := &domain.Account{}
	account.SetProviderID(provider, ident.ID)

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to provision account: %w", err)
	}

	profile := &domain.Profile{
		AccountID:    account.ID,
		PrimaryEmail: ident.Email,
	}
	if ident.AvatarURL != "" {
		profile.AvatarURL = &ident.AvatarURL
	}
	if ident.Email != "" {
		profile.SetProviderEmail(provider, ident.Email)
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}

	return account, nil
}

// syncProfile applies provider-supplied attributes that changed since the
// last login. Equal or empty values are skipped entirely, so an unchanged
// login performs no profile write.
func (s *identityService) syncProfile(ctx context.Context, accountID string, ident identity.ProviderIdentity, provider string) error {
	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("account %s: %w", accountID, ErrProfileMissing)
		}
		return fmt.Errorf("failed to load profile: %w", err)
	}

	if hint := ident.DisplayNameHint(); hint != "" {
		if profile.DisplayName == nil || *profile.DisplayName != hint {
			err := s.profileRepo.UpdateDisplayName(ctx, accountID, hint)
			if err != nil && !errors.Is(err, repository.ErrDuplicateDisplayName) {
				return err
			}
			// A hint held by another profile is skipped; the login stands.
		}
	}

	if ident.Email != "" && ident.Email != profile.PrimaryEmail {
		if err := s.profileRepo.UpdatePrimaryEmail(ctx, accountID, ident.Email); err != nil {
			return err
		}
	}

	if ident.Email != "" {
		if current := profile.ProviderEmail(provider); current == nil || *current != ident.Email {
			if err := s.profileRepo.SetProviderEmail(ctx, accountID, provider, ident.Email); err != nil {
				return err
			}
		}
	}

	if ident.AvatarURL != "" {
		if profile.AvatarURL == nil || *profile.AvatarURL != ident.AvatarURL {
			if err := s.profileRepo.UpdateAvatar(ctx, accountID, ident.AvatarURL); err != nil {
				return err
			}
		}
	}

	return nil
}

// Link attaches a second provider's credential to an already-authenticated
// account. Re-linking the identity the account already holds is an idempotent
// success; an identity held by any other account is a conflict, and accounts
// are never merged to resolve it.
func (s *identityService) Link(ctx context.Context, current *domain.Account, raw map[string]any, provider string) (*dto.AuthStatusResponse, error) {
	if current == nil {
		return nil, ErrNotAuthenticated
	}

	ident, err := identity.Extract(raw, provider)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.GetByProviderID(ctx, provider, ident.ID)
	if err == nil {
		if existing.ID == current.ID {
			// Already linked to the calling account: no state change.
			return s.AuthStatus(ctx, current)
		}
		return nil, fmt.Errorf("provider %s id %s: %w", provider, ident.ID, ErrProviderConflict)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider binding: %w", err)
	}

	// The account holding a different id under this provider would have to be
	// rebound to proceed; that is merge-adjacent and refused.
	if bound := current.ProviderID(provider); bound != nil && *bound != ident.ID {
		return nil, fmt.Errorf("account already bound to a different %s identity: %w", provider, ErrProviderConflict)
	}

	// The profile must exist before the binding is attached, whatever the
	// payload carries; a linked provider without a profile is a broken
	// invariant either way.
	if _, err := s.profileRepo.GetByAccountID(ctx, current.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", current.ID, ErrProfileMissing)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := s.accountRepo.SetProviderID(ctx, current.ID, provider, ident.ID); err != nil {
		if errors.Is(err, repository.ErrDuplicateProviderID) {
			// Lost a race against a concurrent claim of the same identity.
			return nil, fmt.Errorf("provider %s id %s: %w", provider, ident.ID, ErrProviderConflict)
		}
		return nil, fmt.Errorf("failed to attach provider binding: %w", err)
	}
	current.SetProviderID(provider, ident.ID)

	if ident.Email != "" {
		if err := s.profileRepo.SetProviderEmail(ctx, current.ID, provider, ident.Email); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("account %s: %w", current.ID, ErrProfileMissing)
			}
			return nil, fmt.Errorf("failed to set provider email: %w", err)
		}
	}

	return s.AuthStatus(ctx, current)
}

// AuthStatus reports the caller's authentication and per-provider link state.
func (s *identityService) AuthStatus(ctx context.Context, account *domain.Account) (*dto.AuthStatusResponse, error) {
	if account == nil {
		return &dto.AuthStatusResponse{Authenticated: false}, nil
	}

	fresh, err := s.accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	return &dto.AuthStatusResponse{
		Authenticated: true,
		ID:            fresh.ID,
		GitHubLinked:  fresh.Linked(domain.ProviderGitHub),
		GoogleLinked:  fresh.Linked(domain.ProviderGoogle),
	}, nil
}
