package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/repository"
	"github.com/jobtrail/jobtrail/internal/utils"
)

// profileService implements ProfileService interface
type profileService struct {
	profileRepo repository.ProfileRepository
}

// NewProfileService creates a new profile service
func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

// Get reads the profile owned by an account
func (s *profileService) Get(ctx context.Context, accountID string) (*dto.ProfileResponse, error) {
	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", accountID, ErrProfileMissing)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &dto.ProfileResponse{
		AccountID:    profile.AccountID,
		DisplayName:  profile.DisplayName,
		PrimaryEmail: profile.PrimaryEmail,
		AvatarURL:    profile.AvatarURL,
		GitHubEmail:  profile.GitHubEmail,
		GoogleEmail:  profile.GoogleEmail,
		CreatedAt:    profile.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    profile.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// UpdateDisplayName sets the display name under the global uniqueness rule.
// Setting the current value again is always legal and performs no write and
// no uniqueness check.
func (s *profileService) UpdateDisplayName(ctx context.Context, accountID, displayName string) error {
	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("account %s: %w", accountID, ErrProfileMissing)
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.DisplayName != nil && *profile.DisplayName == displayName {
		return nil
	}

	// Pre-flight check is a UX fast path; the unique index is the real
	// enforcement and reports the same error on a lost race.
	taken, err := s.profileRepo.ExistsDisplayName(ctx, displayName)
	if err != nil {
		return fmt.Errorf("failed to check display name: %w", err)
	}
	if taken {
		return repository.ErrDuplicateDisplayName
	}

	return s.profileRepo.UpdateDisplayName(ctx, accountID, displayName)
}

// UpdatePrimaryEmail sets the primary email under the global uniqueness rule.
func (s *profileService) UpdatePrimaryEmail(ctx context.Context, accountID, email string) error {
	if !utils.ValidateEmail(email) {
		return fmt.Errorf("invalid email format: %w", ErrInvalidInput)
	}

	profile, err := s.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("account %s: %w", accountID, ErrProfileMissing)
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	if profile.PrimaryEmail == email {
		return nil
	}

	taken, err := s.profileRepo.ExistsPrimaryEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check primary email: %w", err)
	}
	if taken {
		return repository.ErrDuplicatePrimaryEmail
	}

	return s.profileRepo.UpdatePrimaryEmail(ctx, accountID, email)
}

// UpdateAvatar overwrites the avatar URL. Any non-empty string is accepted.
func (s *profileService) UpdateAvatar(ctx context.Context, accountID, avatarURL string) error {
	if avatarURL == "" {
		return fmt.Errorf("avatar url must not be empty: %w", ErrInvalidInput)
	}

	err := s.profileRepo.UpdateAvatar(ctx, accountID, avatarURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("account %s: %w", accountID, ErrProfileMissing)
		}
		return fmt.Errorf("failed to update avatar: %w", err)
	}

	return nil
}
