package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/internal/repository"
)

// fakeAccountRepo is an in-memory AccountRepository enforcing the same
// provider-id uniqueness the real schema does.
type fakeAccountRepo struct {
	accounts map[string]*domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*domain.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, provider := range domain.Providers {
		id := account.ProviderID(provider)
		if id == nil {
			continue
		}
		for _, other := range f.accounts {
			if oid := other.ProviderID(provider); oid != nil && *oid == *id {
				return repository.ErrDuplicateProviderID
			}
		}
	}

	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	stored := *account
	f.accounts[account.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *account
	return &cp, nil
}

func (f *fakeAccountRepo) GetByProviderID(_ context.Context, provider, providerID string) (*domain.Account, error) {
	for _, account := range f.accounts {
		if id := account.ProviderID(provider); id != nil && *id == providerID {
			cp := *account
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAccountRepo) SetProviderID(_ context.Context, accountID, provider, providerID string) error {
	for id, other := range f.accounts {
		if id == accountID {
			continue
		}
		if oid := other.ProviderID(provider); oid != nil && *oid == providerID {
			return repository.ErrDuplicateProviderID
		}
	}

	account, ok := f.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	account.SetProviderID(provider, providerID)
	account.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAccountRepo) UpdateLastLogin(_ context.Context, accountID string) error {
	account, ok := f.accounts[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	account.LastLoginAt = &now
	return nil
}

// fakeProfileRepo is an in-memory ProfileRepository. It counts writes so
// tests can assert that unchanged logins and idempotent re-links perform no
// profile write.
type fakeProfileRepo struct {
	profiles map[string]*domain.Profile
	writes   int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	for _, other := range f.profiles {
		// Absent primary emails are NULL in storage and never collide.
		if profile.PrimaryEmail != "" && other.PrimaryEmail == profile.PrimaryEmail {
			return repository.ErrDuplicatePrimaryEmail
		}
		if profile.DisplayName != nil && other.DisplayName != nil && *other.DisplayName == *profile.DisplayName {
			return repository.ErrDuplicateDisplayName
		}
	}

	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	stored := *profile
	f.profiles[profile.AccountID] = &stored
	f.writes++
	return nil
}

func (f *fakeProfileRepo) GetByAccountID(_ context.Context, accountID string) (*domain.Profile, error) {
	profile, ok := f.profiles[accountID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *profile
	return &cp, nil
}

func (f *fakeProfileRepo) UpdateDisplayName(_ context.Context, accountID, displayName string) error {
	for id, other := range f.profiles {
		if id != accountID && other.DisplayName != nil && *other.DisplayName == displayName {
			return repository.ErrDuplicateDisplayName
		}
	}

	profile, ok := f.profiles[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.DisplayName = &displayName
	profile.UpdatedAt = time.Now()
	f.writes++
	return nil
}

func (f *fakeProfileRepo) UpdatePrimaryEmail(_ context.Context, accountID, email string) error {
	for id, other := range f.profiles {
		if id != accountID && other.PrimaryEmail == email {
			return repository.ErrDuplicatePrimaryEmail
		}
	}

	profile, ok := f.profiles[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.PrimaryEmail = email
	profile.UpdatedAt = time.Now()
	f.writes++
	return nil
}

func (f *fakeProfileRepo) UpdateAvatar(_ context.Context, accountID, avatarURL string) error {
	profile, ok := f.profiles[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.AvatarURL = &avatarURL
	profile.UpdatedAt = time.Now()
	f.writes++
	return nil
}

func (f *fakeProfileRepo) SetProviderEmail(_ context.Context, accountID, provider, email string) error {
	profile, ok := f.profiles[accountID]
	if !ok {
		return repository.ErrNotFound
	}
	profile.SetProviderEmail(provider, email)
	profile.UpdatedAt = time.Now()
	f.writes++
	return nil
}

func (f *fakeProfileRepo) ExistsDisplayName(_ context.Context, displayName string) (bool, error) {
	for _, profile := range f.profiles {
		if profile.DisplayName != nil && *profile.DisplayName == displayName {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfileRepo) ExistsPrimaryEmail(_ context.Context, email string) (bool, error) {
	for _, profile := range f.profiles {
		if profile.PrimaryEmail == email {
			return true, nil
		}
	}
	return false, nil
}
