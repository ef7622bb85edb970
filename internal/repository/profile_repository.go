package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/pkg/database"
	"github.com/lib/pq"
)

// providerEmailColumns maps a provider name to its profiles email column.
// Provider emails carry no uniqueness constraint.
var providerEmailColumns = map[string]string{
	domain.ProviderGitHub: "github_email",
	domain.ProviderGoogle: "google_email",
}

// profileRepository implements ProfileRepository interface
type profileRepository struct {
	db *database.Postgres
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.Postgres) ProfileRepository {
	return &profileRepository{db: db}
}

// Create creates a new profile for an account
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (account_id, display_name, primary_email, avatar_url, github_email, google_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = now
	}

	// An absent seed email is stored as NULL, not as an empty string, so two
	// email-less profiles never collide on the unique index.
	var primaryEmail sql.NullString
	if profile.PrimaryEmail != "" {
		primaryEmail = sql.NullString{String: profile.PrimaryEmail, Valid: true}
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		profile.AccountID,
		profile.DisplayName,
		primaryEmail,
		profile.AvatarURL,
		profile.GitHubEmail,
		profile.GoogleEmail,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if dupErr := duplicateProfileError(err); dupErr != nil {
			return fmt.Errorf("failed to create profile: %w", dupErr)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByAccountID retrieves the profile owned by an account
func (r *profileRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.Profile, error) {
	query := `
		SELECT account_id, display_name, primary_email, avatar_url, github_email, google_email, created_at, updated_at
		FROM profiles
		WHERE account_id = $1
	`

	profile := &domain.Profile{}
	var displayName, primaryEmail, avatarURL, githubEmail, googleEmail sql.NullString

	err := r.db.DB.QueryRowContext(ctx, query, accountID).Scan(
		&profile.AccountID,
		&displayName,
		&primaryEmail,
		&avatarURL,
		&githubEmail,
		&googleEmail,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile for account %s not found: %w", accountID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if displayName.Valid {
		profile.DisplayName = &displayName.String
	}
	if primaryEmail.Valid {
		profile.PrimaryEmail = primaryEmail.String
	}
	if avatarURL.Valid {
		profile.AvatarURL = &avatarURL.String
	}
	if githubEmail.Valid {
		profile.GitHubEmail = &githubEmail.String
	}
	if googleEmail.Valid {
		profile.GoogleEmail = &googleEmail.String
	}

	return profile, nil
}

// UpdateDisplayName sets the profile display name
func (r *profileRepository) UpdateDisplayName(ctx context.Context, accountID, displayName string) error {
	return r.updateColumn(ctx, accountID, "display_name", displayName)
}

// UpdatePrimaryEmail sets the profile primary email
func (r *profileRepository) UpdatePrimaryEmail(ctx context.Context, accountID, email string) error {
	return r.updateColumn(ctx, accountID, "primary_email", email)
}

// UpdateAvatar sets the profile avatar URL
func (r *profileRepository) UpdateAvatar(ctx context.Context, accountID, avatarURL string) error {
	return r.updateColumn(ctx, accountID, "avatar_url", avatarURL)
}

// SetProviderEmail overwrites the per-provider email slot for an account
func (r *profileRepository) SetProviderEmail(ctx context.Context, accountID, provider, email string) error {
	col, ok := providerEmailColumns[provider]
	if !ok {
		return fmt.Errorf("no profiles email column for provider %q", provider)
	}
	return r.updateColumn(ctx, accountID, col, email)
}

// ExistsDisplayName reports whether any profile holds the given display name
func (r *profileRepository) ExistsDisplayName(ctx context.Context, displayName string) (bool, error) {
	return r.exists(ctx, "display_name", displayName)
}

// ExistsPrimaryEmail reports whether any profile holds the given primary email
func (r *profileRepository) ExistsPrimaryEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "primary_email", email)
}

func (r *profileRepository) updateColumn(ctx context.Context, accountID, col, value string) error {
	query := fmt.Sprintf(`
		UPDATE profiles
		SET %s = $2, updated_at = $3
		WHERE account_id = $1
	`, col)

	result, err := r.db.DB.ExecContext(ctx, query, accountID, value, time.Now())
	if err != nil {
		if dupErr := duplicateProfileError(err); dupErr != nil {
			return fmt.Errorf("failed to update %s: %w", col, dupErr)
		}
		return fmt.Errorf("failed to update %s: %w", col, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("profile for account %s not found: %w", accountID, ErrNotFound)
	}

	return nil
}

func (r *profileRepository) exists(ctx context.Context, col, value string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM profiles WHERE %s = $1)`, col)

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s existence: %w", col, err)
	}

	return exists, nil
}

// duplicateProfileError maps a pq unique violation to the typed error for the
// violated constraint, or returns nil for any other error.
func duplicateProfileError(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" { // unique_violation
		return nil
	}

	switch {
	case strings.Contains(pqErr.Constraint, "display_name"):
		return ErrDuplicateDisplayName
	default:
		return ErrDuplicatePrimaryEmail
	}
}
