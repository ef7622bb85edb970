package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/pkg/database"
	"github.com/lib/pq"
)

// providerColumns maps a provider name to its accounts column. Each column
// carries a unique index, which is the authoritative backstop for concurrent
// identical claims.
var providerColumns = map[string]string{
	domain.ProviderGitHub: "github_id",
	domain.ProviderGoogle: "google_id",
}

func providerColumn(provider string) (string, error) {
	col, ok := providerColumns[provider]
	if !ok {
		return "", fmt.Errorf("no accounts column for provider %q", provider)
	}
	return col, nil
}

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *database.Postgres
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.Postgres) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account in the database
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, github_id, google_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	// Generate UUID if not provided
	if account.ID == "" {
		account.ID = uuid.New().String()
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.UpdatedAt.IsZero() {
		account.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		account.ID,
		account.GitHubID,
		account.GoogleID,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (provider id already bound)
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("failed to create account: %w", ErrDuplicateProviderID)
			}
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT id, github_id, google_id, created_at, updated_at, last_login_at
		FROM accounts
		WHERE id = $1
	`

	return r.scanAccount(r.db.DB.QueryRowContext(ctx, query, id), fmt.Sprintf("account with id %s", id))
}

// GetByProviderID retrieves an account by a (provider, provider id) binding
func (r *accountRepository) GetByProviderID(ctx context.Context, provider, providerID string) (*domain.Account, error) {
	col, err := providerColumn(provider)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, github_id, google_id, created_at, updated_at, last_login_at
		FROM accounts
		WHERE %s = $1
	`, col)

	return r.scanAccount(r.db.DB.QueryRowContext(ctx, query, providerID), fmt.Sprintf("account with %s %s", col, providerID))
}

// SetProviderID attaches a provider binding to an existing account
func (r *accountRepository) SetProviderID(ctx context.Context, accountID, provider, providerID string) error {
	col, err := providerColumn(provider)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		UPDATE accounts
		SET %s = $2, updated_at = $3
		WHERE id = $1
	`, col)

	result, err := r.db.DB.ExecContext(ctx, query, accountID, providerID, time.Now())
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("failed to set %s: %w", col, ErrDuplicateProviderID)
			}
		}
		return fmt.Errorf("failed to set %s: %w", col, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account with id %s not found: %w", accountID, ErrNotFound)
	}

	return nil
}

// UpdateLastLogin updates the last login timestamp for an account
func (r *accountRepository) UpdateLastLogin(ctx context.Context, accountID string) error {
	query := `
		UPDATE accounts
		SET last_login_at = $1
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), accountID)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("account with id %s not found: %w", accountID, ErrNotFound)
	}

	return nil
}

func (r *accountRepository) scanAccount(row *sql.Row, desc string) (*domain.Account, error) {
	account := &domain.Account{}
	var githubID, googleID sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&account.ID,
		&githubID,
		&googleID,
		&account.CreatedAt,
		&account.UpdatedAt,
		&lastLoginAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s not found: %w", desc, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if githubID.Valid {
		account.GitHubID = &githubID.String
	}
	if googleID.Valid {
		account.GoogleID = &googleID.String
	}
	if lastLoginAt.Valid {
		account.LastLoginAt = &lastLoginAt.Time
	}

	return account, nil
}
