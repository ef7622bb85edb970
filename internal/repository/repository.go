package repository

import (
	"github.com/jobtrail/jobtrail/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	Account AccountRepository
	Profile ProfileRepository
	Token   TokenRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		Account: NewAccountRepository(db),
		Profile: NewProfileRepository(db),
		Token:   NewTokenRepository(db),
	}
}
