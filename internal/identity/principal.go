package identity

import "github.com/jobtrail/jobtrail/internal/domain"

// Principal wraps the resolved Account plus the raw provider payload for the
// duration of one authenticated context. The base capability is the resolved
// Account; Claims is the optional extended capability, and returns an empty
// map when the wrapped principal carries no identity-token claims. The
// variant is decided once at construction, never by runtime type inspection.
type Principal interface {
	Account() *domain.Account
	Provider() string
	Claims() map[string]any
}

// NewPrincipal builds a Principal for the given account. A nil claims map
// yields the reduced-capability variant.
func NewPrincipal(account *domain.Account, provider string, claims map[string]any) Principal {
	if claims == nil {
		return barePrincipal{account: account, provider: provider}
	}
	return claimedPrincipal{account: account, provider: provider, claims: claims}
}

type barePrincipal struct {
	account  *domain.Account
	provider string
}

func (p barePrincipal) Account() *domain.Account { return p.account }
func (p barePrincipal) Provider() string         { return p.provider }
func (p barePrincipal) Claims() map[string]any   { return map[string]any{} }

type claimedPrincipal struct {
	account  *domain.Account
	provider string
	claims   map[string]any
}

func (p claimedPrincipal) Account() *domain.Account { return p.account }
func (p claimedPrincipal) Provider() string         { return p.provider }
func (p claimedPrincipal) Claims() map[string]any   { return p.claims }
