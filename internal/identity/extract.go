package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// Extract normalizes a raw provider payload into a ProviderIdentity using the
// static field table for the given provider. Email and avatar are optional;
// a missing id is a malformed payload.
func Extract(raw map[string]any, provider string) (ProviderIdentity, error) {
	fields, ok := providerFields[provider]
	if !ok {
		return ProviderIdentity{}, fmt.Errorf("provider %q: %w", provider, ErrUnsupportedProvider)
	}

	id := stringValue(raw[fields.id])
	if id == "" {
		return ProviderIdentity{}, fmt.Errorf("provider %q: %w", provider, ErrMissingProviderID)
	}

	return ProviderIdentity{
		ID:        id,
		Email:     stringValue(raw[fields.email]),
		AvatarURL: stringValue(raw[fields.avatar]),
		Name:      stringValue(raw[fields.name]),
	}, nil
}

// DisplayNameHint returns the best display-name candidate for the login path:
// the provider-supplied name, else the local part of the email, else the raw
// provider id. The link path never needs a display name and must not use this.
func (pi ProviderIdentity) DisplayNameHint() string {
	if pi.Name != "" {
		return pi.Name
	}
	if pi.Email != "" {
		if at := strings.Index(pi.Email, "@"); at > 0 {
			return pi.Email[:at]
		}
		return pi.Email
	}
	return pi.ID
}

// stringValue coerces a raw payload value into a string. Providers disagree
// on types: GitHub sends a numeric id, Google a string sub, and JSON decoding
// turns numbers into float64.
func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}
