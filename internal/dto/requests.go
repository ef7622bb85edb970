package dto

// AuthStatusResponse tells a client whether it is authenticated and which
// providers are attached to its account.
type AuthStatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	ID            string `json:"id,omitempty"`
	GitHubLinked  bool   `json:"github_linked"`
	GoogleLinked  bool   `json:"google_linked"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresIn   int         `json:"expires_in"`
	Account     AccountInfo `json:"account"`
}

// AccountInfo represents account information in response
type AccountInfo struct {
	ID           string `json:"id"`
	GitHubLinked bool   `json:"github_linked"`
	GoogleLinked bool   `json:"google_linked"`
}

// ProfileResponse represents a profile read
type ProfileResponse struct {
	AccountID    string  `json:"account_id"`
	DisplayName  *string `json:"display_name"`
	PrimaryEmail string  `json:"primary_email"`
	AvatarURL    *string `json:"avatar_url"`
	GitHubEmail  *string `json:"github_email"`
	GoogleEmail  *string `json:"google_email"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// UpdateProfileRequest carries the editable profile fields. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	DisplayName  *string `json:"display_name"`
	PrimaryEmail *string `json:"primary_email"`
	AvatarURL    *string `json:"avatar_url"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
