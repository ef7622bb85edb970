package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jobtrail/jobtrail/internal/domain"
)

// JWTManager manages JWT token operations
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// GenerateAccessToken generates a new access token. The provider claim
// records which federated provider opened the session.
func (j *JWTManager) GenerateAccessToken(accountID, email, provider string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": accountID,
		"email":      email,
		"provider":   provider,
		"exp":        now.Add(j.accessTokenExpiry).Unix(),
		"iat":        now.Unix(),
	})

	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// GenerateRefreshToken generates a new refresh token
func (j *JWTManager) GenerateRefreshToken(accountID, provider string) (string, error) {
	claims := jwt.MapClaims{
		"account_id": accountID,
		"provider":   provider,
		"exp":        time.Now().Add(j.refreshTokenExpiry).Unix(),
		"iat":        time.Now().Unix(),
		"type":       "refresh",
		"jti":        uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a JWT access token and returns the typed claims
// plus the raw claim set for principal construction at the boundary.
func (j *JWTManager) ValidateToken(tokenString string) (*domain.TokenClaims, jwt.MapClaims, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return nil, nil, err
	}

	accountID, ok := claims["account_id"].(string)
	if !ok {
		return nil, nil, fmt.Errorf("invalid account_id in token")
	}

	email, ok := claims["email"].(string)
	if !ok {
		return nil, nil, fmt.Errorf("invalid email in token")
	}

	provider, ok := claims["provider"].(string)
	if !ok {
		return nil, nil, fmt.Errorf("invalid provider in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, nil, fmt.Errorf("invalid exp in token")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, nil, fmt.Errorf("invalid iat in token")
	}

	tokenClaims := &domain.TokenClaims{
		AccountID: accountID,
		Email:     email,
		Provider:  provider,
		Exp:       int64(exp),
		Iat:       int64(iat),
	}

	if tokenClaims.IsExpired() {
		return nil, nil, fmt.Errorf("token is expired")
	}

	return tokenClaims, claims, nil
}

// ValidateRefreshToken validates a refresh token and returns the account id
// and session provider it carries
func (j *JWTManager) ValidateRefreshToken(tokenString string) (string, string, error) {
	claims, err := j.parse(tokenString)
	if err != nil {
		return "", "", err
	}

	// Check token type
	if claims["type"] != "refresh" {
		return "", "", fmt.Errorf("invalid token type")
	}

	accountID, ok := claims["account_id"].(string)
	if !ok {
		return "", "", fmt.Errorf("invalid account_id in token")
	}

	provider, _ := claims["provider"].(string)

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", "", fmt.Errorf("invalid exp in token")
	}

	if time.Now().Unix() > int64(exp) {
		return "", "", fmt.Errorf("token is expired")
	}

	return accountID, provider, nil
}

// GetAccessTokenExpiry returns the access token expiry duration in seconds
func (j *JWTManager) GetAccessTokenExpiry() int {
	return int(j.accessTokenExpiry.Seconds())
}

func (j *JWTManager) parse(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
