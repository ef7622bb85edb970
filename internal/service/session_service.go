package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/repository"
	"github.com/jobtrail/jobtrail/internal/utils"
	"go.uber.org/zap"
)

// AuthResponseWithRefreshToken contains auth response and refresh token
type AuthResponseWithRefreshToken struct {
	AuthResponse *dto.AuthResponse
	RefreshToken string
	ExpiresIn    int // Refresh token expiry in seconds
}

// sessionService implements SessionService interface
type sessionService struct {
	accountRepo        repository.AccountRepository
	profileRepo        repository.ProfileRepository
	tokenRepo          repository.TokenRepository
	jwtManager         *utils.JWTManager
	blacklistService   *TokenBlacklistService
	refreshTokenExpiry time.Duration
	logger             *zap.Logger
}

// NewSessionService creates a new session service
func NewSessionService(
	accountRepo repository.AccountRepository,
	profileRepo repository.ProfileRepository,
	tokenRepo repository.TokenRepository,
	jwtManager *utils.JWTManager,
	blacklistService *TokenBlacklistService,
	refreshTokenExpiry time.Duration,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		accountRepo:        accountRepo,
		profileRepo:        profileRepo,
		tokenRepo:          tokenRepo,
		jwtManager:         jwtManager,
		blacklistService:   blacklistService,
		refreshTokenExpiry: refreshTokenExpiry,
		logger:             logger,
	}
}

// IssueTokens generates an access/refresh pair for a resolved account and
// stores the refresh token hash
func (s *sessionService) IssueTokens(ctx context.Context, account *domain.Account, provider string) (*AuthResponseWithRefreshToken, error) {
	profile, err := s.profileRepo.GetByAccountID(ctx, account.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", account.ID, ErrProfileMissing)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(account.ID, profile.PrimaryEmail, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(account.ID, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshTokenEntity := &domain.RefreshToken{
		AccountID: account.ID,
		TokenHash: s.hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshTokenExpiry),
	}

	if err := s.tokenRepo.Create(ctx, refreshTokenEntity); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &AuthResponseWithRefreshToken{
		AuthResponse: &dto.AuthResponse{
			AccessToken: accessToken,
			TokenType:   "Bearer",
			ExpiresIn:   s.jwtManager.GetAccessTokenExpiry(),
			Account: dto.AccountInfo{
				ID:           account.ID,
				GitHubLinked: account.Linked(domain.ProviderGitHub),
				GoogleLinked: account.Linked(domain.ProviderGoogle),
			},
		},
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.refreshTokenExpiry.Seconds()),
	}, nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *sessionService) Refresh(ctx context.Context, refreshToken string) (*AuthResponseWithRefreshToken, error) {
	accountID, provider, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	tokenHash := s.hashToken(refreshToken)

	dbToken, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("invalid refresh token")
		}
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	if time.Now().After(dbToken.ExpiresAt) {
		return nil, fmt.Errorf("refresh token expired")
	}

	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, fmt.Errorf("refresh token is blacklisted")
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// Invalidate old refresh token (add to blacklist and delete from DB)
	if err := s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry); err != nil {
		s.logger.Warn("Failed to blacklist rotated refresh token", zap.Error(err))
	}
	if err := s.tokenRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
		s.logger.Warn("Failed to delete rotated refresh token", zap.Error(err))
	}

	return s.IssueTokens(ctx, account, provider)
}

// Logout invalidates a refresh token
func (s *sessionService) Logout(ctx context.Context, accountID, refreshToken string) error {
	if refreshToken != "" {
		tokenHash := s.hashToken(refreshToken)

		dbToken, err := s.tokenRepo.GetByTokenHash(ctx, tokenHash)
		if err == nil && dbToken.AccountID == accountID {
			if err := s.blacklistService.AddToken(ctx, refreshToken, s.refreshTokenExpiry); err != nil {
				s.logger.Warn("Failed to blacklist refresh token on logout", zap.Error(err))
			}
			if err := s.tokenRepo.DeleteByTokenHash(ctx, tokenHash); err != nil {
				s.logger.Warn("Failed to delete refresh token on logout", zap.Error(err))
			}
		}
	}

	return nil
}

// Authenticate validates an access token and loads the account it names
func (s *sessionService) Authenticate(ctx context.Context, accessToken string) (*domain.Account, jwt.MapClaims, error) {
	isBlacklisted, err := s.blacklistService.IsTokenBlacklisted(ctx, accessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	if isBlacklisted {
		return nil, nil, fmt.Errorf("token is blacklisted")
	}

	claims, rawClaims, err := s.jwtManager.ValidateToken(accessToken)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	account, err := s.accountRepo.GetByID(ctx, claims.AccountID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get account: %w", err)
	}

	return account, rawClaims, nil
}

// hashToken hashes a token using SHA256
func (s *sessionService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
