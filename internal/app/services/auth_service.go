package services

import (
	"context"
	"errors"
	"time"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/auth"
	"github.com/acitm/admissions/internal/pkg/logger"
	"github.com/acitm/admissions/internal/pkg/session"
)

type accountStore interface {
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
}

type identityStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID string, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (string, time.Time, bool, error)
	RevokeToken(ctx context.Context, token string) error
}

// AuthService implements authentication operations
type AuthService struct {
	accounts   accountStore
	identities identityStore
	tokens     tokenStore
	jwtService *auth.JWTService
	sessions   *session.Store
}

// NewAuthService creates a new authentication service
func NewAuthService(
	accounts accountStore,
	identities identityStore,
	tokens tokenStore,
	jwtService *auth.JWTService,
	sessions *session.Store,
) *AuthService {
	return &AuthService{
		accounts:   accounts,
		identities: identities,
		tokens:     tokens,
		jwtService: jwtService,
		sessions:   sessions,
	}
}

// Login authenticates a user with email and password and issues a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(account.Password, password) {
		logger.Warn().Str("email", email).Msg("Login attempt with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.ResolveSession(ctx, account.ID)
	if err != nil {
		// The login response must not reveal whether the password or the
		// profile was the problem.
		if errors.Is(err, apperrors.ErrSessionUnresolved) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.sessions.Notify(session.Event{Kind: session.EventSignedIn, UserID: user.ID, Email: user.Email})
	logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	return &dto.LoginResponse{User: user, Tokens: tokens}, nil
}

// ResolveSession resolves the application identity for an account id. An
// authenticated account with no profile row gets no access at all rather
// than a fallback role.
func (s *AuthService) ResolveSession(ctx context.Context, accountID string) (*models.User, error) {
	user, err := s.identities.GetUser(ctx, accountID)
	if err != nil {
		logger.Warn().Err(err).Str("accountID", accountID).Msg("Session resolution failed, denying access")
		return nil, apperrors.ErrSessionUnresolved
	}
	return user, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The
// presented token is revoked so each refresh token is single-use.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, _, _, err := s.tokens.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	user, err := s.ResolveSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	userID, _, _, err := s.tokens.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return err
	}

	if err := s.tokens.RevokeToken(ctx, refreshToken); err != nil {
		return err
	}

	s.sessions.Notify(session.Event{Kind: session.EventSignedOut, UserID: userID})
	logger.Info().Str("userID", userID).Msg("User logged out")
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	err = s.tokens.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry())
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        int64(expiresIn),
		RefreshExpiresIn: int64(refreshExpiresIn),
	}, nil
}
