package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/auth"
	"github.com/acitm/admissions/internal/pkg/session"
)

type fakeAccountStore struct {
	accounts map[string]*models.Account
}

func (f *fakeAccountStore) GetByEmail(_ context.Context, email string) (*models.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}
	return account, nil
}

type fakeIdentityStore struct {
	users map[string]*models.User
}

func (f *fakeIdentityStore) GetUser(_ context.Context, id string) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrResourceNotFound
	}
	return user, nil
}

type storedToken struct {
	userID  string
	expiry  time.Time
	revoked bool
}

type fakeTokenStore struct {
	tokens map[string]*storedToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: make(map[string]*storedToken)}
}

func (f *fakeTokenStore) CreateToken(_ context.Context, token, userID string, expiryDate time.Time) error {
	f.tokens[token] = &storedToken{userID: userID, expiry: expiryDate}
	return nil
}

func (f *fakeTokenStore) GetTokenByValue(_ context.Context, token string) (string, time.Time, bool, error) {
	st, ok := f.tokens[token]
	if !ok {
		return "", time.Time{}, false, apperrors.ErrTokenNotFound
	}
	if st.revoked {
		return "", time.Time{}, false, apperrors.ErrTokenRevoked
	}
	if st.expiry.Before(time.Now()) {
		return "", time.Time{}, false, apperrors.ErrTokenExpired
	}
	return st.userID, st.expiry, st.revoked, nil
}

func (f *fakeTokenStore) RevokeToken(_ context.Context, token string) error {
	st, ok := f.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	st.revoked = true
	return nil
}

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeTokenStore, *session.Store) {
	t.Helper()

	passwordHash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	centerID := "c1"
	centerName := "North Center"
	accounts := &fakeAccountStore{accounts: map[string]*models.Account{
		"center@example.com": {ID: "u1", Email: "center@example.com", Password: passwordHash},
		"orphan@example.com": {ID: "u2", Email: "orphan@example.com", Password: passwordHash},
		"admin@example.com":  {ID: "u3", Email: "admin@example.com", Password: passwordHash},
	}}
	identities := &fakeIdentityStore{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "center@example.com", Role: models.RoleCenter, CenterID: &centerID, CenterName: &centerName},
		"u3": {ID: "u3", Email: "admin@example.com", Role: models.RoleAdmin},
	}}
	tokens := newFakeTokenStore()

	sessions := session.NewStore()
	sessions.Init()
	t.Cleanup(sessions.Teardown)

	return NewAuthService(accounts, identities, tokens, testJWTService(), sessions), tokens, sessions
}

func TestLogin(t *testing.T) {
	svc, tokens, sessions := newTestAuthService(t)

	events, unsubscribe, err := sessions.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer unsubscribe()

	response, err := svc.Login(context.Background(), "center@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if response.User.ID != "u1" || response.User.Role != models.RoleCenter {
		t.Errorf("resolved user = %+v", response.User)
	}
	if response.Tokens.TokenType != "Bearer" || response.Tokens.AccessToken == "" {
		t.Errorf("tokens = %+v", response.Tokens)
	}
	if _, ok := tokens.tokens[response.Tokens.RefreshToken]; !ok {
		t.Error("refresh token was not persisted")
	}

	select {
	case ev := <-events:
		if ev.Kind != session.EventSignedIn || ev.UserID != "u1" {
			t.Errorf("event = %+v, want signed_in for u1", ev)
		}
	default:
		t.Error("expected a signed_in event")
	}
}

func TestResolveSession(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	admin, err := svc.ResolveSession(context.Background(), "u3")
	if err != nil {
		t.Fatalf("ResolveSession(admin) error = %v", err)
	}
	if admin.Role != models.RoleAdmin || admin.CenterID != nil {
		t.Errorf("admin identity = %+v, want admin role with no center", admin)
	}

	center, err := svc.ResolveSession(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ResolveSession(center) error = %v", err)
	}
	if center.Role != models.RoleCenter || center.CenterName == nil || *center.CenterName != "North Center" {
		t.Errorf("center identity = %+v, want center role with joined center name", center)
	}

	if _, err := svc.ResolveSession(context.Background(), "ghost"); !errors.Is(err, apperrors.ErrSessionUnresolved) {
		t.Errorf("ResolveSession(ghost) error = %v, want ErrSessionUnresolved", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "center@example.com", "wrong")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginFailsClosedWithoutProfile(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "orphan@example.com", "correct-horse")
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("error = %v, want ErrInvalidCredentials", err)
	}

	// An unprovisioned account and a wrong password must be
	// indistinguishable to the caller.
	_, badPasswordErr := svc.Login(context.Background(), "center@example.com", "wrong")
	if !errors.Is(badPasswordErr, err) {
		t.Errorf("unprovisioned login error %v differs from bad-password error %v", err, badPasswordErr)
	}
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	svc, _, _ := newTestAuthService(t)

	response, err := svc.Login(context.Background(), "center@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	first := response.Tokens.RefreshToken

	pair, err := svc.RefreshToken(context.Background(), first)
	if err != nil {
		t.Fatalf("RefreshToken() error = %v", err)
	}
	if pair.RefreshToken == first {
		t.Error("refresh did not rotate the token")
	}

	_, err = svc.RefreshToken(context.Background(), first)
	if !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("second use error = %v, want ErrTokenRevoked", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, tokens, sessions := newTestAuthService(t)

	response, err := svc.Login(context.Background(), "center@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	events, unsubscribe, err := sessions.Subscribe()
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	defer unsubscribe()

	if err := svc.Logout(context.Background(), response.Tokens.RefreshToken); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if !tokens.tokens[response.Tokens.RefreshToken].revoked {
		t.Error("refresh token was not revoked")
	}

	select {
	case ev := <-events:
		if ev.Kind != session.EventSignedOut {
			t.Errorf("event kind = %q, want signed_out", ev.Kind)
		}
	default:
		t.Error("expected a signed_out event")
	}
}
