package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tripshare/tripshare/internal/config"
	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/oauth"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt ignores anything longer
	oauthStateTTL     = 10 * time.Minute
	revokedKeyPrefix  = "revoked:"
	oauthStatePrefix  = "oauth_state:"
	tokenTypeBearer   = "Bearer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrInvalidOAuthState  = errors.New("invalid or expired oauth state")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
)

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users     UserServiceInterface
	redis     RedisClient
	providers *oauth.Registry
	secret    []byte
	ttl       time.Duration
	issuer    string
	now       Clock
}

func NewAuthService(users UserServiceInterface, redis RedisClient, providers *oauth.Registry, cfg config.AuthConfig) *AuthService {
	if providers == nil {
		providers = oauth.NewRegistry()
	}
	return &AuthService{
		users:     users,
		redis:     redis,
		providers: providers,
		secret:    []byte(cfg.JWTSecret),
		ttl:       cfg.AccessTokenTTL,
		issuer:    cfg.Issuer,
		now:       systemClock,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func (s *AuthService) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// validatePassword measures bytes, which is what bcrypt limits.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return validationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return validationError(fmt.Sprintf("password must be at most %d characters", maxPasswordLength))
	}
	return nil
}

// SignUp creates a password account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName, _, _ = strings.Cut(NormalizeEmail(email), "@")
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, models.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	})
	if err != nil {
		return nil, err
	}

	return s.IssueSession(user)
}

// SignInWithPassword returns ErrInvalidCredentials for unknown emails,
// OAuth-only accounts and wrong passwords alike.
func (s *AuthService) SignInWithPassword(ctx context.Context, email, password string) (*models.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.HasPassword() || !s.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.IssueSession(user)
}

// IssueSession signs an HS256 access token for user.
func (s *AuthService) IssueSession(user *models.User) (*models.Session, error) {
	now := s.now()
	claims := accessClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	return &models.Session{
		AccessToken: signed,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int(s.ttl.Seconds()),
		User:        user,
	}, nil
}

func (s *AuthService) parse(token string, opts ...jwt.ParserOption) (*accessClaims, error) {
	claims := &accessClaims{}
	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ValidateToken returns the user behind a bearer token that is correctly
// signed, unexpired and not revoked.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.parse(token, jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	revoked, err := s.redis.Exists(ctx, revokedKeyPrefix+claims.ID)
	if err != nil {
		return nil, fmt.Errorf("checking token revocation: %w", err)
	}
	if revoked {
		return nil, ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SignOut denylists the token's jti until the token would have expired anyway.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil
	}
	if err != nil {
		return ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}

	remaining := claims.ExpiresAt.Time.Sub(s.now())
	if remaining <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revokedKeyPrefix+claims.ID, "1", remaining); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

// ChangePassword replaces the user's password, revokes the token the
// request was made with and returns a fresh session. Accounts created
// through OAuth have no current password and may set one directly.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword, token string) (*models.Session, error) {
	if err := validatePassword(newPassword); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasPassword() && !s.VerifyPassword(user.PasswordHash, currentPassword) {
		return nil, ErrIncorrectPassword
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if token != "" {
		if err := s.SignOut(ctx, token); err != nil {
			return nil, err
		}
	}
	return s.IssueSession(user)
}

// OAuthProviders lists the configured provider names.
func (s *AuthService) OAuthProviders() []string {
	return s.providers.Names()
}

// BeginOAuth stores a fresh state for provider and returns the consent URL
// along with the state, which the caller binds to the browser.
func (s *AuthService) BeginOAuth(ctx context.Context, provider string) (string, string, error) {
	p, err := s.providers.Get(provider)
	if err != nil {
		return "", "", err
	}

	state, err := oauth.GenerateState()
	if err != nil {
		return "", "", fmt.Errorf("generating oauth state: %w", err)
	}
	if err := s.redis.Set(ctx, oauthStatePrefix+state, p.Name(), oauthStateTTL); err != nil {
		return "", "", fmt.Errorf("storing oauth state: %w", err)
	}

	return p.GetConsentURL(state), state, nil
}

// CompleteOAuth consumes the state, exchanges the code and signs in the
// account matching the provider's email, creating it on first use.
func (s *AuthService) CompleteOAuth(ctx context.Context, provider, state, code string) (*models.Session, error) {
	p, err := s.providers.Get(provider)
	if err != nil {
		return nil, err
	}
	if state == "" || code == "" {
		return nil, ErrInvalidOAuthState
	}

	stored, err := s.redis.GetDel(ctx, oauthStatePrefix+state)
	if errors.Is(err, ErrCacheMiss) {
		return nil, ErrInvalidOAuthState
	}
	if err != nil {
		return nil, fmt.Errorf("loading oauth state: %w", err)
	}
	if stored != p.Name() {
		return nil, ErrInvalidOAuthState
	}

	info, err := p.ExchangeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("completing %s sign-in: %w", p.Name(), err)
	}

	user, err := s.users.UpsertOAuthUser(ctx, info.Email, info.Name)
	if err != nil {
		return nil, err
	}
	return s.IssueSession(user)
}
