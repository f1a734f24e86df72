// Package auth is the session/access gate: a single fixed admin credential
// pair, signed session tokens and the route-guard predicate.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/bioprephq/bioprep/internal/domain"
	"github.com/bioprephq/bioprep/internal/event"
	"github.com/bioprephq/bioprep/internal/telemetry"
)

const defaultTokenTTL = 12 * time.Hour

type Credentials struct {
	Email    string
	Password string
}

type Config struct {
	Credentials Credentials
	TokenSecret string
	TokenTTL    time.Duration
	Sessions    SessionStore
	EventBus    *event.Bus
	Metrics     *telemetry.Metrics
}

type Service struct {
	creds    Credentials
	secret   []byte
	tokenTTL time.Duration
	sessions SessionStore
	eb       *event.Bus
	metrics  *telemetry.Metrics
}

func NewService(c Config) *Service {
	s := &Service{
		creds:    c.Credentials,
		secret:   []byte(c.TokenSecret),
		tokenTTL: c.TokenTTL,
		sessions: c.Sessions,
		eb:       c.EventBus,
		metrics:  c.Metrics,
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = defaultTokenTTL
	}
	return s
}

// LoginResult is the structured outcome of an authentication attempt.
// Failures are results, never errors: the caller displays Message.
type LoginResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// Login checks the fixed credential pair. On success it mints a signed
// session token and persists the user object in the session store.
func (s *Service) Login(ctx context.Context, email, password string) LoginResult {
	if email == "" || password == "" {
		s.countLogin("failure")
		return LoginResult{Success: false, Message: "Email and password are required"}
	}

	if email != s.creds.Email || password != s.creds.Password {
		s.countLogin("failure")
		return LoginResult{Success: false, Message: "Invalid email or password"}
	}

	user := adminUser(s.creds.Email)

	token, jti, err := s.mintToken(user)
	if err != nil {
		slog.ErrorContext(ctx, "auth: mint token failed", "error", err)
		s.countLogin("failure")
		return LoginResult{Success: false, Message: "Login failed, try again"}
	}

	if err := s.sessions.Put(ctx, jti, user, s.tokenTTL); err != nil {
		slog.ErrorContext(ctx, "auth: store session failed", "error", err)
		s.countLogin("failure")
		return LoginResult{Success: false, Message: "Login failed, try again"}
	}

	s.countLogin("success")
	if s.eb != nil {
		s.eb.Publish(ctx, domain.EventUserLoggedIn{User: user})
	}

	return LoginResult{Success: true, User: &user, Token: token}
}

// Register is disabled in this deployment; it always fails.
func (s *Service) Register(context.Context) LoginResult {
	return LoginResult{
		Success: false,
		Message: "Registration is disabled. Use fixed login credentials.",
	}
}

// Logout removes the session behind the token. An unparseable token is a
// no-op logout, not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// Authorized is the route-guard predicate: the token must carry a valid
// signature and expiry, and its session must still exist in the store.
func (s *Service) Authorized(ctx context.Context, token string) (*domain.User, bool) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, false
	}

	user, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		slog.ErrorContext(ctx, "auth: load session failed", "error", err)
		return nil, false
	}
	if user == nil {
		return nil, false
	}
	return user, true
}

func (s *Service) mintToken(user domain.User) (token, jti string, err error) {
	jti = uuid.New().String()

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        jti,
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	return token, jti, nil
}

func (s *Service) parseToken(token string) (*jwt.RegisteredClaims, error) {
	claims := new(jwt.RegisteredClaims)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return claims, nil
}

func (s *Service) countLogin(result string) {
	if s.metrics != nil {
		s.metrics.Logins.WithLabelValues(result).Inc()
	}
}

func adminUser(email string) domain.User {
	return domain.User{
		ID:              "1",
		Name:            "Admin User",
		Email:           email,
		Avatar:          "👨‍🎓",
		EnrolledCourses: []int{1, 2},
		Progress:        80,
	}
}
