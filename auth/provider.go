// Package auth signs users in with email and password, issues session
// tokens, and decides whether a caller may enter a role-restricted area.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 6

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrRoleMismatch       = errors.New("account does not have the requested role")
)

type Session struct {
	Token     string      `json:"token"`
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      models.Role `json:"role"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type Provider struct {
	profiles repository.ProfileRepository
	revoker  Revoker
	events   *Broadcaster
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func NewProvider(profiles repository.ProfileRepository, revoker Revoker, secret string, ttl time.Duration, logger *zap.Logger) *Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &Provider{
		profiles: profiles,
		revoker:  revoker,
		events:   NewBroadcaster(),
		secret:   []byte(secret),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// SignUp registers a customer. Admin accounts are never created here.
func (p *Provider) SignUp(ctx context.Context, email, password, fullName string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)
	if email == "" || password == "" || fullName == "" {
		return nil, ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	profile := &models.Profile{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         models.RoleCustomer,
	}
	if err := p.profiles.Create(ctx, profile); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	p.logger.Info("customer registered", zap.String("user_id", profile.ID))
	return profile, nil
}

// MaxFullNameLength bounds profile names in runes.
const MaxFullNameLength = 120

func (p *Provider) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	return p.profiles.GetByID(ctx, userID)
}

// UpdateProfile renames the caller. Email and role are not editable.
func (p *Provider) UpdateProfile(ctx context.Context, userID, fullName string) (*models.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, ErrMissingFields
	}
	if utf8.RuneCountInString(fullName) > MaxFullNameLength {
		return nil, fmt.Errorf("%w: full name longer than %d characters", repository.ErrInvalidInput, MaxFullNameLength)
	}
	if err := p.profiles.UpdateFullName(ctx, userID, fullName); err != nil {
		return nil, err
	}
	p.logger.Info("profile updated", zap.String("user_id", userID))
	return p.profiles.GetByID(ctx, userID)
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	profile, err := p.profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, c, err := p.issueToken(profile, p.now())
	if err != nil {
		return nil, err
	}
	p.events.Publish(Event{Type: EventSignedIn, UserID: profile.ID, At: p.now()})
	return &Session{
		Token:     token,
		UserID:    profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      profile.Role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// SignInAs signs in and then requires the profile to hold role. On mismatch
// the fresh session is signed out again and ErrRoleMismatch returned.
func (p *Provider) SignInAs(ctx context.Context, email, password string, role models.Role) (*Session, error) {
	sess, err := p.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if sess.Role != role {
		if err := p.SignOut(ctx, sess.Token); err != nil {
			p.logger.Warn("sign out after role mismatch", zap.String("user_id", sess.UserID), zap.Error(err))
		}
		return nil, ErrRoleMismatch
	}
	return sess, nil
}

// Session resolves a token to the current session, re-reading the profile so
// role changes apply immediately.
func (p *Provider) Session(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, ErrInvalidToken
	}
	c, err := p.parseToken(token)
	if err != nil {
		return nil, err
	}
	revoked, err := p.revoker.IsRevoked(ctx, c.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	profile, err := p.profiles.GetByID(ctx, c.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &Session{
		Token:     token,
		UserID:    profile.ID,
		Email:     profile.Email,
		FullName:  profile.FullName,
		Role:      profile.Role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

func (p *Provider) SignOut(ctx context.Context, token string) error {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	c, err := p.parseToken(token)
	if err != nil {
		return err
	}
	if err := p.revoker.Revoke(ctx, c.ID, c.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	p.events.Publish(Event{Type: EventSignedOut, UserID: c.Subject, At: p.now()})
	return nil
}

// Subscribe streams auth-state changes until the returned func is called.
func (p *Provider) Subscribe() (<-chan Event, func()) {
	return p.events.Subscribe()
}
