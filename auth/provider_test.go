package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"golang.org/x/crypto/bcrypt"
)

type memoryProfiles struct {
	mu   sync.Mutex
	byID map[string]models.Profile
}

func newMemoryProfiles() *memoryProfiles {
	return &memoryProfiles{byID: make(map[string]models.Profile)}
}

func (m *memoryProfiles) Create(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == p.Email {
			return repository.ErrDuplicate
		}
	}
	p.CreatedAt = time.Now()
	m.byID[p.ID] = *p
	return nil
}

func (m *memoryProfiles) GetByID(_ context.Context, id string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (m *memoryProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byID {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memoryProfiles) ListByRole(_ context.Context, role models.Role) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Profile
	for _, p := range m.byID {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProfiles) UpdateFullName(_ context.Context, id, fullName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.FullName = fullName
	m.byID[id] = p
	return nil
}

func (m *memoryProfiles) addAdmin(t *testing.T, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	m.byID["admin-1"] = models.Profile{ID: "admin-1", Email: email, PasswordHash: string(hash), FullName: "Admin", Role: models.RoleAdmin}
}

func newTestProvider() (*Provider, *memoryProfiles) {
	profiles := newMemoryProfiles()
	return NewProvider(profiles, NewMemoryRevoker(), "test-secret", time.Hour, nil), profiles
}

func TestProvider_SignUp(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()

	profile, err := p.SignUp(ctx, " Rina@Example.com ", "secret1", "Rina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Role != models.RoleCustomer {
		t.Errorf("expected customer role, got %q", profile.Role)
	}
	if profile.Email != "rina@example.com" {
		t.Errorf("expected normalized email, got %q", profile.Email)
	}
	if profile.PasswordHash == "secret1" {
		t.Error("password stored in clear")
	}

	tests := []struct {
		name                  string
		email, pass, fullName string
		want                  error
	}{
		{"duplicate", "rina@example.com", "secret1", "Rina", ErrEmailTaken},
		{"missing name", "x@example.com", "secret1", "", ErrMissingFields},
		{"missing email", "", "secret1", "X", ErrMissingFields},
		{"short password", "x@example.com", "123", "X", ErrWeakPassword},
	}
	for _, tt := range tests {
		if _, err := p.SignUp(ctx, tt.email, tt.pass, tt.fullName); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestProvider_UpdateProfile(t *testing.T) {
	p, profiles := newTestProvider()
	ctx := context.Background()
	created, err := p.SignUp(ctx, "rina@example.com", "secret1", "Rina")
	if err != nil {
		t.Fatal(err)
	}

	updated, err := p.UpdateProfile(ctx, created.ID, "  Rina Akter ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName != "Rina Akter" || updated.Email != created.Email || updated.Role != models.RoleCustomer {
		t.Errorf("unexpected profile after update: %+v", updated)
	}
	if stored := profiles.byID[created.ID]; stored.PasswordHash != created.PasswordHash {
		t.Error("password hash must not change on rename")
	}

	tests := []struct {
		name     string
		id, full string
		want     error
	}{
		{"blank", created.ID, "  ", ErrMissingFields},
		{"too long", created.ID, strings.Repeat("n", MaxFullNameLength+1), repository.ErrInvalidInput},
		{"unknown user", "nobody", "X", repository.ErrNotFound},
	}
	for _, tt := range tests {
		if _, err := p.UpdateProfile(ctx, tt.id, tt.full); !errors.Is(err, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, err)
		}
	}
}

func TestProvider_SignInSessionSignOut(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()
	if _, err := p.SignUp(ctx, "rina@example.com", "secret1", "Rina"); err != nil {
		t.Fatal(err)
	}

	if _, err := p.SignIn(ctx, "rina@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := p.SignIn(ctx, "nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	events, cancel := p.Subscribe()
	defer cancel()

	sess, err := p.SignIn(ctx, "RINA@example.com", "secret1")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if ev := <-events; ev.Type != EventSignedIn || ev.UserID != sess.UserID {
		t.Errorf("unexpected event %+v", ev)
	}

	got, err := p.Session(ctx, "Bearer "+sess.Token)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if got.UserID != sess.UserID || got.Role != models.RoleCustomer {
		t.Errorf("unexpected session %+v", got)
	}

	if err := p.SignOut(ctx, sess.Token); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if ev := <-events; ev.Type != EventSignedOut {
		t.Errorf("expected signed_out, got %+v", ev)
	}
	if _, err := p.Session(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}
}

func TestProvider_SignInAs(t *testing.T) {
	p, profiles := newTestProvider()
	ctx := context.Background()
	profiles.addAdmin(t, "admin@example.com", "adminpw")
	if _, err := p.SignUp(ctx, "rina@example.com", "secret1", "Rina"); err != nil {
		t.Fatal(err)
	}

	if _, err := p.SignInAs(ctx, "rina@example.com", "secret1", models.RoleAdmin); !errors.Is(err, ErrRoleMismatch) {
		t.Errorf("expected ErrRoleMismatch, got %v", err)
	}
	sess, err := p.SignInAs(ctx, "admin@example.com", "adminpw", models.RoleAdmin)
	if err != nil {
		t.Fatalf("admin sign in: %v", err)
	}
	if sess.Role != models.RoleAdmin {
		t.Errorf("expected admin session, got %q", sess.Role)
	}
}

func TestProvider_RejectsForeignAndExpiredTokens(t *testing.T) {
	p, _ := newTestProvider()
	ctx := context.Background()
	if _, err := p.SignUp(ctx, "rina@example.com", "secret1", "Rina"); err != nil {
		t.Fatal(err)
	}
	sess, err := p.SignIn(ctx, "rina@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	other := NewProvider(newMemoryProfiles(), NewMemoryRevoker(), "other-secret", time.Hour, nil)
	if _, err := other.Session(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected foreign token to be rejected, got %v", err)
	}

	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := p.Session(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected expired token to be rejected, got %v", err)
	}
	if _, err := p.Session(ctx, ""); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected empty token to be rejected, got %v", err)
	}
}
