package auth

import (
	"context"
	"testing"
	"time"

	"github.com/masum-diu/nishaan/models"
)

func TestGate_Evaluate(t *testing.T) {
	p, profiles := newTestProvider()
	ctx := context.Background()
	profiles.addAdmin(t, "admin@example.com", "adminpw")
	if _, err := p.SignUp(ctx, "rina@example.com", "secret1", "Rina"); err != nil {
		t.Fatal(err)
	}
	customer, err := p.SignIn(ctx, "rina@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}
	admin, err := p.SignIn(ctx, "admin@example.com", "adminpw")
	if err != nil {
		t.Fatal(err)
	}
	revoked, err := p.SignIn(ctx, "admin@example.com", "adminpw")
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SignOut(ctx, revoked.Token); err != nil {
		t.Fatal(err)
	}

	gate := NewGate(p)
	tests := []struct {
		name  string
		token string
		role  models.Role
		want  State
	}{
		{"no token", "", models.RoleAdmin, StateRedirecting},
		{"garbage token", "abc", models.RoleAdmin, StateRedirecting},
		{"customer on admin route", customer.Token, models.RoleAdmin, StateRedirecting},
		{"admin on admin route", admin.Token, models.RoleAdmin, StateAuthorized},
		{"customer on customer route", customer.Token, models.RoleCustomer, StateAuthorized},
		{"revoked admin", revoked.Token, models.RoleAdmin, StateRedirecting},
	}
	for _, tt := range tests {
		d := gate.Evaluate(ctx, tt.token, tt.role)
		if d.State != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, d.State)
		}
		if d.State == StateRedirecting && (d.Redirect != LoginPath || d.Session != nil) {
			t.Errorf("%s: redirect decision leaked session or wrong target: %+v", tt.name, d)
		}
	}
}

func TestGate_WatchReactsToSignOut(t *testing.T) {
	p, profiles := newTestProvider()
	profiles.addAdmin(t, "admin@example.com", "adminpw")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sess, err := p.SignIn(ctx, "admin@example.com", "adminpw")
	if err != nil {
		t.Fatal(err)
	}

	decisions := NewGate(p).Watch(ctx, sess.Token, models.RoleAdmin)
	if d := <-decisions; d.State != StateChecking {
		t.Fatalf("expected checking first, got %q", d.State)
	}
	if d := <-decisions; d.State != StateAuthorized {
		t.Fatalf("expected authorized, got %q", d.State)
	}

	if err := p.SignOut(ctx, sess.Token); err != nil {
		t.Fatal(err)
	}
	if d := <-decisions; d.State != StateRedirecting {
		t.Errorf("expected redirecting after sign out, got %q", d.State)
	}

	cancel()
	for range decisions {
	}
}
