package auth

import (
	"context"
	"errors"

	"github.com/masum-diu/nishaan/models"
)

// LoginPath is where unauthorized callers are sent.
const LoginPath = "/auth"

type State string

const (
	StateChecking    State = "checking"
	StateAuthorized  State = "authorized"
	StateRedirecting State = "redirecting"
)

type Decision struct {
	State    State    `json:"state"`
	Redirect string   `json:"redirect,omitempty"`
	Session  *Session `json:"session,omitempty"`
	// Err is set when the session lookup itself failed (not merely absent).
	Err error `json:"-"`
}

// SessionSource is the part of Provider the gate depends on.
type SessionSource interface {
	Session(ctx context.Context, token string) (*Session, error)
	Subscribe() (<-chan Event, func())
}

type Gate struct {
	source SessionSource
}

func NewGate(source SessionSource) *Gate {
	return &Gate{source: source}
}

// Evaluate resolves token against requiredRole. Protected content is only
// released with StateAuthorized.
func (g *Gate) Evaluate(ctx context.Context, token string, requiredRole models.Role) Decision {
	if token == "" {
		return redirect(nil)
	}
	sess, err := g.source.Session(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return redirect(nil)
		}
		return redirect(err)
	}
	if requiredRole != "" && sess.Role != requiredRole {
		return redirect(nil)
	}
	return Decision{State: StateAuthorized, Session: sess}
}

func redirect(err error) Decision {
	return Decision{State: StateRedirecting, Redirect: LoginPath, Err: err}
}

// Watch emits StateChecking, then the first decision, then a fresh decision
// after every auth-state change that concerns the watched user. The channel
// closes when ctx is done.
func (g *Gate) Watch(ctx context.Context, token string, requiredRole models.Role) <-chan Decision {
	out := make(chan Decision, 4)
	events, cancel := g.source.Subscribe()

	go func() {
		defer close(out)
		defer cancel()

		send := func(d Decision) bool {
			select {
			case out <- d:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(Decision{State: StateChecking}) {
			return
		}
		current := g.Evaluate(ctx, token, requiredRole)
		if !send(current) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				if current.Session != nil && ev.UserID != current.Session.UserID {
					continue
				}
				current = g.Evaluate(ctx, token, requiredRole)
				if !send(current) {
					return
				}
			}
		}
	}()
	return out
}
