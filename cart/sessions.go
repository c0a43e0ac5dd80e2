package cart

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
)

var ErrInvalidSession = errors.New("invalid cart session id")

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9:_\-]{1,128}$`)

// Sessions opens the Store for a session id, one Store per request.
type Sessions struct {
	newPersister func(session string) Persister
	locker       Locker
	logger       *zap.Logger
}

// NewSessions uses a LocalLocker when locker is nil.
func NewSessions(newPersister func(session string) Persister, locker Locker, logger *zap.Logger) *Sessions {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{newPersister: newPersister, locker: locker, logger: logger}
}

// Open locks the session and loads its Store. The caller must call release
// once it is done mutating the Store, so concurrent requests on the same
// session never save over each other.
func (s *Sessions) Open(ctx context.Context, session string) (store *Store, release func(), err error) {
	if !sessionPattern.MatchString(session) {
		return nil, nil, ErrInvalidSession
	}
	release, err = s.locker.Lock(ctx, session)
	if err != nil {
		return nil, nil, fmt.Errorf("lock cart %s: %w", session, err)
	}
	return NewStore(ctx, s.newPersister(session), s.logger.With(zap.String("cart_session", session))), release, nil
}

// GuestSession and UserSession namespace ids so a guest id can never
// collide with an account.
func GuestSession(id string) string { return "guest:" + id }

func UserSession(userID string) string { return "user:" + userID }
