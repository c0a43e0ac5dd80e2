package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes read-modify-write cycles on one session's cart.
// The returned func releases the lock and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, session string) (func(), error)
}

type localEntry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker guards sessions within a single process.
type LocalLocker struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{entries: map[string]*localEntry{}}
}

func (l *LocalLocker) Lock(ctx context.Context, session string) (func(), error) {
	l.mu.Lock()
	e, ok := l.entries[session]
	if !ok {
		e = &localEntry{ch: make(chan struct{}, 1)}
		l.entries[session] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.drop(session, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.drop(session, e)
		})
	}, nil
}

func (l *LocalLocker) drop(session string, e *localEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, session)
	}
}

var ErrLockTimeout = errors.New("cart session is busy")

const (
	redisLockTTL   = 10 * time.Second
	redisLockRetry = 20 * time.Millisecond
	redisLockWait  = 5 * time.Second
)

// Deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// RedisLocker guards sessions across processes sharing one Redis.
type RedisLocker struct {
	rdb *redis.Client
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{rdb: rdb}
}

func (r *RedisLocker) Lock(ctx context.Context, session string) (func(), error) {
	key := "cart:lock:" + session
	token := uuid.NewString()

	ctx, cancel := context.WithTimeout(ctx, redisLockWait)
	defer cancel()
	for {
		ok, err := r.rdb.SetNX(ctx, key, token, redisLockTTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ErrLockTimeout
		case <-time.After(redisLockRetry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseScript.Run(context.Background(), r.rdb, []string{key}, token)
		})
	}, nil
}
