package cart

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// StorageKey is the key under which a session's cart is serialized.
func StorageKey(session string) string {
	return "cart:" + session
}

// MemoryPersister keeps the serialized cart in process memory.
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
	// SaveErr, when set, is returned by every Save.
	SaveErr error
}

func NewMemoryPersister(initial []byte) *MemoryPersister {
	return &MemoryPersister{data: initial}
}

func (m *MemoryPersister) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoData
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryPersister) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryPersister) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// FilePersister stores one cart per file under Dir. File names are a hash
// of the storage key, so distinct sessions never share a file.
type FilePersister struct {
	path string
}

func NewFilePersister(dir, session string) *FilePersister {
	sum := sha256.Sum256([]byte(StorageKey(session)))
	return &FilePersister{path: filepath.Join(dir, "cart_"+hex.EncodeToString(sum[:])+".json")}
}

func (f *FilePersister) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("read cart file: %w", err)
	}
	return data, nil
}

// Save writes to a unique temp file and renames it over the old one.
func (f *FilePersister) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create cart temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}

// RedisTTL is refreshed on every save.
const RedisTTL = 30 * 24 * time.Hour

// RedisPersister stores the cart under cart:<session>.
type RedisPersister struct {
	rdb *redis.Client
	key string
}

func NewRedisPersister(rdb *redis.Client, session string) *RedisPersister {
	return &RedisPersister{rdb: rdb, key: StorageKey(session)}
}

func (r *RedisPersister) Load(ctx context.Context) ([]byte, error) {
	data, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return data, nil
}

func (r *RedisPersister) Save(ctx context.Context, data []byte) error {
	if err := r.rdb.Set(ctx, r.key, data, RedisTTL).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
