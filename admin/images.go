// Package admin implements the back-office panels: product, category and
// banner CRUD with image handling, order status management and the customer
// list.
package admin

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/masum-diu/nishaan/storage"
	"go.uber.org/zap"
)

// Upload is an image received from the admin client.
type Upload struct {
	Filename string
	Body     io.Reader
}

type imageStore struct {
	bucket storage.Bucket
	prefix string
	logger *zap.Logger
	now    func() time.Time
}

func (s imageStore) upload(ctx context.Context, u Upload) (string, error) {
	name := storage.ObjectName(s.prefix, u.Filename, s.now())
	url, err := s.bucket.Upload(ctx, name, u.Body)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", u.Filename, err)
	}
	return url, nil
}

// remove drops the objects behind urls. Failures are logged, never returned.
func (s imageStore) remove(ctx context.Context, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}
		name, ok := s.bucket.ObjectName(url)
		if !ok {
			continue
		}
		if err := s.bucket.Remove(ctx, name); err != nil {
			s.logger.Warn("failed to remove stored image", zap.String("object", name), zap.Error(err))
		}
	}
}
