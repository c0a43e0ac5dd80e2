// Package storage keeps uploaded images in named buckets and hands back the
// public URL each object is served under.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

const (
	BucketProducts   = "products"
	BucketCategories = "categories"
	BucketBanners    = "banners"
)

var ErrInvalidName = errors.New("invalid object name")

type Bucket interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
	PublicURL(name string) string
	// ObjectName reverses PublicURL; ok is false for URLs this bucket does not own.
	ObjectName(publicURL string) (name string, ok bool)
}

var unsafeChars = regexp.MustCompile(`[^\w\-.]`)

// ObjectName builds "<prefix>-<unixnano>-<original>" with the original file
// name reduced to a safe character set.
func ObjectName(prefix, original string, now time.Time) string {
	base := filepath.Base(strings.TrimSpace(original))
	base = unsafeChars.ReplaceAllString(strings.ReplaceAll(base, " ", "_"), "_")
	if base == "" || base == "." || base == "_" {
		base = "upload"
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixNano(), base)
}

// LocalBucket stores objects under <root>/<bucket> and serves them from
// <baseURL>/uploads/<bucket>/<name>.
type LocalBucket struct {
	dir     string
	name    string
	baseURL string
}

func NewLocalBucket(root, bucket, baseURL string) (*LocalBucket, error) {
	dir := filepath.Join(root, bucket)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create bucket dir %s: %w", dir, err)
	}
	return &LocalBucket{dir: dir, name: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (b *LocalBucket) path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(b.dir, name), nil
}

func (b *LocalBucket) Upload(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dst, err := b.path(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(b.dir, tempPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create temp object: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write object %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close object %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("store object %s: %w", name, err)
	}
	return b.PublicURL(name), nil
}

func (b *LocalBucket) Remove(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := b.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		return fmt.Errorf("remove object %s: %w", name, err)
	}
	return nil
}

func (b *LocalBucket) PublicURL(name string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", b.baseURL, b.name, name)
}

func (b *LocalBucket) ObjectName(publicURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/uploads/%s/", b.baseURL, b.name)
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(publicURL, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}
