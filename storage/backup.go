package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// BackupSchedule copies the upload tree once a day at Hour:Minute and prunes
// copies older than Retention.
type BackupSchedule struct {
	SourceDir string
	BackupDir string
	Retention time.Duration
	Hour      int
	Minute    int
}

// NextRun returns the first scheduled time strictly after now.
func (s BackupSchedule) NextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.Hour, s.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run blocks until ctx is cancelled.
func (s BackupSchedule) Run(ctx context.Context, logger *zap.Logger) {
	for {
		next := s.NextRun(time.Now())
		logger.Info("next upload backup scheduled", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		dest, stats, err := s.Backup(time.Now())
		if err != nil {
			logger.Error("upload backup failed", zap.String("dest", dest), zap.Error(err))
		} else {
			logger.Info("uploads backed up", zap.String("dest", dest),
				zap.Int("files", stats.Files), zap.Int64("bytes", stats.Bytes))
		}
		s.Prune(time.Now(), logger)
	}
}

// Backup copies SourceDir into a timestamped folder under BackupDir.
func (s BackupSchedule) Backup(now time.Time) (string, BackupStats, error) {
	dest := filepath.Join(s.BackupDir, now.Format("2006-01-02_15-04-05"))
	stats, err := copyTree(s.SourceDir, dest)
	return dest, stats, err
}

// Prune removes backup folders last modified before now-Retention.
func (s BackupSchedule) Prune(now time.Time, logger *zap.Logger) {
	entries, err := os.ReadDir(s.BackupDir)
	if err != nil {
		logger.Warn("read backup dir", zap.String("dir", s.BackupDir), zap.Error(err))
		return
	}
	cutoff := now.Add(-s.Retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(s.BackupDir, entry.Name())
		info, err := os.Stat(folder)
		if err != nil {
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(folder); err != nil {
			logger.Warn("remove old backup", zap.String("dir", folder), zap.Error(err))
			continue
		}
		logger.Info("removed old backup", zap.String("dir", folder))
	}
}

// tempPrefix marks half-written uploads from LocalBucket.Upload.
const tempPrefix = ".upload-"

// BackupStats summarises one copy.
type BackupStats struct {
	Files int
	Bytes int64
}

// copyTree mirrors src into dest, skipping in-flight upload temp files.
func copyTree(src, dest string) (BackupStats, error) {
	var stats BackupStats
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if strings.HasPrefix(d.Name(), tempPrefix) || !d.Type().IsRegular() {
			return nil
		}
		n, err := copyFile(path, target)
		if err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		stats.Files++
		stats.Bytes += n
		return nil
	})
	return stats, err
}

func copyFile(src, dest string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
