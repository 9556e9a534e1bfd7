package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// SweepStats summarizes one sweep run.
type SweepStats struct {
	Scanned        int
	Removed        int
	BytesReclaimed int64
	Duration       time.Duration
}

// Sweeper removes audio files from the media directory once they are older
// than the configured retention. Files the pipeline is still writing are
// naturally protected: their mtime is recent.
type Sweeper struct {
	Dir           string
	Retention     time.Duration
	MaxConcurrent int
	Logger        *slog.Logger
}

// Run performs one sweep. Removal failures for individual files are logged
// and skipped so one stubborn file cannot block the rest of the run.
func (s *Sweeper) Run(ctx context.Context) (*SweepStats, error) {
	start := time.Now()

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("Run: read media dir: %w", err)
	}

	cutoff := time.Now().Add(-s.Retention)
	stats := &SweepStats{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.MaxConcurrent)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stats.Scanned++

		entry := entry
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := entry.Info()
			if err != nil {
				// File vanished between ReadDir and Info; nothing to do.
				return nil
			}
			if info.ModTime().After(cutoff) {
				return nil
			}

			path := filepath.Join(s.Dir, entry.Name())
			if err := os.Remove(path); err != nil {
				s.Logger.Warn("failed to remove expired media file",
					slog.String("path", path),
					slog.Any("error", err))
				return nil
			}

			mu.Lock()
			stats.Removed++
			stats.BytesReclaimed += info.Size()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
