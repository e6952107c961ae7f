package jobs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// CleanupJob periodically removes stale files from the uploads
// directory. Downloaded attachments are normally deleted right after
// extraction; this sweep catches anything left behind by a crash.
type CleanupJob struct {
	scheduler  gocron.Scheduler
	uploadsDir string
	ttl        time.Duration
}

// NewCleanupJob creates the upload sweeper. ttl is how old a file
// must be before it is removed.
func NewCleanupJob(uploadsDir string, ttl time.Duration) (*CleanupJob, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &CleanupJob{
		scheduler:  scheduler,
		uploadsDir: uploadsDir,
		ttl:        ttl,
	}, nil
}

// Start registers the sweep and starts the scheduler.
func (j *CleanupJob) Start() error {
	_, err := j.scheduler.NewJob(
		gocron.DurationJob(j.ttl),
		gocron.NewTask(j.sweep),
		gocron.WithName("upload-cleanup"),
	)
	if err != nil {
		return fmt.Errorf("failed to register cleanup job: %w", err)
	}

	j.scheduler.Start()
	log.Printf("🧹 Upload cleanup job started (ttl: %s)", j.ttl)
	return nil
}

// Stop shuts down the scheduler.
func (j *CleanupJob) Stop() error {
	log.Println("⏹️ Stopping upload cleanup job...")
	return j.scheduler.Shutdown()
}

// sweep removes files older than the ttl from the uploads directory.
func (j *CleanupJob) sweep() {
	entries, err := os.ReadDir(j.uploadsDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Failed to read uploads dir: %v", err)
		}
		return
	}

	cutoff := time.Now().Add(-j.ttl)
	var removed int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.uploadsDir, entry.Name())
		if err := os.Remove(path); err != nil {
			log.Printf("⚠️ Failed to remove stale upload %s: %v", entry.Name(), err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("🧹 Removed %d stale uploads", removed)
	}
}
