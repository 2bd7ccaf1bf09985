package wizard

import (
	"os"
	"path/filepath"
	"time"

	"tutorhub/config"
	"tutorhub/utils"

	"go.uber.org/zap"
)

// StageDir returns the directory staged documents are written to. Staging
// always happens inside a dedicated directory so the sweep never touches
// files that are not ours.
func StageDir() string {
	if config.AppConfig.DocumentStagePath != "" {
		return config.AppConfig.DocumentStagePath
	}
	return filepath.Join(os.TempDir(), "tutorhub-stage")
}

// SweepStageDir removes staged files older than maxAge and reports how many
// were removed. The session record in Redis expires by TTL but the file on
// disk does not; this sweep is the only thing that reclaims files from
// abandoned sessions. maxAge must exceed the longest plausible active
// session: saves refresh the session TTL, so a live draft can hold a staged
// file well past a single TTL window.
func SweepStageDir(dir string, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
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
		path := filepath.Join(dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			utils.GetLogger().Warn("Failed to remove stale staged document", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
