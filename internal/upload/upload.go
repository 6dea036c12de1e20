package upload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stats summarizes one upload run.
type Stats struct {
	FilesScanned  int
	FilesSkipped  int
	FilesUploaded int
	Sessions      int
	Sets          int64
	Errors        int
}

// Uploader scans a directory for CSV exports and sends new ones to the
// server.
type Uploader struct {
	client *Client
	state  *StateDB
	dir    string
	dryRun bool
	log    *slog.Logger
}

// New creates an Uploader.
func New(client *Client, state *StateDB, dir string, dryRun bool, log *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		state:  state,
		dir:    dir,
		dryRun: dryRun,
		log:    log,
	}
}

// Run walks the export directory and imports every CSV file not already
// recorded in the state database. Files are processed in name order so
// older exports land first.
func (u *Uploader) Run() (*Stats, error) {
	stats := &Stats{}

	var paths []string
	err := filepath.WalkDir(u.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", u.dir, err)
	}
	sort.Strings(paths)

	for _, path := range paths {
		stats.FilesScanned++
		if err := u.processFile(path, stats); err != nil {
			u.log.Error("upload failed", "file", path, "error", err)
			stats.Errors++
		}
	}

	return stats, nil
}

func (u *Uploader) processFile(path string, stats *Stats) error {
	rel, err := filepath.Rel(u.dir, path)
	if err != nil {
		rel = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return err
	}

	done, err := u.state.IsImported(rel, info.Size(), hash)
	if err != nil {
		return err
	}
	if done {
		u.log.Debug("already imported", "file", rel)
		stats.FilesSkipped++
		return nil
	}

	if u.dryRun {
		u.log.Info("would import", "file", rel, "size", info.Size())
		stats.FilesUploaded++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	result, err := u.client.SendCSV(data)
	if err != nil {
		return err
	}

	if err := u.state.MarkImported(rel, info.Size(), hash, result.SessionsInserted, result.SetsInserted); err != nil {
		return fmt.Errorf("recording import state: %w", err)
	}

	u.log.Info("imported", "file", rel,
		"sessions", result.SessionsInserted,
		"skipped", result.SessionsSkipped,
		"sets", result.SetsInserted,
		"records", result.RecordsUpdated,
	)
	stats.FilesUploaded++
	stats.Sessions += result.SessionsInserted
	stats.Sets += result.SetsInserted
	return nil
}
