package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/ledgefinder/internal/config"
	"github.com/Faultbox/ledgefinder/internal/logger"
)

// runWatch re-extracts meshPath into outPath every time the mesh is written,
// until ctx is cancelled. The parent directory is watched rather than the
// file itself, since editors usually save by replacing the file.
func runWatch(ctx context.Context, cfg *config.Config, meshPath, outPath string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(meshPath)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", meshPath, err)
	}

	log := logger.Named("watch").With(zap.String("mesh", meshPath), zap.String("out", outPath))
	rebuild := func() {
		if err := writeExtract(cfg, meshPath, outPath); err != nil {
			log.Warn("rebuild failed", zap.Error(err))
			return
		}
		log.Info("ledges rebuilt")
	}

	rebuild()
	for {
		select {
		case <-ctx.Done():
			return nil

		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(e.Name) != target {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				rebuild()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))
		}
	}
}

// writeExtract writes the extract document for meshPath to outPath through a
// temporary file, so readers never observe a half-written result.
func writeExtract(cfg *config.Config, meshPath, outPath string) error {
	tmp := outPath + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	if err := runExtract(cfg, meshPath, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, outPath)
}
