// Package config hot-reloads named optic presets from a directory of
// *.optic files, generalizing the teacher's MangleWatcher
// (internal/core/mangle_watcher.go in theRebelliousNerd-codenerd): watch a
// directory with fsnotify, debounce rapid writes, and re-parse whatever
// settled rather than reacting to every individual fsnotify event.
package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/searchcore/engine/internal/optic"
	"github.com/searchcore/engine/pkg/model"
)

// PresetStore holds the set of named optic presets currently loaded from
// disk, swapped atomically on reload so a query concurrently reading
// Get never observes a half-updated set (spec §3: "saved optic, named").
type PresetStore struct {
	mu      sync.RWMutex
	presets map[string]model.Optic

	dir         string
	watcher     *fsnotify.Watcher
	debounceDur time.Duration
	logger      *zap.Logger

	stopCh chan struct{}
	doneCh chan struct{}

	runOnce sync.Once
}

// NewPresetStore loads every *.optic file under dir and returns a store
// ready to Watch for further changes. dir is created if absent.
func NewPresetStore(dir string, logger *zap.Logger) (*PresetStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	s := &PresetStore{
		presets:     make(map[string]model.Optic),
		dir:         dir,
		watcher:     watcher,
		debounceDur: 250 * time.Millisecond,
		logger:      logger,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}

	if err := s.reloadAll(); err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		return nil, err
	}
	return s, nil
}

// Get returns the named preset and whether it exists.
func (s *PresetStore) Get(name string) (model.Optic, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.presets[name]
	return o, ok
}

// Names lists every currently loaded preset name.
func (s *PresetStore) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.presets))
	for name := range s.presets {
		out = append(out, name)
	}
	return out
}

// Watch starts the debounced fsnotify loop in the background. Non-blocking;
// call Stop (or cancel ctx) to end it.
func (s *PresetStore) Watch(ctx context.Context) {
	s.runOnce.Do(func() {
		go s.run(ctx)
	})
}

// Stop ends the watch loop and releases the fsnotify handle.
func (s *PresetStore) Stop() {
	s.runOnce.Do(func() { close(s.doneCh) })
	close(s.stopCh)
	<-s.doneCh
	_ = s.watcher.Close()
}

func (s *PresetStore) run(ctx context.Context) {
	defer close(s.doneCh)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if strings.HasSuffix(event.Name, ".optic") {
				pending[event.Name] = time.Now()
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("preset watcher error", zap.Error(err))
		case <-ticker.C:
			now := time.Now()
			for path, at := range pending {
				if now.Sub(at) < s.debounceDur {
					continue
				}
				delete(pending, path)
				s.reloadOne(path)
			}
		}
	}
}

// reloadAll parses every *.optic file under s.dir, replacing the preset set
// wholesale. Used at startup so a partially-written directory at process
// start doesn't leave presets from a stale in-memory default.
func (s *PresetStore) reloadAll() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}

	next := make(map[string]model.Optic, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".optic") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		o, err := parsePresetFile(path)
		if err != nil {
			s.logger.Warn("skipping invalid preset", zap.String("path", path), zap.Error(err))
			continue
		}
		next[presetName(e.Name())] = o
	}

	s.mu.Lock()
	s.presets = next
	s.mu.Unlock()
	return nil
}

// reloadOne re-parses a single preset file after its debounce window
// settles, deleting the preset if the file was removed.
func (s *PresetStore) reloadOne(path string) {
	name := presetName(filepath.Base(path))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		s.mu.Lock()
		delete(s.presets, name)
		s.mu.Unlock()
		s.logger.Info("preset removed", zap.String("name", name))
		return
	}

	o, err := parsePresetFile(path)
	if err != nil {
		s.logger.Warn("preset reload failed, keeping prior version", zap.String("name", name), zap.Error(err))
		return
	}

	s.mu.Lock()
	s.presets[name] = o
	s.mu.Unlock()
	s.logger.Info("preset reloaded", zap.String("name", name))
}

func parsePresetFile(path string) (model.Optic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return model.Optic{}, err
	}
	return optic.ParseCached(string(src))
}

func presetName(fileName string) string {
	return strings.TrimSuffix(fileName, ".optic")
}
