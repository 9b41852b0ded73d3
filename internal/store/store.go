// Package store owns the resident collaboration graph: a single immutable
// snapshot loaded from the dataset file and swapped atomically on reload.
// Filter passes always run against a consistent snapshot.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/collabscope/core/internal/metrics"
	"github.com/collabscope/core/internal/models"
	"github.com/collabscope/core/internal/parser"
)

type Store struct {
	path   string
	logger *zap.Logger

	mu    sync.RWMutex
	graph *models.Graph
	subs  map[chan struct{}]struct{}
}

func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:   path,
		logger: logger,
		graph:  models.Empty(),
		subs:   make(map[chan struct{}]struct{}),
	}
}

// Graph returns the current snapshot. The snapshot is immutable; callers
// must not modify it.
func (s *Store) Graph() *models.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Load reads and parses the dataset file, swapping in the new graph on
// success. On failure the previous snapshot is kept (the initial snapshot is
// the empty graph, so a missing file at startup yields the "no data" state
// rather than a crash).
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		metrics.DatasetReloads.WithLabelValues("error").Inc()
		s.logger.Warn("dataset unreadable, keeping current graph",
			zap.String("path", s.path),
			zap.Error(err))
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	graph, err := parser.ParseDataset(data, s.logger)
	if err != nil {
		metrics.DatasetReloads.WithLabelValues("error").Inc()
		s.logger.Warn("dataset unparseable, keeping current graph",
			zap.String("path", s.path),
			zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.graph = graph
	subs := make([]chan struct{}, 0, len(s.subs))
	for ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	metrics.DatasetReloads.WithLabelValues("success").Inc()
	metrics.GraphNodes.Set(float64(len(graph.Nodes)))
	metrics.GraphEdges.Set(float64(len(graph.Edges)))
	s.logger.Info("dataset loaded",
		zap.String("path", s.path),
		zap.Int("nodes", len(graph.Nodes)),
		zap.Int("edges", len(graph.Edges)))

	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}

	return nil
}

// Subscribe returns a channel that receives a signal after each successful
// reload, plus a cancel function. The channel is buffered; a slow consumer
// misses intermediate reloads but always sees the latest snapshot via Graph.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		delete(s.subs, ch)
		s.mu.Unlock()
	}
	return ch, cancel
}

// Watch reloads the dataset whenever its file changes on disk, until the
// context is cancelled. The parent directory is watched rather than the file
// itself so editors that replace the file are picked up.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	base := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.logger.Debug("dataset changed on disk", zap.String("event", event.String()))
			_ = s.Load()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("file watcher error", zap.Error(err))
		}
	}
}
