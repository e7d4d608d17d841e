package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/noteport/internal/logfields"
)

// Rebuilder runs one full export of the vault into the output directory.
type Rebuilder func(ctx context.Context) error

// Server watches a vault for changes, re-exports on edits, and serves the
// exported output over HTTP with a /metrics endpoint.
type Server struct {
	VaultDir  string
	ExportDir string
	Port      int
	// RebuildInterval, when positive, schedules periodic rebuilds in
	// addition to change-triggered ones.
	RebuildInterval time.Duration
	Rebuild         Rebuilder

	metrics *Metrics
}

// Run performs the initial export, then blocks serving the preview until the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	if s.Rebuild == nil {
		return errors.New("preview: no rebuilder configured")
	}
	if st, err := os.Stat(s.VaultDir); err != nil || !st.IsDir() {
		return fmt.Errorf("vault dir not found or not a directory: %s", s.VaultDir)
	}
	s.metrics = NewMetrics()

	if err := s.runRebuild(ctx); err != nil {
		slog.Error("initial export failed", logfields.Error(err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := addDirsRecursive(watcher, s.VaultDir); err != nil {
		return err
	}

	rebuildReq, trigger := newDebouncer()
	s.startRebuildWorker(ctx, rebuildReq)

	httpServer, err := s.startHTTPServer()
	if err != nil {
		return err
	}

	var scheduler gocron.Scheduler
	if s.RebuildInterval > 0 {
		scheduler, err = s.startScheduler(trigger)
		if err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return s.shutdown(httpServer, scheduler, rebuildReq)
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			handleFileEvent(watcher, ev, trigger)
		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", logfields.Error(werr))
		}
	}
}

func (s *Server) runRebuild(ctx context.Context) error {
	start := time.Now()
	err := s.Rebuild(ctx)
	s.metrics.ObserveRebuild(time.Since(start), err)
	return err
}

// newDebouncer coalesces bursts of filesystem events into single rebuild
// requests.
func newDebouncer() (chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(300*time.Millisecond, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

// startRebuildWorker processes rebuild requests one at a time. A request
// arriving mid-rebuild queues exactly one follow-up pass.
func (s *Server) startRebuildWorker(ctx context.Context, rebuildReq chan struct{}) {
	var mu sync.Mutex
	running := false
	pending := false

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-rebuildReq:
				if !ok {
					return
				}
				mu.Lock()
				if running {
					pending = true
					mu.Unlock()
					continue
				}
				running = true
				mu.Unlock()

				slog.Info("Change detected; re-exporting")
				if err := s.runRebuild(ctx); err != nil {
					slog.Warn("re-export failed", logfields.Error(err))
				}

				mu.Lock()
				running = false
				if pending {
					pending = false
					mu.Unlock()
					select {
					case rebuildReq <- struct{}{}:
					default:
					}
				} else {
					mu.Unlock()
				}
			}
		}
	}()
}

func (s *Server) startHTTPServer() (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	mux.Handle("/", http.FileServer(http.Dir(s.ExportDir)))

	addr := fmt.Sprintf(":%d", s.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			slog.Error("preview server stopped", logfields.Error(serveErr))
		}
	}()
	slog.Info("Preview server listening",
		slog.Int("port", s.Port),
		logfields.URL(fmt.Sprintf("http://localhost:%d", s.Port)))
	return srv, nil
}

func (s *Server) startScheduler(trigger func()) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	_, err = scheduler.NewJob(
		gocron.DurationJob(s.RebuildInterval),
		gocron.NewTask(trigger),
		gocron.WithName("periodic-reexport"),
	)
	if err != nil {
		return nil, fmt.Errorf("schedule periodic re-export: %w", err)
	}
	scheduler.Start()
	slog.Info("Periodic re-export scheduled", slog.Duration("interval", s.RebuildInterval))
	return scheduler, nil
}

func (s *Server) shutdown(srv *http.Server, scheduler gocron.Scheduler, rebuildReq chan struct{}) error {
	slog.Info("Shutting down preview server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if scheduler != nil {
		if err := scheduler.Shutdown(); err != nil {
			slog.Warn("scheduler shutdown error", logfields.Error(err))
		}
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP server shutdown error", logfields.Error(err))
	}
	close(rebuildReq)
	return nil
}

// handleFileEvent triggers a rebuild for relevant events and starts watching
// newly created directories.
func handleFileEvent(watcher *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if shouldIgnoreEvent(ev.Name) {
		return
	}
	if ev.Op&fsnotify.Create == fsnotify.Create {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = addDirsRecursive(watcher, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
	trigger()
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if addErr := w.Add(path); addErr != nil {
				slog.Warn("watch add failed", logfields.Path(path), logfields.Error(addErr))
			}
		}
		return nil
	})
}

// shouldIgnoreEvent filters out hidden files and editor temp/swap files.
func shouldIgnoreEvent(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, ".#") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	if base == ".DS_Store" || base == "Thumbs.db" {
		return true
	}
	return false
}
