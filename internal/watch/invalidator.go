// Package watch keeps a resolver's positive-only cache honest while templates
// are edited: it watches the template roots of an engine and clears the cache
// when files appear, disappear or are renamed.
//
// Content changes are ignored. The cache maps names to paths, and writing to
// an existing file does not change which path a name resolves to.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/schmitthub/tplresolve/internal/engine"
	"github.com/schmitthub/tplresolve/internal/logger"
	"github.com/schmitthub/tplresolve/internal/resolver"
)

// defaultIgnores are matched against paths relative to their root. Editor
// swap files churn constantly and never resolve as templates.
var defaultIgnores = []string{
	"**/.git/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// Config holds the parameters for an Invalidator.
type Config struct {
	// Engine supplies the roots to watch: its directory and every registered
	// folder path that exists.
	Engine *engine.Engine
	// Cache is cleared on every structural change.
	Cache resolver.Cacheable
	// Debounce coalesces bursts of events into one invalidation. Zero
	// invalidates on every event.
	Debounce time.Duration
	// Ignore lists extra doublestar patterns, relative to the root a path
	// lives under, that never trigger invalidation.
	Ignore []string
}

// Change reports one cache invalidation.
type Change struct {
	// Paths are the affected filesystem paths, sorted. May be empty when the
	// kernel event queue overflowed and the exact paths are unknown.
	Paths []string
	Time  time.Time
}

// Invalidator clears a resolver cache when template files are created,
// removed or renamed. Run must be called exactly once.
type Invalidator struct {
	fsw      *fsnotify.Watcher
	cache    resolver.Cacheable
	roots    []string
	ignores  []string
	debounce time.Duration
	changes  chan Change
	started  atomic.Bool
}

// New creates an Invalidator and registers every directory below the
// engine's template roots.
func New(cfg Config) (*Invalidator, error) {
	if cfg.Engine == nil || cfg.Cache == nil {
		return nil, errors.New("watch: engine and cache are required")
	}
	for _, pat := range cfg.Ignore {
		if !doublestar.ValidatePattern(pat) {
			return nil, fmt.Errorf("watch: invalid ignore pattern %q", pat)
		}
	}

	roots := Roots(cfg.Engine)
	if len(roots) == 0 {
		return nil, errors.New("watch: none of the template directories exist")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	i := &Invalidator{
		fsw:      fsw,
		cache:    cfg.Cache,
		roots:    roots,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		debounce: max(cfg.Debounce, 0),
		changes:  make(chan Change, 16),
	}

	for _, root := range roots {
		if err := i.addTree(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return i, nil
}

// Roots returns the existing template directories of e: the default
// directory first, then folder paths in registration order. Duplicates and
// roots nested inside an earlier root are dropped.
func Roots(e *engine.Engine) []string {
	var candidates []string
	if dir := e.Directory(); dir != "" {
		candidates = append(candidates, dir)
	}
	for _, f := range e.Folders().All() {
		candidates = append(candidates, f.Path)
	}

	var roots []string
	for _, c := range candidates {
		abs, err := filepath.Abs(c)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			logger.Debug().Str("path", abs).Msg("skipping missing template root")
			continue
		}
		if slices.ContainsFunc(roots, func(r string) bool { return within(r, abs) }) {
			continue
		}
		roots = append(roots, abs)
	}
	return roots
}

// within reports whether path is root or lies below it.
func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Roots returns the watched template roots.
func (i *Invalidator) Roots() []string { return slices.Clone(i.roots) }

// Changes delivers one Change per invalidation. The channel is closed when
// Run returns. Changes are dropped, never queued without bound, when the
// receiver falls behind; the cache is cleared either way.
func (i *Invalidator) Changes() <-chan Change { return i.changes }

// Close releases the underlying watcher. Run returns once it is closed.
func (i *Invalidator) Close() error {
	return i.fsw.Close()
}

// Run processes filesystem events until ctx is cancelled or the Invalidator
// is closed. It returns nil on either and an error for fatal watcher
// failures.
func (i *Invalidator) Run(ctx context.Context) error {
	if !i.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}
	defer close(i.changes)
	defer i.fsw.Close()

	var (
		pending = make(map[string]struct{})
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-i.fsw.Events:
			if !ok {
				return nil
			}
			if !i.relevant(evt) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				i.maybeAddTree(evt.Name)
			}

			pending[evt.Name] = struct{}{}
			if i.debounce == 0 {
				i.flush(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(i.debounce)
			} else {
				timer.Reset(i.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			i.flush(pending)

		case err, ok := <-i.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				// Events were lost, so any path may have changed.
				logger.Warn().Err(err).Msg("watch event queue overflowed, invalidating")
				i.flush(pending)
				continue
			}
			if isFatal(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			logger.Warn().Err(err).Msg("watch error")
		}
	}
}

// relevant filters out content writes, chmods and ignored paths.
func (i *Invalidator) relevant(evt fsnotify.Event) bool {
	if !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Remove) && !evt.Has(fsnotify.Rename) {
		return false
	}
	return !i.isIgnored(evt.Name)
}

func (i *Invalidator) flush(pending map[string]struct{}) {
	i.cache.ClearCache()

	change := Change{Paths: slices.Sorted(maps.Keys(pending)), Time: time.Now()}
	clear(pending)

	logger.Debug().Strs("paths", change.Paths).Msg("template cache invalidated")

	select {
	case i.changes <- change:
	default:
		logger.Debug().Msg("change notification dropped, receiver is behind")
	}
}

// addTree registers root and every non-ignored directory below it.
func (i *Invalidator) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Debug().Err(walkErr).Str("path", path).Msg("skipping inaccessible path")
			return nil //nolint:nilerr // best effort
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && i.isIgnored(path+string(filepath.Separator)) {
			return filepath.SkipDir
		}
		if err := i.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: walk %s: %w", root, err)
	}
	return nil
}

// maybeAddTree extends the watch to directories created after startup.
func (i *Invalidator) maybeAddTree(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := i.addTree(path); err != nil {
		logger.Warn().Err(err).Str("path", path).Msg("could not watch new directory")
	}
}

func (i *Invalidator) isIgnored(path string) bool {
	for _, root := range i.roots {
		if !within(root, path) {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		normalized := filepath.ToSlash(rel)
		if strings.HasSuffix(path, string(filepath.Separator)) {
			normalized += "/"
		}
		for _, pat := range i.ignores {
			if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
				return true
			}
		}
		return false
	}
	return false
}
