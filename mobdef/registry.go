package mobdef

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"voidwake/mobs/behavior"
	"voidwake/mobs/logging"
	"voidwake/mobs/logging/assetlog"
	"voidwake/mobs/tomlval"
)

const (
	mobExt   = ".mob"
	patchExt = ".mobpatch"
)

// EntityName derives the registry key from a definition path:
// "mobs/raider/grunt.mob" and "raider/grunt.mobpatch" both resolve to
// "raider/grunt".
func EntityName(path string) string {
	name := filepath.ToSlash(path)
	name = strings.TrimSuffix(name, mobExt)
	name = strings.TrimSuffix(name, patchExt)
	return strings.TrimPrefix(name, "mobs/")
}

// Config wires the three layers: Base holds the embedded defaults,
// ExtendedDir optionally points at a directory of .mob replacements
// and .mobpatch field-level diffs.
type Config struct {
	Base        fs.FS
	ExtendedDir string
	Log         logging.Publisher
}

type entry struct {
	doc tomlval.Value
	def MobDefinition
}

func (e *entry) clone() *entry {
	if e == nil {
		return nil
	}
	return &entry{doc: e.doc.Clone(), def: e.def.clone()}
}

// Registry resolves layered definitions and hands out immutable
// snapshots. Reload swaps the whole table atomically; readers always
// see a consistent load.
type Registry struct {
	mu      sync.RWMutex
	cfg     Config
	entries map[string]*entry
}

func NewRegistry(cfg Config) *Registry {
	if cfg.Base == nil {
		cfg.Base = DefaultBase()
	}
	if cfg.Log == nil {
		cfg.Log = logging.NopPublisher()
	}
	return &Registry{cfg: cfg, entries: make(map[string]*entry)}
}

// Reload runs the full pipeline: base documents, extended whole-entity
// replacements, then patch merges, then typed decoding. An entity that
// fails any step is logged and skipped; the rest of the load proceeds.
// The extended layer is optional, so a dir that cannot be read is
// logged and treated as absent rather than failing the load.
func (r *Registry) Reload(ctx context.Context) error {
	assetlog.LoadStarted(ctx, r.cfg.Log, assetlog.LoadStartedPayload{ExtendedDir: r.cfg.ExtendedDir})

	skipped := 0
	docs := make(map[string]tomlval.Value)

	if err := r.collectLayer(ctx, r.cfg.Base, mobExt, func(name string, doc tomlval.Value) {
		docs[name] = doc
	}, &skipped); err != nil {
		return fmt.Errorf("mobdef: base layer: %w", err)
	}

	if r.cfg.ExtendedDir != "" {
		extended, err := r.extendedFS()
		if err != nil {
			assetlog.LayerFailed(ctx, r.cfg.Log, assetlog.LayerFailedPayload{Layer: "extended", Reason: err.Error()})
		} else if extended != nil {
			// Extended .mob files replace the whole entity, no merge.
			if err := r.collectLayer(ctx, extended, mobExt, func(name string, doc tomlval.Value) {
				docs[name] = doc
			}, &skipped); err != nil {
				assetlog.LayerFailed(ctx, r.cfg.Log, assetlog.LayerFailedPayload{Layer: "extended", Reason: err.Error()})
			}
			if err := r.collectLayer(ctx, extended, patchExt, func(name string, patch tomlval.Value) {
				base, ok := docs[name]
				if !ok {
					assetlog.PatchOrphaned(ctx, r.cfg.Log, name, assetlog.PatchOrphanedPayload{Path: name + patchExt})
					return
				}
				docs[name] = tomlval.Merge(base, patch)
			}, &skipped); err != nil {
				assetlog.LayerFailed(ctx, r.cfg.Log, assetlog.LayerFailedPayload{Layer: "patch", Reason: err.Error()})
			}
		}
	}

	entries := make(map[string]*entry, len(docs))
	for name, doc := range docs {
		def, err := DecodeDefinition(name, doc)
		if err != nil {
			skipped++
			assetlog.EntitySkipped(ctx, r.cfg.Log, name, assetlog.EntitySkippedPayload{Reason: err.Error()})
			continue
		}
		entries[name] = &entry{doc: doc, def: def}
	}

	r.mu.Lock()
	r.entries = entries
	r.mu.Unlock()

	assetlog.LoadCompleted(ctx, r.cfg.Log, assetlog.LoadCompletedPayload{Loaded: len(entries), Skipped: skipped})
	return nil
}

func (r *Registry) extendedFS() (fs.FS, error) {
	info, err := os.Stat(r.cfg.ExtendedDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mobdef: extended dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mobdef: extended dir %s is not a directory", r.cfg.ExtendedDir)
	}
	return os.DirFS(r.cfg.ExtendedDir), nil
}

func (r *Registry) collectLayer(ctx context.Context, layer fs.FS, ext string, accept func(string, tomlval.Value), skipped *int) error {
	return fs.WalkDir(layer, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ext) {
			return nil
		}
		data, err := fs.ReadFile(layer, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		name := EntityName(path)
		doc, err := tomlval.Parse(data)
		if err != nil {
			*skipped++
			assetlog.EntitySkipped(ctx, r.cfg.Log, name, assetlog.EntitySkippedPayload{Reason: err.Error()})
			return nil
		}
		accept(name, doc)
		return nil
	})
}

// Names lists the loaded entities in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns a copy of the typed definition for name.
func (r *Registry) Definition(name string) (MobDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return MobDefinition{}, false
	}
	return e.def.clone(), true
}

// Document returns a copy of the merged generic document for name,
// the form the editor works on.
func (r *Registry) Document(name string) (tomlval.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return tomlval.Value{}, false
	}
	return e.doc.Clone(), true
}

// BehaviorTree compiles the entity's declarative behavior. Entities
// without a behavior value return a nil tree and no error.
func (r *Registry) BehaviorTree(name string) (*behavior.Tree, []behavior.Diagnostic, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("mobdef: unknown entity %q", name)
	}
	if e.def.Behavior == nil {
		return nil, nil, nil
	}
	return behavior.Compile(e.def.Behavior.Clone())
}

// SaveDocument writes a document into the extended layer as canonical
// TOML. The new content is visible after the next Reload.
func (r *Registry) SaveDocument(name string, doc tomlval.Value) error {
	if r.cfg.ExtendedDir == "" {
		return fmt.Errorf("mobdef: no extended dir configured, cannot save %q", name)
	}
	data, err := tomlval.Encode(doc)
	if err != nil {
		return fmt.Errorf("mobdef: save %q: %w", name, err)
	}
	target := filepath.Join(r.cfg.ExtendedDir, "mobs", filepath.FromSlash(name)+mobExt)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("mobdef: save %q: %w", name, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("mobdef: save %q: %w", name, err)
	}
	return nil
}
