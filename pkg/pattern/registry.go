package pattern

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/fsnotify.v1"
	"gopkg.in/yaml.v3"
)

// DefaultProfileID names the built-in profile for the Constitution of
// Kenya, 2010.
const DefaultProfileID = "kenya-2010"

//go:embed profiles/*.yaml
var builtinProfiles embed.FS

// Registry holds layout profiles keyed by profile ID. It is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
	files    map[string]string // file path -> profile ID
	dir      string
	watcher  *fsnotify.Watcher
	stopChan chan struct{}
	onChange func(event string, profile *Profile)
	logger   *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]*Profile),
		files:    make(map[string]string),
		logger:   slog.New(slog.DiscardHandler),
	}
}

// NewDefaultRegistry creates a registry holding the built-in profiles.
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	if err := r.LoadFS(builtinProfiles, "profiles"); err != nil {
		return nil, fmt.Errorf("loading built-in profiles: %w", err)
	}
	return r, nil
}

// SetLogger sets the logger used for watch errors and reloads.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r.logger = logger
}

// Register validates, compiles and adds a profile. A profile with the same
// ID and version as a registered one is rejected; other versions replace it.
func (r *Registry) Register(p *Profile) error {
	if p == nil {
		return fmt.Errorf("%w: profile cannot be nil", ErrInvalidProfile)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if !p.IsCompiled() {
		if err := p.Compile(); err != nil {
			return fmt.Errorf("compiling profile %q: %w", p.ProfileID, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.profiles[p.ProfileID]; ok && existing.Version == p.Version && existing.source == p.source {
		return fmt.Errorf("profile %q version %s already registered", p.ProfileID, p.Version)
	}
	r.profiles[p.ProfileID] = p
	if p.source != "" {
		r.files[p.source] = p.ProfileID
	}
	return nil
}

// Unregister removes a profile.
func (r *Registry) Unregister(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotFound, id)
	}
	delete(r.profiles, id)
	if p.source != "" {
		delete(r.files, p.source)
	}
	return nil
}

// Get returns a profile by ID.
func (r *Registry) Get(id string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	return p, ok
}

// List returns all profiles ordered by ID.
func (r *Registry) List() []*Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]*Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, p)
	}
	slices.SortFunc(profiles, func(a, b *Profile) int {
		return strings.Compare(a.ProfileID, b.ProfileID)
	})
	return profiles
}

// ListByJurisdiction returns the profiles for a jurisdiction code.
func (r *Registry) ListByJurisdiction(jurisdiction string) []*Profile {
	var out []*Profile
	for _, p := range r.List() {
		if strings.EqualFold(p.Jurisdiction, jurisdiction) {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the number of registered profiles.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.profiles)
}

// Resolve returns the profile named by ref: a registered ID, or else a
// path to a YAML profile file, which is loaded and registered.
func (r *Registry) Resolve(ref string) (*Profile, error) {
	if p, ok := r.Get(ref); ok {
		return p, nil
	}
	if !isProfileFile(ref) {
		return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, ref)
	}
	if err := r.LoadFile(ref); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.profiles[r.files[ref]], nil
}

// LoadDirectory loads all YAML profile files from dir. A missing directory
// loads nothing.
func (r *Registry) LoadDirectory(dir string) error {
	r.dir = dir

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !isProfileFile(entry.Name()) {
			continue
		}
		if err := r.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LoadFS loads all YAML profile files under dir in fsys.
func (r *Registry) LoadFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !isProfileFile(entry.Name()) {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.loadBytes(data, ""); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LoadFile loads a single profile file.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	return r.loadBytes(data, path)
}

func (r *Registry) loadBytes(data []byte, source string) error {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("%w: parsing YAML: %w", ErrInvalidProfile, err)
	}
	p.source = source
	if err := r.Register(&p); err != nil {
		return fmt.Errorf("registering profile: %w", err)
	}
	return nil
}

// Reload drops the profiles loaded from the configured directory and loads
// it again. Built-in profiles stay.
func (r *Registry) Reload() error {
	if r.dir == "" {
		return errors.New("no directory configured for reload")
	}

	r.mu.Lock()
	for path, id := range r.files {
		if filepath.Dir(path) == filepath.Clean(r.dir) {
			delete(r.profiles, id)
			delete(r.files, path)
		}
	}
	r.mu.Unlock()

	return r.LoadDirectory(r.dir)
}

// SetOnChange sets a callback run after a watched profile file changes.
// The profile is nil for removals.
func (r *Registry) SetOnChange(fn func(event string, profile *Profile)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

func (r *Registry) changeHandler() func(event string, profile *Profile) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.onChange
}

// forget unregisters the profile loaded from path, if any.
func (r *Registry) forget(path string) {
	r.mu.RLock()
	id, ok := r.files[path]
	r.mu.RUnlock()
	if !ok {
		return
	}
	if err := r.Unregister(id); err != nil {
		r.logger.Debug("profile already gone", slog.String("path", path), slog.Any("error", err))
	}
}

// Watch starts watching the configured directory for profile changes.
func (r *Registry) Watch() error {
	if r.dir == "" {
		return errors.New("no directory configured for watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching directory %s: %w", r.dir, err)
	}

	r.watcher = watcher
	r.stopChan = make(chan struct{})
	go r.watchLoop(watcher, r.stopChan)

	return nil
}

func (r *Registry) watchLoop(watcher *fsnotify.Watcher, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isProfileFile(event.Name) {
				continue
			}

			switch {
			case event.Op&fsnotify.Create == fsnotify.Create:
				r.handleFileChange(event.Name, "create")
			case event.Op&fsnotify.Write == fsnotify.Write:
				r.handleFileChange(event.Name, "modify")
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				r.handleFileRemove(event.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			r.logger.Warn("profile watcher error", slog.Any("error", err))
		}
	}
}

func (r *Registry) handleFileChange(path, event string) {
	r.forget(path)

	if err := r.LoadFile(path); err != nil {
		r.logger.Warn("reloading profile", slog.String("path", path), slog.Any("error", err))
		return
	}
	r.logger.Info("profile loaded", slog.String("path", path), slog.String("event", event))

	if fn := r.changeHandler(); fn != nil {
		r.mu.RLock()
		p := r.profiles[r.files[path]]
		r.mu.RUnlock()
		fn(event, p)
	}
}

func (r *Registry) handleFileRemove(path string) {
	r.forget(path)

	r.logger.Info("profile removed", slog.String("path", path))
	if fn := r.changeHandler(); fn != nil {
		fn("remove", nil)
	}
}

// StopWatch stops watching the profile directory.
func (r *Registry) StopWatch() {
	if r.stopChan != nil {
		close(r.stopChan)
		r.stopChan = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

func isProfileFile(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}
