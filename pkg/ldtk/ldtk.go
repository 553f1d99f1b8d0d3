// Package ldtk provides a high-level API for loading LDtk project files
// into compiled schemas and render-ready worlds.
//
// This package ties the pipeline phases together so applications do not
// have to wire ldtkjson, ldtkschema and ldtkworld by hand.
//
// Basic usage:
//
//	world, err := ldtk.Load("assets/dungeon.ldtk")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	level, ok := world.Level("Overworld")
package ldtk

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkworld"
)

// Loader wraps the binding pipeline with caching and configuration.
type Loader struct {
	cache      map[string]*cacheEntry
	cacheMutex sync.RWMutex
	logger     *slog.Logger
	options    options
}

// cacheEntry holds one fully loaded project, keyed by file path.
type cacheEntry struct {
	schema   *ldtkschema.Schema
	world    *ldtkworld.World
	loadedAt time.Time
}

// options holds configuration for the loader.
type options struct {
	logger        *slog.Logger
	enableCaching bool
	cacheTTL      time.Duration
}

// Option is a function that configures loader options.
type Option func(*options)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCaching enables project caching with the given expiry. A zero or
// negative ttl keeps entries alive until ClearCache.
func WithCaching(ttl time.Duration) Option {
	return func(o *options) {
		o.enableCaching = true
		o.cacheTTL = ttl
	}
}

// WithoutCaching disables project caching, so every Load re-reads the
// file from disk.
func WithoutCaching() Option {
	return func(o *options) {
		o.enableCaching = false
	}
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		logger:        slog.Default(),
		enableCaching: true,
		cacheTTL:      5 * time.Minute,
	}
}

// Global loader instance for the convenience functions.
var globalLoader *Loader
var globalLoaderOnce sync.Once

// getGlobalLoader returns a singleton loader instance.
func getGlobalLoader() *Loader {
	globalLoaderOnce.Do(func() {
		globalLoader = New()
	})
	return globalLoader
}

// New creates a loader with the given options.
func New(opts ...Option) *Loader {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	return &Loader{
		cache:   make(map[string]*cacheEntry),
		logger:  options.logger,
		options: options,
	}
}

// Load reads, compiles and loads the project file at path.
func Load(path string, opts ...Option) (*ldtkworld.World, error) {
	return getGlobalLoader().Load(context.Background(), path, opts...)
}

// LoadContext is Load with a context for cancellation.
func LoadContext(ctx context.Context, path string, opts ...Option) (*ldtkworld.World, error) {
	return getGlobalLoader().Load(ctx, path, opts...)
}

// LoadBytes loads a project document already held in memory. Results are
// never cached because there is no path to key them by.
func LoadBytes(ctx context.Context, data []byte, opts ...Option) (*ldtkworld.World, error) {
	return getGlobalLoader().LoadBytes(ctx, data, opts...)
}

// CompileFile runs only the schema phase of the pipeline on path.
func CompileFile(path string) (*ldtkschema.Schema, error) {
	return getGlobalLoader().CompileFile(path)
}

// Validate runs the full pipeline on path and reports the first error.
func Validate(path string) error {
	return getGlobalLoader().Validate(path)
}

// ClearCache drops every cached project from the global loader.
func ClearCache() {
	getGlobalLoader().ClearCache()
}

// Load reads, compiles and loads the project file at path. When caching
// is enabled, repeated calls return the same world; the graph is
// immutable, so sharing it between goroutines is safe.
func (l *Loader) Load(ctx context.Context, path string, opts ...Option) (*ldtkworld.World, error) {
	// Apply any additional options
	options := l.options
	for _, opt := range opts {
		opt(&options)
	}

	if options.enableCaching {
		if entry, ok := l.cachedEntry(path, options.cacheTTL); ok {
			return entry.world, nil
		}
	}

	return l.loadFile(ctx, path, options)
}

// LoadBytes loads a project document already held in memory.
func (l *Loader) LoadBytes(ctx context.Context, data []byte, opts ...Option) (*ldtkworld.World, error) {
	// Apply any additional options
	options := l.options
	for _, opt := range opts {
		opt(&options)
	}

	entry, err := l.loadEntry(ctx, data, options.logger)
	if err != nil {
		return nil, err
	}
	return entry.world, nil
}

// CompileFile runs only the schema phase of the pipeline on path. The
// cache is not consulted; generation tooling wants the file as it is on
// disk right now.
func (l *Loader) CompileFile(path string) (*ldtkschema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}
	project, err := ldtkjson.Parse(data)
	if err != nil {
		return nil, err
	}
	return ldtkschema.NewCompiler(l.logger).Compile(&project.Defs)
}

// Validate runs the full pipeline on path without keeping the result.
func (l *Loader) Validate(path string) error {
	_, err := l.Load(context.Background(), path)
	return err
}

// ClearCache drops every cached project.
func (l *Loader) ClearCache() {
	l.cacheMutex.Lock()
	defer l.cacheMutex.Unlock()
	l.cache = make(map[string]*cacheEntry)
}

// cachedEntry returns the cached entry for path if it is still fresh.
func (l *Loader) cachedEntry(path string, ttl time.Duration) (*cacheEntry, bool) {
	l.cacheMutex.RLock()
	entry, ok := l.cache[path]
	l.cacheMutex.RUnlock()
	if !ok {
		return nil, false
	}
	if ttl > 0 && time.Since(entry.loadedAt) > ttl {
		return nil, false
	}
	return entry, true
}

// loadFile reads path from disk, runs the pipeline and stores the result
// in the cache when caching is enabled.
func (l *Loader) loadFile(ctx context.Context, path string, options options) (*ldtkworld.World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file: %w", err)
	}

	entry, err := l.loadEntry(ctx, data, options.logger)
	if err != nil {
		return nil, err
	}

	if options.enableCaching {
		l.cacheMutex.Lock()
		l.cache[path] = entry
		l.cacheMutex.Unlock()
	}

	return entry.world, nil
}

// loadEntry runs the two pure phases over a raw project document.
func (l *Loader) loadEntry(ctx context.Context, data []byte, logger *slog.Logger) (*cacheEntry, error) {
	project, err := ldtkjson.Parse(data)
	if err != nil {
		return nil, err
	}

	schema, err := ldtkschema.NewCompiler(logger).Compile(&project.Defs)
	if err != nil {
		return nil, err
	}

	worldLoader, err := ldtkworld.NewLoader(schema, logger)
	if err != nil {
		return nil, err
	}
	world, err := worldLoader.Load(ctx, project)
	if err != nil {
		return nil, err
	}

	return &cacheEntry{
		schema:   schema,
		world:    world,
		loadedAt: time.Now(),
	}, nil
}
