// Package ldtk provides a high-level API for loading LDtk project files
// into compiled schemas and render-ready worlds.
//
// # Overview
//
// This package simplifies the use of LDtk exports in Go applications by
// running the whole binding pipeline behind a single call. A project file
// is parsed into its raw document, the document's definitions are compiled
// into a schema, and the level instances are loaded against that schema.
// It supports:
//
//   - One-call loading of project files and in-memory documents
//   - Project caching for repeated loads
//   - Context support for cancellation and timeouts
//   - Hot reloading through a filesystem watcher
//   - Flexible configuration options
//
// # Quick Start
//
// The simplest way to load a project is using the global functions:
//
//	world, err := ldtk.Load("assets/dungeon.ldtk")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	level, ok := world.Level("Overworld")
//	if !ok {
//	    log.Fatal("no such level")
//	}
//	fmt.Printf("%s is %v pixels\n", level.Ident, level.SizePx)
//
// # Coordinate System
//
// Loaded worlds use a Y-up coordinate system: vertical pixel positions
// and offsets are negated against their extent, entity grid cells count
// from the bottom row, pivots are flipped, and cell rows are stored
// bottom row first. Rendering hosts with a Y-up convention can consume
// positions directly.
//
// # Hot Reloading
//
// A watcher re-runs the pipeline whenever the file changes on disk:
//
//	loader := ldtk.New()
//	watcher, err := loader.Watch("assets/dungeon.ldtk")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer watcher.Close()
//
//	for {
//	    select {
//	    case world := <-watcher.Worlds:
//	        game.SetWorld(world)
//	    case err := <-watcher.Errors:
//	        log.Printf("reload failed: %v", err)
//	    }
//	}
//
// # Custom Loader Instance
//
// For more control, create a loader with specific options:
//
//	loader := ldtk.New(
//	    ldtk.WithCaching(1*time.Hour),
//	    ldtk.WithLogger(logger),
//	)
//
//	world, err := loader.Load(ctx, "assets/dungeon.ldtk")
//
// # Configuration Options
//
// Configure loader behavior using options:
//
//   - WithLogger(*slog.Logger): Custom logging
//   - WithCaching(time.Duration): Enable project caching with an expiry
//   - WithoutCaching(): Re-read the file on every load
//
// # Error Handling
//
// All functions return descriptive errors for:
//
//   - Missing or unreadable project files
//   - Malformed JSON documents
//   - Definition errors, as *ldtkschema.SchemaError
//   - Instance errors, as *ldtkworld.DecodeError
//
// Both structured error types carry a kind and the raw input that was
// rejected, and work with errors.As.
//
// # Thread Safety
//
// The package is thread-safe:
//
//   - The global loader instance uses proper synchronization
//   - The project cache uses read-write mutexes
//   - Loaded worlds are immutable and safe to share between goroutines
//
package ldtk
