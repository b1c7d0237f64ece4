package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/geomlayers/internal/ctxlog"
	"github.com/vk/geomlayers/internal/model"
	"github.com/vk/geomlayers/internal/registry"
)

// Loader parses manifest files from the given paths into the declared
// reference graph. The HCL loader is the only production implementation;
// tests substitute their own.
type Loader interface {
	Load(ctx context.Context, paths ...string) (*model.Graph, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	graph    *model.Graph
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger, the layer
// registry, and the loaded manifest graph.
func NewApp(outW io.Writer, appConfig *Config, loader Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// The layer table is part of the program source; building the registry
	// cannot fail on user input.
	reg := registry.New()
	logger.Debug("Layer registry built.", "layers", len(reg.AllLayers()))

	var graph *model.Graph
	if appConfig.ManifestPath != "" {
		var err error
		graph, err = loader.Load(ctx, appConfig.ManifestPath)
		if err != nil {
			// A failure to load manifests is a fatal startup error.
			panic(fmt.Errorf("failed to load manifests: %w", err))
		}
		logger.Debug("Manifests loaded into reference graph.", "entities", len(graph.Entities))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		graph:    graph,
	}
}
