package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/geomlayers/internal/ctxlog"
	"github.com/vk/geomlayers/internal/graph"
	"github.com/vk/geomlayers/internal/validate"
)

// ValidationFailedError is returned by Run when the manifest graph breaks the
// layering contract. The full report has already been written to the output
// writer by then; this error only carries the failure into the exit code.
type ValidationFailedError struct {
	Count int
}

// Error implements the error interface for ValidationFailedError.
func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("validation failed with %d violation(s)", e.Count)
}

// Run executes the main application logic: either print the canonical layer
// table, or validate the loaded reference graph and report every violation.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if appConfig.ShowLayers {
		a.printLayers()
		return nil
	}

	if a.graph == nil || len(a.graph.Entities) == 0 {
		a.logger.Warn("No entity declarations found, nothing to validate.", "path", appConfig.ManifestPath)
		return nil
	}

	if appConfig.DepsOf != "" {
		return a.printDeps(ctx, appConfig.DepsOf)
	}

	report := validate.Validate(ctx, a.graph, a.registry)
	if report.Empty() {
		a.logger.Info("Layering check passed.", "entities", len(a.graph.Entities))
		return nil
	}

	// One line per violation, to the report writer rather than the log, so a
	// CI pipeline can capture the list verbatim.
	fmt.Fprintln(a.outW, report.String())
	return &ValidationFailedError{Count: len(report.Violations)}
}

// printLayers writes the canonical layer table, ascending by layer number.
func (a *App) printLayers() {
	for _, layer := range a.registry.AllLayers() {
		fmt.Fprintf(a.outW, "%2d  %s\n", layer.Number, strings.Join(layer.Types, ", "))
	}
}

// printDeps writes the eager reference surface of one entity type from the
// loaded graph, or of every entity when name is "all".
func (a *App) printDeps(ctx context.Context, name string) error {
	g := graph.Build(ctx, a.graph)

	names := []string{name}
	if name == "all" {
		names = g.Nodes()
	}

	for _, entity := range names {
		refs, err := g.References(entity)
		if err != nil {
			return fmt.Errorf("entity type '%s' is not declared in the loaded manifests", entity)
		}
		backRefs, err := g.ReferencedBy(entity)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "%s\n  references:    %s\n  referenced by: %s\n",
			entity, formatNames(refs), formatNames(backRefs))
	}
	return nil
}

// formatNames renders a name list for the diagnostic output.
func formatNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}
