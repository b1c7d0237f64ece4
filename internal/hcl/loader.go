package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"golang.org/x/sync/errgroup"

	"github.com/vk/geomlayers/internal/ctxlog"
	"github.com/vk/geomlayers/internal/fsutil"
	"github.com/vk/geomlayers/internal/model"
	"github.com/vk/geomlayers/internal/schema"
)

// Loader is the HCL-specific manifest loader.
type Loader struct{}

// NewLoader creates a new HCL manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the manifest loading process. It discovers .hcl files
// under the given paths, parses them concurrently, and merges every entity
// block into a single declared-reference graph. A duplicate entity name across
// files is an error.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		// A gate that silently passes on a typoed path would defeat its
		// purpose, so an explicitly supplied path must yield something.
		return nil, fmt.Errorf("no .hcl manifest files found under %s", strings.Join(paths, ", "))
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	// Parse files concurrently; each goroutine owns its parser because
	// hclparse.Parser is not safe for concurrent use. Translation results are
	// merged sequentially afterwards so duplicate detection stays
	// deterministic per file order.
	parsed := make([][]*model.EntityType, len(files))
	var g errgroup.Group

	for i, file := range files {
		g.Go(func() error {
			parser := hclparse.NewParser()
			hclFile, diags := parser.ParseHCLFile(file)
			if diags.HasErrors() {
				return fmt.Errorf("failed to parse manifest file %s: %w", file, diags)
			}

			var root schema.FileRoot
			diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
			if diags.HasErrors() {
				return fmt.Errorf("failed to decode manifest file %s: %w", file, diags)
			}

			entities := make([]*model.EntityType, 0, len(root.Entities))
			for _, ent := range root.Entities {
				translated, err := translateEntity(ent, file)
				if err != nil {
					return err
				}
				entities = append(entities, translated)
			}

			parsed[i] = entities
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := model.NewGraph()
	for _, entities := range parsed {
		for _, ent := range entities {
			if prev, exists := graph.Entities[ent.Name]; exists {
				return nil, fmt.Errorf("entity '%s' declared twice: %s and %s", ent.Name, prev.SourceFile, ent.SourceFile)
			}
			graph.Entities[ent.Name] = ent
		}
	}

	logger.Info("Manifests loaded successfully.", "files", len(files), "entities", len(graph.Entities))
	return graph, nil
}
