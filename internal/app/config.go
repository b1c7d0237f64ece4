package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath points at a single .hcl manifest file or a directory of
	// them, supplied by the surrounding geometric library.
	ManifestPath string

	LogFormat string
	LogLevel  string

	// ShowLayers switches the run into the diagnostic mode that prints the
	// canonical layer table instead of validating manifests.
	ShowLayers bool

	// DepsOf names an entity type whose eager reference surface should be
	// printed instead of validating. The special value "all" lists every
	// entity in the loaded graph.
	DepsOf string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" && !cfg.ShowLayers {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
