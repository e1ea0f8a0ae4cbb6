package config

import "context"

// Loader is the interface for a format-specific graph loader.
type Loader interface {
	// Load reads every graph file found under paths and translates them into
	// a single format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
