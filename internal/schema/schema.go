// Package schema defines the HCL block structures for entity manifest files.
// These structs mirror the manifest syntax exactly; translation into the
// format-agnostic model lives in the hcl package.
package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Entity represents an `entity` block from a manifest file. Attributes are
// kept as raw expressions and evaluated during translation, so the loader can
// report precise diagnostics with source ranges.
type Entity struct {
	Name       string         `hcl:"name,label"`
	Layer      hcl.Expression `hcl:"layer,optional"`
	References hcl.Expression `hcl:"references,optional"`
	Deferred   hcl.Expression `hcl:"deferred,optional"`
}

// FileRoot represents the top-level structure of a manifest file, containing
// any number of entity blocks.
type FileRoot struct {
	Entities []*Entity `hcl:"entity,block"`
	Body     hcl.Body  `hcl:",remain"`
}
