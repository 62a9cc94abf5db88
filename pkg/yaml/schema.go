package yaml

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// SchemaGenerator reflects a JSON schema from a Go value.
// Uses [github.com/invopop/jsonschema].
type SchemaGenerator struct {
	reflector *jsonschema.Reflector
	value     any
	module    string
	packages  []string
}

// NewSchemaGenerator creates a [SchemaGenerator] for v. Doc comments are
// read from the given packages, which must live in module.
func NewSchemaGenerator(v any, module string, packages ...string) *SchemaGenerator {
	return &SchemaGenerator{
		reflector: &jsonschema.Reflector{
			ExpandedStruct: true,
		},
		value:    v,
		module:   module,
		packages: packages,
	}
}

// Generate returns the indented JSON schema.
func (g *SchemaGenerator) Generate() ([]byte, error) {
	for _, pkg := range g.packages {
		rel := "./" + strings.TrimPrefix(strings.TrimPrefix(pkg, g.module), "/")

		err := g.reflector.AddGoComments(g.module, rel)
		if err != nil {
			return nil, fmt.Errorf("add go comments from %s: %w", pkg, err)
		}
	}

	jss := g.reflector.Reflect(g.value)

	data, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return append(data, '\n'), nil
}
