// Command schemagen writes the JSON schema for one of the needs document kinds.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/api/v1beta1/settings"
	"github.com/macropower/needs/pkg/yaml"
)

const module = "github.com/macropower/needs"

var (
	kind    = flag.String("kind", "profiles", "Document kind to generate a schema for (profiles, settings)")
	outFile = flag.String("o", "schema.json", "Output file for the generated schema")
)

func main() {
	flag.Parse()

	var gen *yaml.SchemaGenerator

	switch *kind {
	case "profiles":
		gen = yaml.NewSchemaGenerator(profiles.New(), module, module+"/api/v1beta1/profiles")
	case "settings":
		gen = yaml.NewSchemaGenerator(settings.New(), module,
			module+"/api/v1beta1/settings",
			module+"/api/v1beta1",
		)
	default:
		log.Fatalf("unknown kind %q", *kind)
	}

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
