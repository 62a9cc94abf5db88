// Package settings provides the Settings document, a persistent key/value
// store shared by needs and the tools that consume minimum needs.
package settings

import (
	"fmt"
	"path/filepath"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/needs/api"
	"github.com/macropower/needs/api/v1beta1"
	"github.com/macropower/needs/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -kind settings -o settings.v1beta1.json

// FileName is the name of the settings file below the config directory.
const FileName = "settings.yaml"

var (
	//go:embed settings.yaml
	defaultSettingsYAML []byte

	//go:embed settings.v1beta1.json
	settingsSchemaJSON []byte

	// ValidKinds contains the valid kind values for settings documents.
	ValidKinds = []string{"Settings"}

	// DefaultValidator validates settings documents against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/settings.v1beta1.json", settingsSchemaJSON)

	// Compile-time interface checks.
	_ v1beta1.TypedObject = (*Settings)(nil)
)

// Settings represents the settings file.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Settings struct {
	// Values holds the stored settings, keyed by setting name.
	// Keys are free-form, e.g. "MinimumNeeds" or "locale/userLocale".
	Values           map[string]any `json:"values,omitempty" jsonschema:"title=Values"`
	v1beta1.TypeMeta `json:",inline"`
}

// New creates a new [Settings] with default values.
func New() *Settings {
	s := &Settings{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       "Settings",
		},
	}
	s.EnsureDefaults()

	return s
}

// EnsureDefaults initializes nil fields to their default values.
func (s *Settings) EnsureDefaults() {
	if s.Values == nil {
		s.Values = map[string]any{}
	}
}

func (s Settings) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// WriteDefault writes the embedded default settings.yaml to the specified path.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultSettingsYAML, force, "settings")
	if err != nil {
		return fmt.Errorf("write default settings: %w", err)
	}

	return nil
}

// GetPath returns the path to the settings file in dir.
// An empty dir resolves to [api.GetConfigDir].
func GetPath(dir string) string {
	if dir == "" {
		dir = api.GetConfigDir()
	}

	return filepath.Join(dir, FileName)
}
