// Package profiles provides the minimum needs Profile document.
//
// A profile file is a JSON object holding a provenance citation and an
// ordered list of resources. Profile files carry no TypeMeta; their shape is
// fixed by the files shipped in [Bundled] and is validated against
// profiles.v1beta1.json.
package profiles

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/macropower/needs/api/v1beta1"
	"github.com/macropower/needs/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -kind profiles -o profiles.v1beta1.json

// Ext is the file extension of profile files.
const Ext = ".json"

var (
	//go:embed profiles.v1beta1.json
	schemaJSON []byte

	//go:embed minimum_needs/*.json
	bundledFS embed.FS

	// Bundled holds the profile files shipped with needs, at the root of the FS.
	Bundled = mustSub(bundledFS, "minimum_needs")

	// DefaultValidator validates profile documents against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/profiles.v1beta1.json", schemaJSON)

	// Compile-time interface checks.
	_ v1beta1.Object = (*Profile)(nil)
)

// Resource is one minimum needs commodity: its bounds, unit, default and a
// sentence template describing it.
type Resource struct {
	// Name is the resource name, e.g. "Rice".
	Name string `json:"Resource name" jsonschema:"title=Resource Name"`
	// Description is the help text shown next to the resource.
	Description string `json:"Resource description" jsonschema:"title=Resource Description"`
	// Frequency describes how often the resource is provided, e.g. "weekly".
	Frequency string `json:"Frequency" jsonschema:"title=Frequency"`
	// ReadableSentence is a template with {{ Field name }} placeholders.
	ReadableSentence string `json:"Readable sentence" jsonschema:"title=Readable Sentence"`
	// Minimum is the smallest allowed value, as a decimal string.
	Minimum string `json:"Minimum allowed" jsonschema:"title=Minimum Allowed"`
	// Maximum is the largest allowed value, as a decimal string.
	Maximum string `json:"Maximum allowed" jsonschema:"title=Maximum Allowed"`
	// Unit is the singular unit name.
	Unit string `json:"Unit" jsonschema:"title=Unit"`
	// Units is the plural unit name.
	Units string `json:"Units" jsonschema:"title=Units"`
	// UnitAbbreviation is the short unit name, e.g. "kg".
	UnitAbbreviation string `json:"Unit abbreviation" jsonschema:"title=Unit Abbreviation"`
	// Default is the default value per person, as a decimal string.
	Default string `json:"Default" jsonschema:"title=Default"`
}

// Field names, as they appear in profile files and sentence templates.
const (
	FieldName             = "Resource name"
	FieldDescription      = "Resource description"
	FieldFrequency        = "Frequency"
	FieldReadableSentence = "Readable sentence"
	FieldMinimum          = "Minimum allowed"
	FieldMaximum          = "Maximum allowed"
	FieldUnit             = "Unit"
	FieldUnits            = "Units"
	FieldUnitAbbreviation = "Unit abbreviation"
	FieldDefault          = "Default"
)

// Fields returns the resource as a record keyed by field name.
func (r *Resource) Fields() map[string]string {
	return map[string]string{
		FieldName:             r.Name,
		FieldDescription:      r.Description,
		FieldFrequency:        r.Frequency,
		FieldReadableSentence: r.ReadableSentence,
		FieldMinimum:          r.Minimum,
		FieldMaximum:          r.Maximum,
		FieldUnit:             r.Unit,
		FieldUnits:            r.Units,
		FieldUnitAbbreviation: r.UnitAbbreviation,
		FieldDefault:          r.Default,
	}
}

// Profile is a named set of resources plus a provenance citation.
// The name is not stored; it is the file name without [Ext].
type Profile struct {
	// Provenance cites where the figures come from. Nil when absent.
	Provenance *string `json:"provenance,omitempty" jsonschema:"title=Provenance"`
	// Resources lists the resources in display order.
	Resources []*Resource `json:"resources" jsonschema:"title=Resources"`
}

// New creates an empty [Profile].
func New() *Profile {
	p := &Profile{}
	p.EnsureDefaults()

	return p
}

// EnsureDefaults initializes nil fields to their default values.
func (p *Profile) EnsureDefaults() {
	if p.Resources == nil {
		p.Resources = []*Resource{}
	}
}

// IsEmpty reports whether the profile has no resources. An empty profile is
// treated as unset and is never persisted to settings.
func (p *Profile) IsEmpty() bool {
	return p == nil || len(p.Resources) == 0
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}

	c := &Profile{Resources: make([]*Resource, 0, len(p.Resources))}
	if p.Provenance != nil {
		prov := *p.Provenance
		c.Provenance = &prov
	}

	for _, r := range p.Resources {
		rc := *r
		c.Resources = append(c.Resources, &rc)
	}

	return c
}

// Encode serializes the profile in the on-disk JSON format.
func (p *Profile) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}

	return append(data, '\n'), nil
}

// Builtin returns the hardcoded profile used when nothing else can be loaded.
func Builtin() *Profile {
	provenance := "The minimum needs are based on BNPB Perka 7/2008."
	sentence := "Each person should be provided with {{ Default }}{{ Unit abbreviation }} of" +
		"{{ Resource name }}{{ Frequency }}."

	return &Profile{
		Provenance: &provenance,
		Resources: []*Resource{
			{
				Name:             "Rice",
				Description:      "Basic food",
				Frequency:        "weekly",
				ReadableSentence: sentence,
				Minimum:          "0",
				Maximum:          "100",
				Unit:             "kilogram",
				Units:            "kilograms",
				UnitAbbreviation: "kg",
				Default:          "2.8",
			},
			{
				Name:             "Drinking Water",
				Description:      "For drinking",
				Frequency:        "weekly",
				ReadableSentence: sentence,
				Minimum:          "0",
				Maximum:          "100",
				Unit:             "litre",
				Units:            "litres",
				UnitAbbreviation: "l",
				Default:          "17.5",
			},
			{
				Name:             "Clean Water",
				Description:      "For washing",
				Frequency:        "weekly",
				ReadableSentence: sentence,
				Minimum:          "0",
				Maximum:          "1000",
				Unit:             "litre",
				Units:            "litres",
				UnitAbbreviation: "l",
				Default:          "67",
			},
			{
				Name:             "Family Kits",
				Description:      "Hygiene kits",
				Frequency:        "weekly",
				ReadableSentence: sentence,
				Minimum:          "0",
				Maximum:          "1",
				Unit:             "kit",
				Units:            "kits",
				UnitAbbreviation: "kits",
				Default:          "0.2",
			},
			{
				Name:             "Toilets",
				Description:      "Shared between families",
				Frequency:        "once",
				ReadableSentence: sentence,
				Minimum:          "0",
				Maximum:          "1",
				Unit:             "toilet",
				Units:            "toilets",
				UnitAbbreviation: "toilets",
				Default:          "0.05",
			},
		},
	}
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}

	return sub
}
