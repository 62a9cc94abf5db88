// Package v1beta1 contains the v1beta1 API types for needs documents.
package v1beta1

import "github.com/invopop/jsonschema"

// APIVersion is the current API version for all typed needs documents.
const APIVersion = "needs.macropower.dev/v1beta1"

// ValidAPIVersions contains all valid API versions.
var ValidAPIVersions = []string{APIVersion}

// Object is the interface that every document loaded by
// [github.com/macropower/needs/pkg/config.Loader] implements.
type Object interface {
	EnsureDefaults()
}

// TypedObject is an [Object] that carries [TypeMeta].
// Profile files predate TypeMeta and are plain [Object]s.
type TypedObject interface {
	Object
	GetAPIVersion() string
	GetKind() string
}

// TypeMeta contains the API version and kind metadata common to typed documents.
type TypeMeta struct {
	// APIVersion specifies the API version for this document.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of document.
	Kind string `json:"kind" jsonschema:"title=Kind"`
}

// GetAPIVersion returns the API version.
func (tm TypeMeta) GetAPIVersion() string {
	return tm.APIVersion
}

// GetKind returns the kind.
func (tm TypeMeta) GetKind() string {
	return tm.Kind
}

// ExtendSchemaWithEnums restricts the apiVersion and kind properties of jss
// to the given values. It panics if jss lacks either property.
func ExtendSchemaWithEnums(jss *jsonschema.Schema, apiVersions, kinds []string) {
	addConsts(jss, "apiVersion", "API Version", apiVersions)
	addConsts(jss, "kind", "Kind", kinds)
}

func addConsts(jss *jsonschema.Schema, property, title string, values []string) {
	prop, ok := jss.Properties.Get(property)
	if !ok {
		panic(property + " property not found in schema")
	}

	for _, v := range values {
		prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: v,
			Title: title,
		})
	}
}
