// Package config provides a generic loader for needs documents.
//
// A [Loader] decodes YAML or JSON data, validates it against a JSON schema
// and returns a typed object with defaults applied. It backs both profile
// files and the settings file.
package config
