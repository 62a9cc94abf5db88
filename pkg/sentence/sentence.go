// Package sentence fills "{{ key }}" placeholders in readable sentence
// templates.
//
// The format is deliberately small: there is no escaping and no nesting,
// and each substituted value is preceded by a single space. Text before the
// first placeholder is right-trimmed, so "Hello {{name}}." and
// "Hello{{name}}." both render as "Hello Bob.".
package sentence

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

var (
	// ErrMissingField is returned when a placeholder names a key that is
	// not present in the record.
	ErrMissingField = errors.New("missing field")

	// ErrMalformedTemplate is returned when a placeholder is not closed
	// exactly once.
	ErrMalformedTemplate = errors.New("malformed template")
)

// Format renders template against record.
func Format(template string, record map[string]string) (string, error) {
	parts := strings.Split(template, openDelim)

	var sb strings.Builder

	sb.WriteString(strings.TrimRightFunc(parts[0], unicode.IsSpace))

	for i, part := range parts[1:] {
		if strings.Count(part, closeDelim) != 1 {
			return "", fmt.Errorf("%w: placeholder %d in %q", ErrMalformedTemplate, i+1, template)
		}

		key, rest, _ := strings.Cut(part, closeDelim)
		key = strings.TrimSpace(key)

		value, ok := record[key]
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrMissingField, key)
		}

		sb.WriteString(" ")
		sb.WriteString(value)
		sb.WriteString(rest)
	}

	return sb.String(), nil
}
