// Package parameter converts profile resources into validated runtime
// parameters for impact calculations.
package parameter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/sentence"
)

var (
	// ErrNumericParse is returned when a numeric resource field is not a
	// decimal number.
	ErrNumericParse = errors.New("parse number")

	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = sentence.ErrMissingField

	// ErrOutOfRange is returned when a value lies outside the parameter's
	// [Minimum, Maximum] bounds.
	ErrOutOfRange = errors.New("value out of range")
)

// Unit names a parameter's unit in singular, plural and abbreviated form.
type Unit struct {
	Name         string `json:"name"`
	Plural       string `json:"plural"`
	Abbreviation string `json:"abbreviation"`
}

// Parameter is a bounded numeric value derived from a [profiles.Resource].
type Parameter struct {
	Unit        Unit    `json:"unit"`
	Name        string  `json:"name"`
	HelpText    string  `json:"helpText"`
	Frequency   string  `json:"frequency"`
	Description string  `json:"description"`
	Minimum     float64 `json:"minimum"`
	Maximum     float64 `json:"maximum"`
	Value       float64 `json:"value"`
}

// New creates a [Parameter] from a single resource. The value is
// initialized to the resource default and is not checked against the
// bounds; see [Parameter.Validate].
func New(r *profiles.Resource) (*Parameter, error) {
	desc, err := sentence.Format(r.ReadableSentence, r.Fields())
	if err != nil {
		return nil, fmt.Errorf("format sentence for %q: %w", r.Name, err)
	}

	minimum, err := parseField(profiles.FieldMinimum, r.Minimum)
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", r.Name, err)
	}

	maximum, err := parseField(profiles.FieldMaximum, r.Maximum)
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", r.Name, err)
	}

	value, err := parseField(profiles.FieldDefault, r.Default)
	if err != nil {
		return nil, fmt.Errorf("resource %q: %w", r.Name, err)
	}

	return &Parameter{
		Name:        r.Name,
		HelpText:    r.Description,
		Frequency:   r.Frequency,
		Description: desc,
		Minimum:     minimum,
		Maximum:     maximum,
		Value:       value,
		Unit: Unit{
			Name:         r.Unit,
			Plural:       r.Units,
			Abbreviation: r.UnitAbbreviation,
		},
	}, nil
}

// Build converts resources into parameters, one per resource, in order.
// Duplicate names are passed through unchanged.
func Build(resources []*profiles.Resource) ([]*Parameter, error) {
	params := make([]*Parameter, 0, len(resources))

	for i, r := range resources {
		if r == nil {
			return nil, fmt.Errorf("resource %d: %w: resource is null", i, ErrMissingField)
		}

		p, err := New(r)
		if err != nil {
			return nil, err
		}

		params = append(params, p)
	}

	return params, nil
}

// Provenance returns the provenance citation of a profile.
func Provenance(p *profiles.Profile) (string, error) {
	if p == nil || p.Provenance == nil {
		return "", fmt.Errorf("%w: %q", ErrMissingField, "provenance")
	}

	return *p.Provenance, nil
}

// SetValue sets the value if it lies within the parameter's bounds.
func (p *Parameter) SetValue(v float64) error {
	err := p.check(v)
	if err != nil {
		return err
	}

	p.Value = v

	return nil
}

// Validate checks that the current value lies within the parameter's bounds.
func (p *Parameter) Validate() error {
	return p.check(p.Value)
}

// String renders the value followed by the unit abbreviation.
func (p *Parameter) String() string {
	v := strconv.FormatFloat(p.Value, 'f', -1, 64)
	if p.Unit.Abbreviation == "" {
		return v
	}

	return v + " " + p.Unit.Abbreviation
}

func (p *Parameter) check(v float64) error {
	if v < p.Minimum || v > p.Maximum {
		return fmt.Errorf("%s: %w: %g not in [%g, %g]", p.Name, ErrOutOfRange, v, p.Minimum, p.Maximum)
	}

	return nil
}

func parseField(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrNumericParse, field, raw)
	}

	return v, nil
}
