package profile

import (
	"fmt"
	"strings"

	"github.com/macropower/needs/api"
	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/config"
	"github.com/macropower/needs/pkg/settings"
)

// Status describes the outcome of reading the stored profile.
type Status int

const (
	// StatusDefaulted means nothing usable was stored: the value is absent,
	// nil, an empty string or map, or a profile without resources.
	StatusDefaulted Status = iota
	// StatusLoaded means a valid, non-empty profile was stored.
	StatusLoaded
	// StatusFailed means the stored value has an unexpected shape.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusDefaulted:
		return "defaulted"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	}

	return fmt.Sprintf("Status(%d)", int(s))
}

// ConfigShapeError reports a stored profile value of an unexpected shape.
type ConfigShapeError struct {
	Err  error
	Key  string
	Type string
}

func (e *ConfigShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("setting %q holds an invalid %s: %v", e.Key, e.Type, e.Err)
	}

	return fmt.Sprintf("setting %q holds an unexpected %s", e.Key, e.Type)
}

func (e *ConfigShapeError) Unwrap() error {
	return e.Err
}

// ReadStored interprets a value read from the settings store as a profile.
// The returned profile is non-nil only with [StatusLoaded], and the error is
// a [*ConfigShapeError] only with [StatusFailed].
func ReadStored(v any) (*profiles.Profile, Status, error) {
	var p *profiles.Profile

	switch val := v.(type) {
	case nil:
		return nil, StatusDefaulted, nil

	case string:
		if strings.TrimSpace(val) == "" {
			return nil, StatusDefaulted, nil
		}

		return nil, StatusFailed, shapeError(v, nil)

	case *profiles.Profile:
		p = val.Clone()

	case profiles.Profile:
		p = val.Clone()

	case map[string]any:
		if len(val) == 0 {
			return nil, StatusDefaulted, nil
		}

		data, err := api.MarshalYAML(val)
		if err != nil {
			return nil, StatusFailed, shapeError(v, err)
		}

		p, err = config.NewLoaderFromBytes(data, profiles.New, profiles.DefaultValidator,
			config.WithName(settings.KeyMinimumNeeds),
		).Parse()
		if err != nil {
			return nil, StatusFailed, shapeError(v, err)
		}

	default:
		return nil, StatusFailed, shapeError(v, nil)
	}

	if p.IsEmpty() {
		return nil, StatusDefaulted, nil
	}

	return p, StatusLoaded, nil
}

func shapeError(v any, err error) *ConfigShapeError {
	return &ConfigShapeError{
		Key:  settings.KeyMinimumNeeds,
		Type: fmt.Sprintf("%T", v),
		Err:  err,
	}
}
