package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/profile"
)

func TestReadStored(t *testing.T) {
	t.Parallel()

	builtin := profiles.Builtin()

	tcs := map[string]struct {
		value      any
		wantStatus profile.Status
		wantName   string
	}{
		"nil": {
			value:      nil,
			wantStatus: profile.StatusDefaulted,
		},
		"empty string": {
			value:      "",
			wantStatus: profile.StatusDefaulted,
		},
		"blank string": {
			value:      "  ",
			wantStatus: profile.StatusDefaulted,
		},
		"empty map": {
			value:      map[string]any{},
			wantStatus: profile.StatusDefaulted,
		},
		"profile without resources": {
			value:      &profiles.Profile{},
			wantStatus: profile.StatusDefaulted,
		},
		"map without resources": {
			value:      map[string]any{"provenance": "x", "resources": []any{}},
			wantStatus: profile.StatusDefaulted,
		},
		"profile pointer": {
			value:      builtin,
			wantStatus: profile.StatusLoaded,
			wantName:   "Rice",
		},
		"profile value": {
			value:      *builtin,
			wantStatus: profile.StatusLoaded,
			wantName:   "Rice",
		},
		"decoded map": {
			value: map[string]any{
				"provenance": "stored",
				"resources": []any{
					map[string]any{
						"Resource name":        "Water",
						"Resource description": "For drinking",
						"Frequency":            "weekly",
						"Readable sentence":    "{{ Default }}",
						"Minimum allowed":      "0",
						"Maximum allowed":      "10",
						"Unit":                 "litre",
						"Units":                "litres",
						"Unit abbreviation":    "l",
						"Default":              "5",
					},
				},
			},
			wantStatus: profile.StatusLoaded,
			wantName:   "Water",
		},
		"non empty string": {
			value:      "Rice: 2.8kg",
			wantStatus: profile.StatusFailed,
		},
		"number": {
			value:      42,
			wantStatus: profile.StatusFailed,
		},
		"list": {
			value:      []any{"a", "b"},
			wantStatus: profile.StatusFailed,
		},
		"map of wrong shape": {
			value:      map[string]any{"resources": "none"},
			wantStatus: profile.StatusFailed,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, status, err := profile.ReadStored(tc.value)
			assert.Equal(t, tc.wantStatus, status)

			switch tc.wantStatus {
			case profile.StatusLoaded:
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, tc.wantName, got.Resources[0].Name)

			case profile.StatusDefaulted:
				require.NoError(t, err)
				assert.Nil(t, got)

			case profile.StatusFailed:
				var shapeErr *profile.ConfigShapeError
				require.ErrorAs(t, err, &shapeErr)
				assert.Equal(t, "MinimumNeeds", shapeErr.Key)
				assert.Nil(t, got)
			}
		})
	}
}

func TestReadStored_ClonesProfile(t *testing.T) {
	t.Parallel()

	stored := profiles.Builtin()

	got, status, err := profile.ReadStored(stored)
	require.NoError(t, err)
	require.Equal(t, profile.StatusLoaded, status)

	got.Resources[0].Default = "0"
	assert.Equal(t, "2.8", stored.Resources[0].Default)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "loaded", profile.StatusLoaded.String())
	assert.Equal(t, "defaulted", profile.StatusDefaulted.String())
	assert.Equal(t, "failed", profile.StatusFailed.String())
	assert.Equal(t, "Status(9)", profile.Status(9).String())
}
