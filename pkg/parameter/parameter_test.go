package parameter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/parameter"
	"github.com/macropower/needs/pkg/sentence"
)

func rice() *profiles.Resource {
	return &profiles.Resource{
		Name:             "Rice",
		Description:      "Basic food",
		Frequency:        "weekly",
		ReadableSentence: "A person needs {{ Default }}{{ Unit abbreviation }} of{{ Resource name }}{{ Frequency }}.",
		Minimum:          "0",
		Maximum:          "100",
		Unit:             "kilogram",
		Units:            "kilograms",
		UnitAbbreviation: "kg",
		Default:          "2.8",
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	p, err := parameter.New(rice())
	require.NoError(t, err)

	assert.Equal(t, &parameter.Parameter{
		Name:        "Rice",
		HelpText:    "Basic food",
		Frequency:   "weekly",
		Description: "A person needs 2.8 kg of Rice weekly.",
		Minimum:     0,
		Maximum:     100,
		Value:       2.8,
		Unit: parameter.Unit{
			Name:         "kilogram",
			Plural:       "kilograms",
			Abbreviation: "kg",
		},
	}, p)
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		mutate func(r *profiles.Resource)
		err    error
		errMsg string
	}{
		"non numeric default": {
			mutate: func(r *profiles.Resource) { r.Default = "lots" },
			err:    parameter.ErrNumericParse,
			errMsg: "Default",
		},
		"non numeric minimum": {
			mutate: func(r *profiles.Resource) { r.Minimum = "" },
			err:    parameter.ErrNumericParse,
			errMsg: "Minimum allowed",
		},
		"non numeric maximum": {
			mutate: func(r *profiles.Resource) { r.Maximum = "1,000" },
			err:    parameter.ErrNumericParse,
			errMsg: "Maximum allowed",
		},
		"unknown placeholder": {
			mutate: func(r *profiles.Resource) { r.ReadableSentence = "{{ Colour }}" },
			err:    parameter.ErrMissingField,
			errMsg: "Colour",
		},
		"malformed sentence": {
			mutate: func(r *profiles.Resource) { r.ReadableSentence = "{{ Default" },
			err:    sentence.ErrMalformedTemplate,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := rice()
			tc.mutate(r)

			_, err := parameter.New(r)
			require.ErrorIs(t, err, tc.err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestNew_TrimsNumbers(t *testing.T) {
	t.Parallel()

	r := rice()
	r.Default = " 3.5 "

	p, err := parameter.New(r)
	require.NoError(t, err)
	assert.InDelta(t, 3.5, p.Value, 0)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	resources := profiles.Builtin().Resources

	params, err := parameter.Build(resources)
	require.NoError(t, err)
	require.Len(t, params, len(resources))

	for i, p := range params {
		assert.Equal(t, resources[i].Name, p.Name)

		def, err := parameter.New(resources[i])
		require.NoError(t, err)
		assert.InDelta(t, def.Value, p.Value, 0)
		assert.NoError(t, p.Validate())
	}

	assert.Equal(t, "Each person should be provided with 2.8 kg of Rice weekly.", params[0].Description)
}

func TestBuild_Duplicates(t *testing.T) {
	t.Parallel()

	params, err := parameter.Build([]*profiles.Resource{rice(), rice()})
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, params[0], params[1])
	assert.NotSame(t, params[0], params[1])
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	params, err := parameter.Build(nil)
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	bad := rice()
	bad.Default = "x"

	_, err := parameter.Build([]*profiles.Resource{rice(), bad})
	require.ErrorIs(t, err, parameter.ErrNumericParse)

	_, err = parameter.Build([]*profiles.Resource{nil})
	require.ErrorIs(t, err, parameter.ErrMissingField)
}

func TestProvenance(t *testing.T) {
	t.Parallel()

	got, err := parameter.Provenance(profiles.Builtin())
	require.NoError(t, err)
	assert.Equal(t, "The minimum needs are based on BNPB Perka 7/2008.", got)

	_, err = parameter.Provenance(&profiles.Profile{})
	require.ErrorIs(t, err, parameter.ErrMissingField)

	_, err = parameter.Provenance(nil)
	require.ErrorIs(t, err, parameter.ErrMissingField)
}

func TestParameter_SetValue(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		value   float64
		wantErr bool
	}{
		"within bounds": {value: 50},
		"at minimum":    {value: 0},
		"at maximum":    {value: 100},
		"below minimum": {value: -1, wantErr: true},
		"above maximum": {value: 100.5, wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := parameter.New(rice())
			require.NoError(t, err)

			err = p.SetValue(tc.value)
			if tc.wantErr {
				require.ErrorIs(t, err, parameter.ErrOutOfRange)
				assert.InDelta(t, 2.8, p.Value, 0)

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tc.value, p.Value, 0)
		})
	}
}

func TestParameter_Validate(t *testing.T) {
	t.Parallel()

	r := rice()
	r.Default = "250"

	// Out of range defaults load, and surface when validated.
	p, err := parameter.New(r)
	require.NoError(t, err)
	require.ErrorIs(t, p.Validate(), parameter.ErrOutOfRange)
}

func TestParameter_String(t *testing.T) {
	t.Parallel()

	p, err := parameter.New(rice())
	require.NoError(t, err)
	assert.Equal(t, "2.8 kg", p.String())

	p.Unit.Abbreviation = ""
	assert.Equal(t, "2.8", p.String())
}
