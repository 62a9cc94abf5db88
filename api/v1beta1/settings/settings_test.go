package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/needs/api/v1beta1/settings"
	"github.com/macropower/needs/pkg/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	s := settings.New()

	require.NotNil(t, s)
	assert.Equal(t, "needs.macropower.dev/v1beta1", s.GetAPIVersion())
	assert.Equal(t, "Settings", s.GetKind())
	assert.NotNil(t, s.Values)
	assert.Empty(t, s.Values)
}

func TestSettings_EnsureDefaults(t *testing.T) {
	t.Parallel()

	s := &settings.Settings{}
	assert.Nil(t, s.Values)

	s.EnsureDefaults()
	assert.NotNil(t, s.Values)
}

func TestSettingsLoader_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		errMsg  string
		wantErr bool
	}{
		"valid settings": {
			input: `apiVersion: needs.macropower.dev/v1beta1
kind: Settings
values:
  MinimumNeeds:
    resources: []
`,
		},
		"wrong kind": {
			input: `apiVersion: needs.macropower.dev/v1beta1
kind: Policy
`,
			wantErr: true,
			errMsg:  "kind",
		},
		"missing type meta": {
			input:   "values: {}\n",
			wantErr: true,
			errMsg:  "missing properties 'apiVersion', 'kind'",
		},
		"values not a map": {
			input: `apiVersion: needs.macropower.dev/v1beta1
kind: Settings
values: [a, b]
`,
			wantErr: true,
			errMsg:  "values",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := config.NewLoaderFromBytes([]byte(tc.input), settings.New, settings.DefaultValidator).Validate()
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	tcs := map[string]struct {
		dir     string
		xdgHome string
		want    string
	}{
		"explicit directory": {
			dir:  "/data/needs",
			want: "/data/needs/settings.yaml",
		},
		"falls back to XDG_CONFIG_HOME": {
			xdgHome: "/custom/config",
			want:    "/custom/config/needs/settings.yaml",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tc.xdgHome)

			assert.Equal(t, tc.want, settings.GetPath(tc.dir))
		})
	}
}

func TestDefaultSettingsYAMLIsValid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), settings.FileName)

	err := settings.WriteDefault(path, false)
	require.NoError(t, err)

	sl, err := config.NewLoaderFromFile(path, settings.New, settings.DefaultValidator)
	require.NoError(t, err)

	s, err := sl.Parse()
	require.NoError(t, err)

	assert.Equal(t, "Settings", s.GetKind())
	assert.Empty(t, s.Values)
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	t.Run("does not overwrite existing file without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), settings.FileName)

		err := os.WriteFile(path, []byte("custom content"), 0o600)
		require.NoError(t, err)

		err = settings.WriteDefault(path, false)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "custom content", string(data))
	})

	t.Run("overwrites existing file with force", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, settings.FileName)

		err := os.WriteFile(path, []byte("custom content"), 0o600)
		require.NoError(t, err)

		err = settings.WriteDefault(path, true)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "kind: Settings")

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})
}
