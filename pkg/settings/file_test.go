package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/settings"
)

func TestOpenFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup  func(t *testing.T, path string)
		errMsg string
	}{
		"creates default file": {
			setup: func(t *testing.T, _ string) {
				t.Helper()
			},
		},
		"opens existing file": {
			setup: func(t *testing.T, path string) {
				t.Helper()

				content := `apiVersion: needs.macropower.dev/v1beta1
kind: Settings
values:
  locale/userLocale: id_ID
`
				require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			},
		},
		"rejects invalid file": {
			setup: func(t *testing.T, path string) {
				t.Helper()

				require.NoError(t, os.WriteFile(path, []byte("kind: Other\n"), 0o600))
			},
			errMsg: "load settings",
		},
		"rejects directory": {
			setup: func(t *testing.T, path string) {
				t.Helper()

				require.NoError(t, os.Mkdir(path, 0o700))
			},
			errMsg: "path is a directory",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.yaml")
			tc.setup(t, path)

			f, err := settings.OpenFile(path)
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, path, f.Path())
			assert.FileExists(t, path)
		})
	}
}

func TestFile_SetPersists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	f, err := settings.OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Set(settings.KeyUserLocale, "id_ID"))
	require.NoError(t, f.Set(settings.KeyMinimumNeeds, profiles.Builtin()))

	v, ok := f.Get(settings.KeyUserLocale)
	require.True(t, ok)
	assert.Equal(t, "id_ID", v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := string(data)
	assert.Contains(t, content, "# Settings shared between needs", "header comment should be preserved")
	assert.Contains(t, content, "locale/userLocale: id_ID")
	assert.Contains(t, content, "MinimumNeeds:")
	assert.Contains(t, content, "BNPB Perka 7/2008")

	reopened, err := settings.OpenFile(path)
	require.NoError(t, err)

	v, ok = reopened.Get(settings.KeyUserLocale)
	require.True(t, ok)
	assert.Equal(t, "id_ID", v)

	stored, ok := reopened.Get(settings.KeyMinimumNeeds)
	require.True(t, ok)

	m, ok := stored.(map[string]any)
	require.True(t, ok, "reloaded profile should decode as a map, got %T", stored)
	assert.Equal(t, "The minimum needs are based on BNPB Perka 7/2008.", m["provenance"])

	resources, ok := m["resources"].([]any)
	require.True(t, ok)
	assert.Len(t, resources, 5)
}

func TestFile_SetOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	f, err := settings.OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, f.Set(settings.KeyUserLocale, "id_ID"))
	require.NoError(t, f.Set(settings.KeyUserLocale, "en_US"))

	reopened, err := settings.OpenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "en_US", settings.GetString(reopened, settings.KeyUserLocale))
}
