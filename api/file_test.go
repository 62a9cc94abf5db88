package api_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/needs/api"
)

//nolint:paralleltest // Mutates the environment.
func TestGetConfigDir(t *testing.T) {
	tcs := map[string]struct {
		xdg  string
		home string
		want string
	}{
		"XDG_CONFIG_HOME wins": {
			xdg:  "/custom/config",
			home: "/test/home",
			want: "/custom/config/needs",
		},
		"HOME when XDG_CONFIG_HOME is empty": {
			home: "/test/home",
			want: "/test/home/.config/needs",
		},
		"temp dir when both are empty": {
			want: filepath.Join(os.TempDir(), "needs"), //nolint:usetesting // Needs to equal host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tc.xdg)
			t.Setenv("HOME", tc.home)

			assert.Equal(t, tc.want, api.GetConfigDir())
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "BNPB_en.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	got, err := api.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))

	_, err = api.ReadFile(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, fs.ErrNotExist)

	_, err = api.ReadFile(dir)
	require.ErrorContains(t, err, "path is a directory")
}

func TestMarshalYAML(t *testing.T) {
	t.Parallel()

	data, err := api.MarshalYAML(map[string]any{
		"source": "settings",
		"values": []string{"Rice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "source: settings\nvalues:\n  - Rice\n", string(data))
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "minimum_needs", "profile.json")

	require.NoError(t, api.WriteFile(path, []byte("first")))
	require.NoError(t, api.WriteFile(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are cleaned up")
	assert.Equal(t, "profile.json", entries[0].Name())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	err = api.WriteFile(dir, []byte("data"))
	require.ErrorContains(t, err, "path is a directory")
}

func TestWriteIfNotExists(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setup       func(t *testing.T, path string)
		wantContent string
		errMsg      string
		wantWritten bool
	}{
		"new file": {
			wantWritten: true,
			wantContent: "bundled",
		},
		"existing file is kept": {
			setup: func(t *testing.T, path string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
				require.NoError(t, os.WriteFile(path, []byte("user edit"), 0o600))
			},
			wantContent: "user edit",
		},
		"path is directory": {
			setup: func(t *testing.T, path string) {
				t.Helper()
				require.NoError(t, os.MkdirAll(path, 0o700))
			},
			errMsg: "path is a directory",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "minimum_needs", "BNPB_en.json")
			if tc.setup != nil {
				tc.setup(t, path)
			}

			written, err := api.WriteIfNotExists(path, []byte("bundled"))
			if tc.errMsg != "" {
				require.ErrorContains(t, err, tc.errMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantWritten, written)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.wantContent, string(got))
		})
	}
}

func TestRemoveIfExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	require.NoError(t, api.RemoveIfExists(path))
	assert.NoFileExists(t, path)

	require.NoError(t, api.RemoveIfExists(path))
	require.NoError(t, api.RemoveIfExists(filepath.Join(dir, "nope", "missing.json")))
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	t.Run("new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

		require.NoError(t, api.WriteDefaultFile(path, []byte("default"), false, "settings"))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "default", string(got))
	})

	t.Run("existing file without force", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("existing"), 0o600))

		require.NoError(t, api.WriteDefaultFile(path, []byte("default"), false, "settings"))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "existing", string(got))
	})

	t.Run("force backs up existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("existing"), 0o600))

		require.NoError(t, api.WriteDefaultFile(path, []byte("default"), true, "settings"))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "default", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		var backups []string
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".old") {
				backups = append(backups, e.Name())
			}
		}

		require.Len(t, backups, 1)
		assert.True(t, strings.HasPrefix(backups[0], "settings.yaml."))

		backup, err := os.ReadFile(filepath.Join(dir, backups[0]))
		require.NoError(t, err)
		assert.Equal(t, "existing", string(backup))
	})

	t.Run("path is directory", func(t *testing.T) {
		t.Parallel()

		err := api.WriteDefaultFile(t.TempDir(), []byte("default"), false, "settings")
		require.ErrorContains(t, err, "path is a directory")
	})
}
