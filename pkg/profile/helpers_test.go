package profile_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/macropower/needs/api/v1beta1/profiles"
)

// mockSettings is a [settings.Store] backed by testify/mock.
type mockSettings struct {
	mock.Mock
}

func (m *mockSettings) Get(key string) (any, bool) {
	args := m.Called(key)

	return args.Get(0), args.Bool(1)
}

func (m *mockSettings) Set(key string, value any) error {
	args := m.Called(key, value)

	return args.Error(0) //nolint:wrapcheck // Mocked error.
}

// namedProfile returns the builtin profile with a provenance naming it.
func namedProfile(provenance string) *profiles.Profile {
	p := profiles.Builtin()
	p.Provenance = &provenance

	return p
}

// encode encodes p in the profile file format.
func encode(t *testing.T, p *profiles.Profile) []byte {
	t.Helper()

	data, err := p.Encode()
	require.NoError(t, err)

	return data
}

// bundledFS returns an in-memory bundled profile set.
func bundledFS(t *testing.T, names ...string) fstest.MapFS {
	t.Helper()

	fsys := fstest.MapFS{}
	for _, name := range names {
		fsys[name+profiles.Ext] = &fstest.MapFile{Data: encode(t, namedProfile(name))}
	}

	return fsys
}
