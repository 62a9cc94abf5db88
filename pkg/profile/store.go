package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/macropower/needs/api"
	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/config"
	"github.com/macropower/needs/pkg/locale"
)

// DirName is the name of the profile directory below the root directory.
const DirName = "minimum_needs"

var (
	// ErrProfileNotFound is returned when a named profile file does not exist.
	ErrProfileNotFound = fmt.Errorf("profile not found: %w", fs.ErrNotExist)

	// ErrInvalidName is returned for profile names that are empty or would
	// escape the profile directory.
	ErrInvalidName = errors.New("invalid profile name")
)

// Store reads and writes profile files in a single directory.
type Store struct {
	bundled fs.FS
	dir     string
}

// NewStore creates a [Store] for dir. Profiles in bundled are copied into
// dir by [Store.List] when missing. A nil bundled FS seeds nothing.
func NewStore(dir string, bundled fs.FS) *Store {
	return &Store{
		dir:     dir,
		bundled: bundled,
	}
}

// Dir returns the profile directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file path for the named profile. A trailing [profiles.Ext]
// on name is ignored.
func (s *Store) Path(name string) (string, error) {
	name = strings.TrimSuffix(name, profiles.Ext)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	return filepath.Join(s.dir, name+profiles.Ext), nil
}

// List seeds the directory with bundled profiles and returns the names of
// all profiles in it, ordered for the given locale (see [locale.Order]).
// Existing files are never overwritten, so repeated calls copy nothing.
func (s *Store) List(loc string) ([]string, error) {
	err := os.MkdirAll(s.dir, 0o700)
	if err != nil {
		return nil, fmt.Errorf("create profile directory: %w", err)
	}

	err = s.seed()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read profile directory: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if filepath.Ext(e.Name()) != profiles.Ext || !s.isRegular(e) {
			continue
		}

		names = append(names, strings.TrimSuffix(e.Name(), profiles.Ext))
	}

	return locale.Order(names, loc), nil
}

// isRegular reports whether e is a regular file, following symlinks.
func (s *Store) isRegular(e fs.DirEntry) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}

	info, err := os.Stat(filepath.Join(s.dir, e.Name()))
	if err != nil {
		return false
	}

	return info.Mode().IsRegular()
}

// Entries returns file information for every profile in the directory, in
// the same order as [Store.List].
func (s *Store) Entries(loc string) ([]fs.FileInfo, error) {
	names, err := s.List(loc)
	if err != nil {
		return nil, err
	}

	infos := make([]fs.FileInfo, 0, len(names))

	for _, name := range names {
		info, err := os.Stat(filepath.Join(s.dir, name+profiles.Ext))
		if err != nil {
			return nil, fmt.Errorf("stat profile %q: %w", name, err)
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// ReadBytes returns the raw content of the named profile.
func (s *Store) ReadBytes(name string) ([]byte, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}

	data, err := api.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, strings.TrimSuffix(name, profiles.Ext))
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	return data, nil
}

// Read decodes and validates the named profile.
func (s *Store) Read(name string) (*profiles.Profile, error) {
	data, err := s.ReadBytes(name)
	if err != nil {
		return nil, err
	}

	file := strings.TrimSuffix(name, profiles.Ext) + profiles.Ext

	p, err := config.NewLoaderFromBytes(data, profiles.New, profiles.DefaultValidator,
		config.WithName(file),
	).Parse()
	if err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}

	return p, nil
}

// Write writes p to the named profile file, replacing any existing file.
func (s *Store) Write(name string, p *profiles.Profile) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	if p == nil {
		p = profiles.New()
	}

	data, err := p.Encode()
	if err != nil {
		return err //nolint:wrapcheck // Already wrapped.
	}

	err = api.WriteFile(path, data)
	if err != nil {
		return fmt.Errorf("write profile %q: %w", name, err)
	}

	slog.Debug("wrote profile", slog.String("path", path))

	return nil
}

// Remove deletes the named profile file. A missing file is not an error.
func (s *Store) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}

	err = api.RemoveIfExists(path)
	if err != nil {
		return fmt.Errorf("remove profile %q: %w", name, err)
	}

	return nil
}

func (s *Store) seed() error {
	if s.bundled == nil {
		return nil
	}

	names, err := fs.Glob(s.bundled, "*"+profiles.Ext)
	if err != nil {
		return fmt.Errorf("list bundled profiles: %w", err)
	}

	for _, name := range names {
		data, err := fs.ReadFile(s.bundled, name)
		if err != nil {
			return fmt.Errorf("read bundled profile %q: %w", name, err)
		}

		dst := filepath.Join(s.dir, name)

		written, err := api.WriteIfNotExists(dst, data)
		if err != nil {
			return fmt.Errorf("seed profile %q: %w", name, err)
		}

		if written {
			slog.Info("seeded bundled profile", slog.String("path", dst))
		}
	}

	return nil
}
