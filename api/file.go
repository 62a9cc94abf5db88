// Package api holds the file helpers shared by every needs document, and the
// versioned document types below it.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/macropower/needs/pkg/yaml"
)

// AppName is the directory name used below the user's config directory.
const AppName = "needs"

// GetConfigDir returns the needs directory in the user's config directory:
// $XDG_CONFIG_HOME/needs, else ~/.config/needs, else a directory in the
// system temp directory.
func GetConfigDir() string {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, AppName)
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".config", AppName)
	}

	dir := filepath.Join(os.TempDir(), AppName)

	slog.Warn("no home directory, using temp config directory",
		slog.String("path", dir),
		slog.Any("error", err),
	)

	return dir
}

// regularFileExists reports whether path is a regular file. A missing path
// is not an error; a directory or special file is.
func regularFileExists(path string) (bool, error) {
	info, err := os.Stat(path)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat file: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("%s: path is a directory", path)
	case !info.Mode().IsRegular():
		return false, fmt.Errorf("%s: unknown file state", path)
	}

	return true, nil
}

// ReadFile reads a regular file. A missing file yields an error wrapping
// [fs.ErrNotExist].
func ReadFile(path string) ([]byte, error) {
	ok, err := regularFileExists(path)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("read file %s: %w", path, fs.ErrNotExist)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: Potential file inclusion via variable.
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// MarshalYAML serializes an object to YAML bytes.
func MarshalYAML(obj any) ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)

	err := enc.Encode(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}

// WriteFile replaces the file at path with data, creating parent
// directories as needed. The content is written to a temporary file in the
// same directory first and renamed into place, so readers never see a
// partial file.
func WriteFile(path string, data []byte) error {
	_, err := regularFileExists(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, 0o700)
	if err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		// No-op once the rename succeeded.
		_ = os.Remove(tmp.Name())
	}()

	_, err = tmp.Write(data)
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return fmt.Errorf("replace file: %w", err)
	}

	return nil
}

// WriteIfNotExists writes data to path unless a file already exists there.
// It reports whether the file was written.
func WriteIfNotExists(path string, data []byte) (bool, error) {
	ok, err := regularFileExists(path)
	if err != nil || ok {
		return false, err
	}

	err = WriteFile(path, data)
	if err != nil {
		return false, err
	}

	return true, nil
}

// RemoveIfExists deletes the file at path. A missing file is not an error.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("file already absent", slog.String("path", path))

		return nil
	}

	if err != nil {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

// WriteDefaultFile writes defaultData to path when no file exists there.
// With force, an existing file is first renamed to
// "<name>.<unix nanos>.old" and then replaced.
func WriteDefaultFile(path string, defaultData []byte, force bool, kind string) error {
	exists, err := regularFileExists(path)
	if err != nil {
		return err
	}

	if exists && !force {
		slog.Debug("file already exists, skipping write",
			slog.String("type", kind),
			slog.String("path", path),
		)

		return nil
	}

	if exists {
		backupPath := fmt.Sprintf("%s.%d.old", path, time.Now().UnixNano())

		slog.Info("backing up existing file",
			slog.String("type", kind),
			slog.String("path", backupPath),
		)

		err = os.Rename(path, backupPath)
		if err != nil {
			return fmt.Errorf("rename existing %s file to backup: %w", kind, err)
		}
	}

	slog.Info("write default file",
		slog.String("type", kind),
		slog.String("path", path),
	)

	err = WriteFile(path, defaultData)
	if err != nil {
		return fmt.Errorf("write %s file: %w", kind, err)
	}

	return nil
}
