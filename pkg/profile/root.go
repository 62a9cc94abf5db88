package profile

import (
	"log/slog"
	"path/filepath"
)

// FallbackDirName is the directory below $HOME used when the host cannot
// report a settings directory.
const FallbackDirName = ".needs"

// HostPaths reports where the host keeps its settings.
type HostPaths interface {
	SettingsDir() (string, error)
}

// HostPathsFunc adapts a function to [HostPaths].
type HostPathsFunc func() (string, error)

// SettingsDir implements [HostPaths].
func (f HostPathsFunc) SettingsDir() (string, error) {
	return f()
}

// RootResolver determines the root directory profiles live under.
type RootResolver struct {
	Host HostPaths
	Env  Environment
}

// Resolve returns the host's settings directory, or $HOME/.needs when the
// host is unset, fails, or reports an empty path.
func (r RootResolver) Resolve() string {
	if r.Host != nil {
		dir, err := r.Host.SettingsDir()
		if err == nil && dir != "" {
			return dir
		}

		if err != nil {
			slog.Debug("host settings directory unavailable, using fallback",
				slog.Any("error", err),
			)
		}
	}

	return filepath.Join(r.Env.Home, FallbackDirName)
}
