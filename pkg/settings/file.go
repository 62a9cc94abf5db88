package settings

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/macropower/needs/api"
	v1settings "github.com/macropower/needs/api/v1beta1/settings"
	"github.com/macropower/needs/pkg/config"
	"github.com/macropower/needs/pkg/yaml"
)

// File is a [Store] backed by a Settings YAML document.
// Writes are merged into the existing document, so comments and unrelated
// keys written by other tools are preserved.
type File struct {
	doc  *v1settings.Settings
	path string
	data []byte
	mu   sync.Mutex
}

// OpenFile opens the settings file at path, creating it from the embedded
// default when it does not exist. The document is validated on load.
func OpenFile(path string) (*File, error) {
	err := v1settings.WriteDefault(path, false)
	if err != nil {
		return nil, fmt.Errorf("init settings: %w", err)
	}

	data, err := api.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	doc, err := config.NewLoaderFromBytes(data, v1settings.New, v1settings.DefaultValidator).Parse()
	if err != nil {
		return nil, fmt.Errorf("load settings %s: %w", path, err)
	}

	slog.Debug("opened settings",
		slog.String("path", path),
		slog.Int("keys", len(doc.Values)),
	)

	return &File{
		doc:  doc,
		path: path,
		data: data,
	}, nil
}

// Path returns the path of the settings file.
func (f *File) Path() string {
	return f.path
}

// Get implements [Store].
func (f *File) Get(key string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.doc.Values[key]

	return v, ok
}

// Set implements [Store]. The value is written to disk immediately.
func (f *File) Set(key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, hadPrev := f.doc.Values[key]
	f.doc.Values[key] = value

	merged, err := yaml.SetRootKey(f.data, "values", f.doc.Values)
	if err != nil {
		f.restore(key, prev, hadPrev)
		return fmt.Errorf("merge setting %q: %w", key, err)
	}

	err = api.WriteFile(f.path, merged)
	if err != nil {
		f.restore(key, prev, hadPrev)
		return fmt.Errorf("write settings: %w", err)
	}

	f.data = merged

	slog.Debug("stored setting",
		slog.String("key", key),
		slog.String("path", f.path),
	)

	return nil
}

func (f *File) restore(key string, prev any, hadPrev bool) {
	if hadPrev {
		f.doc.Values[key] = prev
	} else {
		delete(f.doc.Values, key)
	}
}
