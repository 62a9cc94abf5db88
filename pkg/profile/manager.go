package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/needs/api/v1beta1/profiles"
	"github.com/macropower/needs/pkg/log"
	"github.com/macropower/needs/pkg/parameter"
	"github.com/macropower/needs/pkg/settings"
)

// ErrNoProfiles is returned when the profile directory holds no profiles.
var ErrNoProfiles = errors.New("no profiles available")

// Source identifies where [Manager.Load] found the active profile.
type Source int

const (
	// SourceBuiltin is the hardcoded [profiles.Builtin] profile.
	SourceBuiltin Source = iota
	// SourceSettings is the profile stored in the settings store.
	SourceSettings
	// SourceProfileFile is the first profile in the profile directory.
	SourceProfileFile
)

func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceSettings:
		return "settings"
	case SourceProfileFile:
		return "profile file"
	}

	return fmt.Sprintf("Source(%d)", int(s))
}

// LoadResult describes the outcome of [Manager.Load].
type LoadResult struct {
	// Err explains why the settings store value was not used, when it
	// failed, and why the profile file fallback failed. It is never fatal.
	Err     error
	Profile *profiles.Profile
	// Name is the profile file name when Source is [SourceProfileFile].
	Name   string
	Source Source
}

// ManagerOpt configures a [Manager].
type ManagerOpt func(*Manager)

// WithRootResolver sets how the root directory is resolved.
func WithRootResolver(r RootResolver) ManagerOpt {
	return func(m *Manager) {
		m.resolver = r
	}
}

// WithBundled sets the profiles seeded into the profile directory.
func WithBundled(bundled fs.FS) ManagerOpt {
	return func(m *Manager) {
		m.bundled = bundled
	}
}

// WithLocale overrides the locale used to order profiles.
func WithLocale(loc string) ManagerOpt {
	return func(m *Manager) {
		m.locale = loc
	}
}

type subscription struct {
	consumer Consumer
	id       int
}

// Manager holds the active minimum needs profile.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	settings      settings.Store
	bundled       fs.FS
	tracer        trace.Tracer
	profile       *profiles.Profile
	resolver      RootResolver
	locale        string
	root          string
	subscriptions []subscription
	nextID        int
}

// NewManager creates a [Manager] persisting to store. The active profile is
// empty until [Manager.Load] or [Manager.LoadProfile] is called.
func NewManager(store settings.Store, opts ...ManagerOpt) *Manager {
	m := &Manager{
		settings: store,
		bundled:  profiles.Bundled,
		tracer:   otel.Tracer("profile-manager"),
		profile:  profiles.New(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RootDirectory returns the root directory. It is resolved on first use and
// cached for the lifetime of the manager.
func (m *Manager) RootDirectory() string {
	if m.root == "" {
		m.root = m.resolver.Resolve()
	}

	return m.root
}

// Store returns the [Store] for the profile directory below the root.
func (m *Manager) Store() *Store {
	return NewStore(filepath.Join(m.RootDirectory(), DirName), m.bundled)
}

// Locale returns the locale used to order profiles: the explicit override,
// else the stored user locale, else the one derived from the environment.
func (m *Manager) Locale() string {
	if m.locale != "" {
		return m.locale
	}

	if loc := settings.GetString(m.settings, settings.KeyUserLocale); loc != "" {
		return loc
	}

	return m.resolver.Env.Locale()
}

// Profiles lists the available profile names in locale order.
func (m *Manager) Profiles() ([]string, error) {
	return m.Store().List(m.Locale())
}

// Profile returns the active profile.
func (m *Manager) Profile() *profiles.Profile {
	return m.profile
}

// Parameters converts the active profile's resources into parameters.
func (m *Manager) Parameters() ([]*parameter.Parameter, error) {
	params, err := parameter.Build(m.profile.Resources)
	if err != nil {
		return nil, fmt.Errorf("build parameters: %w", err)
	}

	return params, nil
}

// Provenance returns the active profile's provenance.
func (m *Manager) Provenance() (string, error) {
	return parameter.Provenance(m.profile)
}

// Load sets the active profile from the best available source.
// See [Manager.LoadContext].
func (m *Manager) Load() LoadResult {
	return m.LoadContext(context.Background())
}

// LoadContext sets the active profile from the best available source: the
// settings store, then the first profile file, then [profiles.Builtin].
// It never fails; the [LoadResult] reports which source was used.
func (m *Manager) LoadContext(ctx context.Context) LoadResult {
	ctx, span := m.tracer.Start(ctx, "load")
	defer span.End()

	logger := log.WithContext(ctx)

	var res LoadResult

	raw, _ := m.settings.Get(settings.KeyMinimumNeeds)

	p, status, err := ReadStored(raw)
	span.SetAttributes(attribute.String("status", status.String()))

	switch status {
	case StatusLoaded:
		m.profile = p
		res = LoadResult{Source: SourceSettings, Profile: p}

		logger.DebugContext(ctx, "loaded minimum needs from settings")

		return res

	case StatusFailed:
		logger.WarnContext(ctx, "ignore stored minimum needs",
			slog.Any("error", err),
		)

		res.Err = err

	case StatusDefaulted:
		logger.DebugContext(ctx, "no minimum needs stored, falling back to profile files")
	}

	name, p, err := m.firstProfile()
	if err == nil {
		m.profile = p
		res.Source = SourceProfileFile
		res.Name = name
		res.Profile = p

		logger.DebugContext(ctx, "loaded minimum needs from profile file",
			slog.String("profile", name),
		)

		return res
	}

	logger.WarnContext(ctx, "use builtin minimum needs",
		slog.Any("error", err),
	)
	span.SetStatus(codes.Error, err.Error())

	m.profile = profiles.Builtin()
	res.Source = SourceBuiltin
	res.Profile = m.profile
	res.Err = errors.Join(res.Err, err)

	return res
}

func (m *Manager) firstProfile() (string, *profiles.Profile, error) {
	store := m.Store()

	names, err := store.List(m.Locale())
	if err != nil {
		return "", nil, err
	}

	if len(names) == 0 {
		return "", nil, fmt.Errorf("%w in %s", ErrNoProfiles, store.Dir())
	}

	p, err := store.Read(names[0])
	if err != nil {
		return "", nil, err
	}

	if p.IsEmpty() {
		return "", nil, fmt.Errorf("profile %q has no resources", names[0])
	}

	return names[0], p, nil
}

// LoadProfile replaces the active profile with the named profile file.
func (m *Manager) LoadProfile(name string) error {
	p, err := m.Store().Read(name)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}

	m.profile = p

	return nil
}

// SaveProfile writes the active profile to the named profile file,
// replacing any existing file. A trailing [profiles.Ext] on name is ignored.
func (m *Manager) SaveProfile(name string) error {
	err := m.Store().Write(name, m.profile)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return nil
}

// RemoveProfile deletes the named profile file. A missing file is not an
// error.
func (m *Manager) RemoveProfile(name string) error {
	err := m.Store().Remove(name)
	if err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}

	return nil
}

// Save persists the active profile. See [Manager.SaveContext].
func (m *Manager) Save() error {
	return m.SaveContext(context.Background())
}

// SaveContext stores the active profile in the settings store and pushes
// its parameters to every subscribed [Consumer]. An empty profile is not
// saved and nothing is pushed. A profile whose parameters or provenance
// cannot be built is not stored.
func (m *Manager) SaveContext(ctx context.Context) error {
	ctx, span := m.tracer.Start(ctx, "save")
	defer span.End()

	logger := log.WithContext(ctx)

	if m.profile.IsEmpty() {
		logger.DebugContext(ctx, "minimum needs are empty, skipping save")

		return nil
	}

	params, err := m.Parameters()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	provenance, err := m.Provenance()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("read provenance: %w", err)
	}

	err = m.settings.Set(settings.KeyMinimumNeeds, m.profile.Clone())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("store minimum needs: %w", err)
	}

	span.SetAttributes(attribute.Int("consumers", len(m.subscriptions)))

	for _, sub := range m.subscriptions {
		sub.consumer.UpdateNeeds(params, provenance)
	}

	logger.DebugContext(ctx, "saved minimum needs",
		slog.Int("resources", len(params)),
		slog.Int("consumers", len(m.subscriptions)),
	)

	return nil
}

// Subscribe registers c to receive parameters on every save. Consumers are
// notified in subscription order. The returned function unsubscribes c.
func (m *Manager) Subscribe(c Consumer) func() {
	id := m.nextID
	m.nextID++

	m.subscriptions = append(m.subscriptions, subscription{id: id, consumer: c})

	return func() {
		m.subscriptions = slices.DeleteFunc(m.subscriptions, func(s subscription) bool {
			return s.id == id
		})
	}
}
