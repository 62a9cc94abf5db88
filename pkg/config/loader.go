package config

import (
	"fmt"

	"github.com/macropower/needs/api"
	"github.com/macropower/needs/api/v1beta1"
	"github.com/macropower/needs/pkg/yaml"
)

// Validator checks a generically decoded document.
// [*yaml.Validator] is the usual implementation.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*loaderOptions)

type loaderOptions struct {
	validator Validator
	name      string
	strict    bool
}

// WithValidator replaces the default validator. Nil disables validation.
func WithValidator(v Validator) LoaderOpt {
	return func(o *loaderOptions) {
		o.validator = v
	}
}

// WithStrict rejects fields unknown to T when loading.
func WithStrict() LoaderOpt {
	return func(o *loaderOptions) {
		o.strict = true
	}
}

// WithName names the document in error messages, usually by its path.
// [NewLoaderFromFile] sets it automatically.
func WithName(name string) LoaderOpt {
	return func(o *loaderOptions) {
		o.name = name
	}
}

// Loader turns raw document data into a T: [Loader.Validate] checks the
// document against a schema and [Loader.Load] decodes it. [Loader.Parse]
// does both. Errors carry the source so that they quote the offending lines.
type Loader[T v1beta1.Object] struct {
	opts    loaderOptions
	newFunc func() T
	data    []byte
}

// NewLoaderFromBytes creates a [Loader] for data.
// The newFunc parameter constructs an empty T, e.g. profiles.New.
func NewLoaderFromBytes[T v1beta1.Object](
	data []byte,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) *Loader[T] {
	l := &Loader[T]{
		data:    data,
		newFunc: newFunc,
		opts:    loaderOptions{validator: defaultValidator},
	}
	for _, opt := range opts {
		opt(&l.opts)
	}

	return l
}

// NewLoaderFromFile reads path and creates a [Loader] for its content.
func NewLoaderFromFile[T v1beta1.Object](
	path string,
	newFunc func() T,
	defaultValidator Validator,
	opts ...LoaderOpt,
) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	opts = append([]LoaderOpt{WithName(path)}, opts...)

	return NewLoaderFromBytes(data, newFunc, defaultValidator, opts...), nil
}

// Validate decodes the document generically and checks it with the
// validator. It does nothing beyond syntax checks when no validator is set.
func (l *Loader[T]) Validate() error {
	var doc any

	err := yaml.Unmarshal(l.data, &doc)
	if err != nil {
		return l.wrap(err)
	}

	if l.opts.validator == nil {
		return nil
	}

	return l.wrap(l.opts.validator.Validate(doc))
}

// Load decodes the document into a new T and applies its defaults.
// The schema is not checked; see [Loader.Parse].
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Load() (T, error) {
	var decOpts []yaml.DecoderOpt
	if l.opts.strict {
		decOpts = append(decOpts, yaml.WithStrict())
	}

	obj := l.newFunc()

	err := yaml.Unmarshal(l.data, obj, decOpts...)
	if err != nil {
		var zero T
		return zero, l.wrap(err)
	}

	obj.EnsureDefaults()

	return obj, nil
}

// Parse validates and then loads the document.
//
//nolint:ireturn // Generic type parameter return is intentional.
func (l *Loader[T]) Parse() (T, error) {
	err := l.Validate()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("validate: %w", err)
	}

	return l.Load()
}

func (l *Loader[T]) wrap(err error) error {
	if err == nil {
		return nil
	}

	err = yaml.Annotate(err, l.data)
	if l.opts.name != "" {
		return fmt.Errorf("%s: %w", l.opts.name, err)
	}

	return err
}
