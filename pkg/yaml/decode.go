package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// Decoder decodes YAML (and therefore JSON) documents, converting
// [yaml.Error]s into [*Error]s that carry the offending token.
type Decoder struct {
	d *yaml.Decoder
}

// DecoderOpt configures a [Decoder].
type DecoderOpt func(*[]yaml.DecodeOption)

// WithStrict rejects fields that are not present in the target struct.
func WithStrict() DecoderOpt {
	return func(opts *[]yaml.DecodeOption) {
		*opts = append(*opts, yaml.DisallowUnknownField())
	}
}

// NewDecoder creates a [Decoder] reading from r.
func NewDecoder(r io.Reader, opts ...DecoderOpt) *Decoder {
	decOpts := []yaml.DecodeOption{yaml.AllowDuplicateMapKey()}
	for _, opt := range opts {
		opt(&decOpts)
	}

	return &Decoder{
		d: yaml.NewDecoder(r, decOpts...),
	}
}

// Decode decodes the next document into v.
func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil {
		return nil
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return &Error{
			Err:   errors.New(yamlErr.GetMessage()),
			Token: yamlErr.GetToken(),
		}
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}

// Unmarshal decodes data into v using a [Decoder].
func Unmarshal(data []byte, v any, opts ...DecoderOpt) error {
	return NewDecoder(bytes.NewReader(data), opts...).Decode(v)
}
