package yaml

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

// NewPathBuilder starts a [yaml.Path], e.g. NewPathBuilder().Root().Child("resources").
func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// Error is a decode or schema error located in a document, either by the
// offending [*token.Token] (syntax and type errors) or by a [*yaml.Path]
// (schema errors). With Source set, the message quotes the offending lines.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

// ErrorOpt sets optional [Error] fields.
type ErrorOpt func(e *Error)

// NewError creates an [Error] wrapping err.
func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// WithPath locates the error by path.
func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

// WithToken locates the error by token.
func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

// WithSource attaches the document the error was found in.
func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

// Annotate attaches source to the [*Error] in err's chain, if there is one.
// Other errors are returned unchanged.
func Annotate(err error, source []byte) error {
	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		yamlErr.Source = source
	}

	return err
}

func (e *Error) Error() string {
	switch {
	case e.Err == nil:
		return ""
	case e.Token != nil:
		return e.tokenMessage()
	case e.Path != nil:
		return e.pathMessage()
	}

	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) tokenMessage() string {
	var pp printer.Printer

	pos := e.Token.Position

	return fmt.Sprintf("[%d:%d] %v:\n%s", pos.Line, pos.Column, e.Err, pp.PrintErrorToken(e.Token, false))
}

func (e *Error) pathMessage() string {
	msg := fmt.Sprintf("error at %s: %v", e.Path, e.Err)
	if len(e.Source) == 0 {
		return msg
	}

	annotated, err := e.Path.AnnotateSource(e.Source, false)
	if err != nil {
		slog.Debug("annotate source",
			slog.String("path", e.Path.String()),
			slog.Any("error", err),
		)

		return msg
	}

	return msg + "\n" + strings.TrimRight(string(annotated), "\n")
}
