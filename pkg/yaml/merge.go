package yaml

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// SetRootKey sets key to v in the root mapping of the YAML document in data
// and returns the new document. Other keys keep their order and comments.
// The whole value under key is replaced, not merged.
//
// Data holding no document (empty, or only comments) gets a new root mapping
// appended.
func SetRootKey(data []byte, key string, v any) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("set %q: value is nil", key)
	}

	file, err := parser.ParseBytes(data, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	entry := yaml.MapSlice{{Key: key, Value: v}}

	if !hasBody(file) {
		return appendDocument(data, entry)
	}

	node, err := yaml.ValueToNode(entry, DefaultEncoderOptions...)
	if err != nil {
		return nil, fmt.Errorf("convert %q to node: %w", key, err)
	}

	err = NewPathBuilder().Root().Build().MergeFromNode(file, node)
	if err != nil {
		return nil, fmt.Errorf("merge yaml: %w", err)
	}

	out := file.String()
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out += "\n"
	}

	return []byte(out), nil
}

func hasBody(file *ast.File) bool {
	for _, doc := range file.Docs {
		if doc.Body == nil {
			continue
		}

		if _, ok := doc.Body.(*ast.CommentGroupNode); !ok {
			return true
		}
	}

	return false
}

func appendDocument(data []byte, v any) ([]byte, error) {
	buf := bytes.NewBuffer(bytes.Clone(data))
	if buf.Len() > 0 && !bytes.HasSuffix(data, []byte("\n")) {
		buf.WriteByte('\n')
	}

	enc := NewEncoder(buf)

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	return buf.Bytes(), nil
}
