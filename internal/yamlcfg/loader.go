// Package yamlcfg loads YAML and JSON configuration documents into the
// format-agnostic config model, preserving the key order of every mapping.
package yamlcfg

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/specialistvlad/horizon/internal/config"
	"github.com/specialistvlad/horizon/internal/ctxlog"
	"github.com/specialistvlad/horizon/internal/raw"
	"gopkg.in/yaml.v3"
)

// Extensions handled by this loader. JSON is parsed as YAML.
var Extensions = []string{".yaml", ".yml", ".json"}

// Loader is the YAML/JSON implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new YAML/JSON configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses the document at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	model, err := l.Parse(ctx, path, data)
	if err != nil {
		return nil, err
	}
	logger.Debug("YAML loading complete.", "path", path, "unknown_sections", len(model.Unknown))
	return model, nil
}

// Parse decodes data as a single YAML document. source names the document
// in errors.
func (l *Loader) Parse(_ context.Context, source string, data []byte) (*config.Model, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return config.FromDocument(source, raw.Null)
		}
		return nil, errors.Wrapf(err, "failed to parse config file %s", source)
	}

	doc, err := nodeToValue(&root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode config file %s", source)
	}
	return config.FromDocument(source, doc)
}

func nodeToValue(n *yaml.Node) (raw.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return raw.Null, nil
		}
		return nodeToValue(n.Content[0])

	case yaml.AliasNode:
		return nodeToValue(n.Alias)

	case yaml.SequenceNode:
		items := make([]raw.Value, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeToValue(c)
			if err != nil {
				return raw.Null, err
			}
			items = append(items, v)
		}
		return raw.List(items...), nil

	case yaml.MappingNode:
		fields := make([]raw.Field, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i], n.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return raw.Null, errors.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := nodeToValue(val)
			if err != nil {
				return raw.Null, err
			}
			fields = append(fields, raw.KV(key.Value, v))
		}
		return raw.Map(fields...), nil

	case yaml.ScalarNode:
		return scalarToValue(n)

	default:
		return raw.Null, errors.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func scalarToValue(n *yaml.Node) (raw.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return raw.Null, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return raw.Null, errors.Wrapf(err, "line %d", n.Line)
		}
		return raw.Bool(b), nil
	case "!!int":
		var i int
		if err := n.Decode(&i); err != nil {
			return raw.Null, errors.Wrapf(err, "line %d", n.Line)
		}
		return raw.Int(i), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return raw.Null, errors.Wrapf(err, "line %d", n.Line)
		}
		return raw.Float(f), nil
	default:
		return raw.String(n.Value), nil
	}
}
