package hcl

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/horizon/internal/config"
	"github.com/specialistvlad/horizon/internal/ctxlog"
	"github.com/specialistvlad/horizon/internal/raw"
)

// Extensions handled by this loader.
var Extensions = []string{".hcl"}

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and translates the HCL file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}

	model, err := l.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "path", path, "unknown_sections", len(model.Unknown))
	return model, nil
}

// Parse translates HCL source into the model. filename is used in
// diagnostics only.
func (l *Loader) Parse(ctx context.Context, filename string, src []byte) (*config.Model, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, file.Body)
	}

	doc, err := bodyToValue(body, file.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, err)
	}
	ctxlog.FromContext(ctx).Debug("HCL document translated.", "path", filename, "sections", doc.Len())
	return config.FromDocument(filename, doc)
}

// entry is an attribute or block of a body, positioned in the source.
type entry struct {
	name   string
	offset int
	rng    hcl.Range
	attr   *hclsyntax.Attribute
	block  *hclsyntax.Block
}

// bodyToValue converts a body into an ordered map. Blocks are treated like
// attributes whose value is the block's own body.
func bodyToValue(body *hclsyntax.Body, src []byte) (raw.Value, error) {
	entries := make([]entry, 0, len(body.Attributes)+len(body.Blocks))
	for name, attr := range body.Attributes {
		entries = append(entries, entry{name: name, offset: attr.SrcRange.Start.Byte, rng: attr.NameRange, attr: attr})
	}
	for _, block := range body.Blocks {
		entries = append(entries, entry{name: block.Type, offset: block.TypeRange.Start.Byte, rng: block.TypeRange, block: block})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].offset < entries[j].offset })

	seen := make(map[string]struct{}, len(entries))
	fields := make([]raw.Field, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.name]; dup {
			return raw.Null, fmt.Errorf("%s: duplicate definition of %q", e.rng, e.name)
		}
		seen[e.name] = struct{}{}

		var (
			v   raw.Value
			err error
		)
		if e.attr != nil {
			v, err = exprToValue(e.attr.Expr, src)
		} else {
			if len(e.block.Labels) > 0 {
				return raw.Null, fmt.Errorf("%s: block %q does not take labels", e.rng, e.name)
			}
			v, err = bodyToValue(e.block.Body, src)
		}
		if err != nil {
			return raw.Null, err
		}
		fields = append(fields, raw.KV(e.name, v))
	}
	return raw.Map(fields...), nil
}
