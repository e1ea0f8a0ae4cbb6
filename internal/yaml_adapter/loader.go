package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/nodegraph/internal/config"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Extensions lists the file extensions the loader reads.
var Extensions = []string{".yaml", ".yml"}

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML graph loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

type fileRoot struct {
	Nodes []yaml.Node `yaml:"nodes"`
}

type nodeDoc struct {
	Constant  string    `yaml:"constant"`
	Operation string    `yaml:"operation"`
	Value     yaml.Node `yaml:"value"`
	Target    string    `yaml:"target"`
	Call      string    `yaml:"call"`
	Inputs    []string  `yaml:"inputs"`
}

// Load reads every YAML file named by paths, descending into directories,
// and concatenates their definitions.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path_count", len(paths))

	if len(paths) == 0 {
		return nil, errors.New("no graph paths given")
	}

	files, err := findAllYAMLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no YAML files found in %v", paths)
	}

	model := &config.Model{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read YAML file %s: %w", file, err)
		}
		m, err := l.Parse(ctx, src, file)
		if err != nil {
			return nil, err
		}
		model.Nodes = append(model.Nodes, m.Nodes...)
	}

	logger.Debug("YAML loading complete.", "files", len(files), "nodes", len(model.Nodes))
	return model, nil
}

// Parse decodes a single YAML graph document held in memory. filename is
// only used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)

	var root fileRoot
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}

	model := &config.Model{}
	for i := range root.Nodes {
		def, err := l.translate(ctx, &root.Nodes[i], filename)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filename, root.Nodes[i].Line, err)
		}
		model.Nodes = append(model.Nodes, def)
	}
	return model, nil
}

// nodeKeys are the keys a node entry may carry. Node.Decode does not honour
// the decoder's KnownFields setting, so entries are checked by hand.
var nodeKeys = map[string]bool{
	"constant":  true,
	"operation": true,
	"value":     true,
	"target":    true,
	"call":      true,
	"inputs":    true,
}

func checkKeys(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errors.New("a node entry must be a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if !nodeKeys[k.Value] {
			return fmt.Errorf("line %d: unknown key %q", k.Line, k.Value)
		}
	}
	return nil
}

func (l *Loader) translate(ctx context.Context, n *yaml.Node, filename string) (*config.NodeDefinition, error) {
	if err := checkKeys(n); err != nil {
		return nil, err
	}

	var doc nodeDoc
	if err := n.Decode(&doc); err != nil {
		return nil, err
	}

	rng := hcl.Range{
		Filename: filename,
		Start:    hcl.Pos{Line: n.Line, Column: n.Column},
		End:      hcl.Pos{Line: n.Line, Column: n.Column},
	}

	switch {
	case doc.Constant != "" && doc.Operation != "":
		return nil, errors.New("a node is either a constant or an operation, not both")

	case doc.Constant != "":
		if doc.Value.Kind == 0 {
			return nil, fmt.Errorf("constant %q: missing value", doc.Constant)
		}
		if doc.Target != "" || doc.Call != "" || len(doc.Inputs) > 0 {
			return nil, fmt.Errorf("constant %q: only value may be set", doc.Constant)
		}
		val, err := valueFromNode(&doc.Value)
		if err != nil {
			return nil, fmt.Errorf("constant %q: %w", doc.Constant, err)
		}
		return &config.NodeDefinition{
			Kind:      config.ConstantKind,
			Name:      doc.Constant,
			Value:     val,
			DeclRange: rng,
		}, nil

	case doc.Operation != "":
		if doc.Value.Kind != 0 {
			return nil, fmt.Errorf("operation %q: value is only valid on constants", doc.Operation)
		}
		if doc.Call == "" {
			return nil, fmt.Errorf("operation %q: call must not be empty", doc.Operation)
		}
		target, err := parseTarget(ctx, doc.Target, filename, rng.Start)
		if err != nil {
			return nil, fmt.Errorf("operation %q: %w", doc.Operation, err)
		}
		return &config.NodeDefinition{
			Kind:      config.OperationKind,
			Name:      doc.Operation,
			Target:    target,
			Call:      doc.Call,
			Inputs:    append([]string(nil), doc.Inputs...),
			DeclRange: rng,
		}, nil
	}

	return nil, errors.New("a node needs a constant or operation name")
}

// parseTarget reads a type expression such as `string` or `list(number)`.
func parseTarget(ctx context.Context, src, filename string, pos hcl.Pos) (cty.Type, error) {
	if src == "" {
		return cty.NilType, errors.New("target must not be empty")
	}

	expr, diags := hclsyntax.ParseExpression([]byte(src), filename, pos)
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("invalid type expression: %w", diags)
	}
	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return cty.NilType, fmt.Errorf("invalid type expression: %w", diags)
	}
	if ty.HasDynamicTypes() {
		return cty.NilType, fmt.Errorf("target must be a concrete type, got %s", typeexpr.TypeString(ty))
	}

	ctxlog.FromContext(ctx).Debug("Parsed type expression.", "type", typeexpr.TypeString(ty))
	return ty, nil
}

// findAllYAMLFiles expands paths into a de-duplicated list of YAML files.
func findAllYAMLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if !IsYAML(path) {
				return nil, fmt.Errorf("graph file %s must have a .yaml or .yml extension", path)
			}
			add(path)
			continue
		}

		for _, ext := range Extensions {
			found, err := fsutil.FindFilesByExtension(path, ext)
			if err != nil {
				return nil, fmt.Errorf("error walking %s: %w", path, err)
			}
			for _, f := range found {
				add(f)
			}
		}
	}
	return allFiles, nil
}

// IsYAML reports whether path has one of the YAML extensions.
func IsYAML(path string) bool {
	ext := filepath.Ext(path)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
