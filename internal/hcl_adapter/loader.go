package hcl_adapter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/nodegraph/internal/config"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

const fileExtension = ".hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL graph loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load reads every .hcl file named by paths, descending into directories,
// and merges their blocks into a single model. Node names must be unique
// across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	if len(paths) == 0 {
		return nil, errors.New("no graph paths given")
	}

	files, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found in %v", fileExtension, paths)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	model := &config.Model{}
	seen := make(map[string]*config.NodeDefinition)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeInto(ctx, model, seen, hclFile.Body, file); err != nil {
			return nil, err
		}
	}

	logger.Debug("HCL loading complete.", "nodes", len(model.Nodes))
	return model, nil
}

// Parse decodes a single graph document held in memory. filename is only
// used in diagnostics.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*config.Model, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	model := &config.Model{}
	if err := l.decodeInto(ctx, model, make(map[string]*config.NodeDefinition), hclFile.Body, filename); err != nil {
		return nil, err
	}
	return model, nil
}

// decodeInto decodes one file body and appends its definitions to model in
// declaration order.
func (l *Loader) decodeInto(ctx context.Context, model *config.Model, seen map[string]*config.NodeDefinition, body hcl.Body, filename string) error {
	var root fileRoot
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	defs := make([]*config.NodeDefinition, 0, len(root.Constants)+len(root.Operations))
	for _, c := range root.Constants {
		def, err := l.translateConstant(c)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}
	for _, op := range root.Operations {
		def, err := l.translateOperation(ctx, op)
		if err != nil {
			return err
		}
		defs = append(defs, def)
	}

	// gohcl groups blocks by type; restore the order they were written in.
	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].DeclRange.Start.Byte < defs[j].DeclRange.Start.Byte
	})

	var diags hcl.Diagnostics
	for _, def := range defs {
		if prev, ok := seen[def.Name]; ok {
			subject := def.DeclRange
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate node name",
				Detail:   fmt.Sprintf("A node named %q was already declared at %s.", def.Name, prev.DeclRange),
				Subject:  &subject,
			})
			continue
		}
		seen[def.Name] = def
		model.Nodes = append(model.Nodes, def)
	}
	if diags.HasErrors() {
		return diags
	}
	return nil
}

func (l *Loader) translateConstant(block *ConstantBlock) (*config.NodeDefinition, error) {
	if block.Value == nil {
		return nil, fmt.Errorf("constant %q: missing required argument \"value\"", block.Name)
	}
	val, diags := block.Value.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("constant %q: %w", block.Name, diags)
	}
	if val.IsNull() {
		return nil, fmt.Errorf("constant %q: value must not be null", block.Name)
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("constant %q: value must be known", block.Name)
	}

	return &config.NodeDefinition{
		Kind:      config.ConstantKind,
		Name:      block.Name,
		Value:     val,
		DeclRange: block.DeclRange,
	}, nil
}

func (l *Loader) translateOperation(ctx context.Context, block *OperationBlock) (*config.NodeDefinition, error) {
	if block.Target == nil {
		return nil, fmt.Errorf("operation %q: missing required argument \"target\"", block.Name)
	}
	target, err := typeExprToCtyType(ctx, block.Target.Expr)
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", block.Name, err)
	}
	if target.Equals(cty.DynamicPseudoType) {
		return nil, fmt.Errorf("operation %q: target must be a concrete type, not any", block.Name)
	}
	if block.Call == "" {
		return nil, fmt.Errorf("operation %q: call must not be empty", block.Name)
	}

	inputs := make([]string, len(block.Inputs))
	copy(inputs, block.Inputs)

	return &config.NodeDefinition{
		Kind:      config.OperationKind,
		Name:      block.Name,
		Target:    target,
		Call:      block.Call,
		Inputs:    inputs,
		DeclRange: block.DeclRange,
	}, nil
}

// findAllHCLFiles expands paths into a flat, de-duplicated list of .hcl files.
// Directories are walked recursively; a path that does not exist is an error.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
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
			if filepath.Ext(path) != fileExtension {
				return nil, fmt.Errorf("graph file %s must have the %s extension", path, fileExtension)
			}
			add(path)
			continue
		}

		found, err := fsutil.FindFilesByExtension(path, fileExtension)
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}
		for _, f := range found {
			add(f)
		}
	}
	return allFiles, nil
}
