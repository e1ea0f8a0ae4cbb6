package builder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/nodegraph/internal/capability"
	"github.com/specialistvlad/nodegraph/internal/config"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/specialistvlad/nodegraph/internal/dag"
	"github.com/specialistvlad/nodegraph/internal/graph"
	"github.com/specialistvlad/nodegraph/internal/node"
)

// Build constructs a graph from a config model, resolving capabilities in
// reg. The returned error wraps hcl.Diagnostics when the model is invalid.
func Build(ctx context.Context, model *config.Model, reg *capability.Registry) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "definitions", len(model.Nodes))

	topo, caps, diags := link(model, reg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to build graph: %w", diags)
	}
	logger.Debug("Build: Node linking complete.")

	order, err := topo.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	logger.Debug("Build: Cycle detection passed.")

	defs := make(map[string]*config.NodeDefinition, len(model.Nodes))
	for _, def := range model.Nodes {
		defs[def.Name] = def
	}

	built := make(map[string]node.Node, len(order))
	var warnings hcl.Diagnostics
	for _, name := range order {
		def := defs[name]
		n, nodeDiags := construct(ctx, def, caps[name], built)
		warnings = append(warnings, withSubject(nodeDiags, def.DeclRange)...)
		built[name] = n

		if logger.Enabled(ctx, slog.LevelDebug) {
			deps, _ := topo.Dependencies(name)
			dependents, _ := topo.Dependents(name)
			logger.Debug("Build: Node constructed.", "name", name, "kind", def.Kind.String(), "inputs", deps, "consumers", dependents)
		}
	}

	g := graph.New()
	for _, def := range model.Nodes {
		if err := g.Add(built[def.Name]); err != nil {
			return nil, fmt.Errorf("failed to build graph: %w", err)
		}
	}
	g.AddWarnings(warnings)

	logger.Info("Build: Graph construction successful.", "nodes", g.Len(), "sinks", topo.Sinks(), "warnings", len(warnings))
	return g, nil
}

// link records every definition and edge in a dag and resolves the
// capability of each operation. All problems are collected before returning.
func link(model *config.Model, reg *capability.Registry) (*dag.Graph, map[string]*capability.Capability, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	topo := dag.New()
	caps := make(map[string]*capability.Capability)

	for _, def := range model.Nodes {
		if topo.Has(def.Name) {
			diags = diags.Append(errorAt(def, "Duplicate node name",
				fmt.Sprintf("A node named %q was already declared.", def.Name)))
			continue
		}
		topo.AddNode(def.Name)
	}
	if diags.HasErrors() {
		return nil, nil, diags
	}

	for _, def := range model.Nodes {
		if def.Kind != config.OperationKind {
			continue
		}

		c, ok := reg.Lookup(def.Target, def.Call)
		if !ok {
			diags = diags.Append(errorAt(def, "Unknown capability",
				fmt.Sprintf("No capability %q is registered for target type %s. Available capabilities:\n  %s",
					def.Call, def.Target.FriendlyName(), strings.Join(reg.Names(), "\n  "))))
		} else {
			caps[def.Name] = c
		}

		for _, input := range def.Inputs {
			switch {
			case input == def.Name:
				diags = diags.Append(errorAt(def, "Self-referencing node",
					fmt.Sprintf("Node %q lists itself as an input.", def.Name)))
			case !topo.Has(input):
				diags = diags.Append(errorAt(def, "Reference to undeclared node",
					fmt.Sprintf("Node %q has an input %q, which is not declared.", def.Name, input)))
			default:
				// Both ends exist and differ, so AddEdge cannot fail.
				_ = topo.AddEdge(input, def.Name)
			}
		}
	}
	return topo, caps, diags
}

// construct builds a single node. Every input of def is already in built.
func construct(ctx context.Context, def *config.NodeDefinition, c *capability.Capability, built map[string]node.Node) (node.Node, hcl.Diagnostics) {
	if def.Kind == config.ConstantKind {
		return node.NewConstant(def.Value, def.Name), nil
	}

	inputs := make([]node.Node, 0, len(def.Inputs))
	for _, name := range def.Inputs {
		inputs = append(inputs, built[name])
	}
	return node.NewOperation(ctx, c, def.Target, def.Name, inputs...)
}

func errorAt(def *config.NodeDefinition, summary, detail string) *hcl.Diagnostic {
	subject := def.DeclRange
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  &subject,
	}
}

// withSubject points diagnostics that lack a location at rng.
func withSubject(diags hcl.Diagnostics, rng hcl.Range) hcl.Diagnostics {
	for _, d := range diags {
		if d.Subject == nil {
			r := rng
			d.Subject = &r
		}
	}
	return diags
}
