// This file contains the logic for parsing HCL type expressions (e.g., `string`,
// `list(number)`) into their corresponding cty.Type objects.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToCtyType converts an HCL type expression into its cty.Type
// equivalent. Supported forms are the primitive keywords `string`, `number`,
// `bool` and `any`, and the constructors `list`, `map`, `set`, `tuple` and
// `object`.
func typeExprToCtyType(ctx context.Context, expr hcl.Expression) (cty.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Type expression is nil, defaulting to any.")
		return cty.DynamicPseudoType, nil
	}

	ty, diags := typeexpr.TypeConstraint(expr)
	if diags.HasErrors() {
		return cty.DynamicPseudoType, fmt.Errorf("invalid type expression: %w", diags)
	}
	if ty.HasDynamicTypes() && !ty.Equals(cty.DynamicPseudoType) {
		return cty.DynamicPseudoType, fmt.Errorf("invalid type expression: collection and structural types cannot contain 'any', got %s", typeexpr.TypeString(ty))
	}

	logger.Debug("Parsed type expression.", "type", typeexpr.TypeString(ty))
	return ty, nil
}
