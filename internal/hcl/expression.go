package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/compflat/internal/formula"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// timeSymbol is the bare identifier that denotes simulation time.
const timeSymbol = "time"

var binaryKinds = map[*hclsyntax.Operation]formula.Kind{
	hclsyntax.OpLogicalOr:          formula.KindOr,
	hclsyntax.OpLogicalAnd:         formula.KindAnd,
	hclsyntax.OpEqual:              formula.KindEq,
	hclsyntax.OpNotEqual:           formula.KindNeq,
	hclsyntax.OpGreaterThan:        formula.KindGt,
	hclsyntax.OpGreaterThanOrEqual: formula.KindGeq,
	hclsyntax.OpLessThan:           formula.KindLt,
	hclsyntax.OpLessThanOrEqual:    formula.KindLeq,
	hclsyntax.OpAdd:                formula.KindPlus,
	hclsyntax.OpSubtract:           formula.KindMinus,
	hclsyntax.OpMultiply:           formula.KindTimes,
	hclsyntax.OpDivide:             formula.KindDivide,
}

// isAbsent reports whether expr is the null placeholder gohcl assigns to an
// hcl.Expression field whose attribute was not written.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	if _, ok := expr.(hclsyntax.Expression); ok {
		return false
	}
	v, diags := expr.Value(nil)
	return !diags.HasErrors() && v.IsNull()
}

// convertMath turns a native HCL expression into a formula tree. A missing
// attribute yields nil, or an error when required is set.
func convertMath(expr hcl.Expression, attr string, required bool) (*formula.Node, error) {
	if isAbsent(expr) {
		if !required {
			return nil, nil
		}
		if expr == nil {
			return nil, fmt.Errorf("attribute %q is required", attr)
		}
		return nil, fmt.Errorf("%s: attribute %q is required", expr.Range(), attr)
	}
	syntax, ok := expr.(hclsyntax.Expression)
	if !ok {
		return nil, fmt.Errorf("%s: %q must be a native HCL expression", expr.Range(), attr)
	}
	return toFormula(syntax)
}

// ParseFormula parses a standalone expression in document syntax.
func ParseFormula(src string) (*formula.Node, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "formula", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	return toFormula(expr)
}

func toFormula(expr hclsyntax.Expression) (*formula.Node, error) {
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return toFormula(e.Expression)

	case *hclsyntax.LiteralValueExpr:
		return literal(e.Val, e.SrcRange)

	case *hclsyntax.ScopeTraversalExpr:
		if len(e.Traversal) != 1 {
			return nil, fmt.Errorf("%s: attribute and index access are not supported in math", e.SrcRange)
		}
		name := e.Traversal.RootName()
		if name == timeSymbol {
			return formula.Time(), nil
		}
		return formula.Name(name), nil

	case *hclsyntax.UnaryOpExpr:
		operand, err := toFormula(e.Val)
		if err != nil {
			return nil, err
		}
		if e.Op == hclsyntax.OpLogicalNot {
			return formula.Op(formula.KindNot, operand), nil
		}
		if operand.Kind == formula.KindNumber {
			return formula.Number(-operand.Value), nil
		}
		return formula.Op(formula.KindNegate, operand), nil

	case *hclsyntax.BinaryOpExpr:
		lhs, err := toFormula(e.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := toFormula(e.RHS)
		if err != nil {
			return nil, err
		}
		if e.Op == hclsyntax.OpModulo {
			return formula.Call("rem", lhs, rhs), nil
		}
		kind, ok := binaryKinds[e.Op]
		if !ok {
			return nil, fmt.Errorf("%s: unsupported operator", e.SrcRange)
		}
		return formula.Op(kind, lhs, rhs), nil

	case *hclsyntax.ConditionalExpr:
		cond, err := toFormula(e.Condition)
		if err != nil {
			return nil, err
		}
		then, err := toFormula(e.TrueResult)
		if err != nil {
			return nil, err
		}
		otherwise, err := toFormula(e.FalseResult)
		if err != nil {
			return nil, err
		}
		return formula.Piecewise(then, cond, otherwise), nil

	case *hclsyntax.FunctionCallExpr:
		if e.ExpandFinal {
			return nil, fmt.Errorf("%s: argument expansion is not supported in math", e.NameRange)
		}
		args := make([]*formula.Node, 0, len(e.Args))
		for _, a := range e.Args {
			n, err := toFormula(a)
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		}
		switch e.Name {
		case "delay":
			if len(args) != 2 {
				return nil, fmt.Errorf("%s: delay takes exactly two arguments", e.NameRange)
			}
			return formula.Delay(args[0], args[1]), nil
		case "pow":
			if len(args) != 2 {
				return nil, fmt.Errorf("%s: pow takes exactly two arguments", e.NameRange)
			}
			return formula.Op(formula.KindPower, args[0], args[1]), nil
		}
		return formula.Call(e.Name, args...), nil
	}

	return nil, fmt.Errorf("%s: unsupported expression in math", expr.Range())
}

func literal(v cty.Value, rng hcl.Range) (*formula.Node, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("%s: null literal in math", rng)
	}
	switch v.Type() {
	case cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("%s: %w", rng, err)
		}
		return formula.Number(f), nil
	case cty.Bool:
		return formula.Boolean(v.True()), nil
	}
	return nil, fmt.Errorf("%s: literal of type %s is not allowed in math", rng, v.Type().FriendlyName())
}
