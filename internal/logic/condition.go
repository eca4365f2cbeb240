package logic

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// ErrEmptyCondition is returned for a condition node with no recognised form.
var ErrEmptyCondition = errors.New("condition has no all, any, not, field or expr")

// Evaluate reports whether the condition holds for data.
func (c *Condition) Evaluate(data map[string]any) (bool, error) {
	switch {
	case c.Expr != "":
		return c.evaluateExpr(data)
	case c.Field != "":
		return c.evaluateField(data)
	case c.Not != nil:
		ok, err := c.Not.Evaluate(data)
		if err != nil {
			return false, err
		}
		return !ok, nil
	case len(c.All) > 0:
		for i := range c.All {
			ok, err := c.All[i].Evaluate(data)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	case len(c.Any) > 0:
		for i := range c.Any {
			ok, err := c.Any[i].Evaluate(data)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	}
	return false, ErrEmptyCondition
}

func (c *Condition) compileExpr() error {
	program, err := expr.Compile(c.Expr, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compile expr %q: %w", c.Expr, err)
	}
	refs := &refCollector{}
	node := program.Node()
	ast.Walk(&node, refs)

	c.program = program
	c.refs = refs.paths
	return nil
}

// evaluateExpr runs the expression against data. A runtime error while a
// field the expression reads is missing makes the condition false, the same
// as a field comparison on a missing field.
func (c *Condition) evaluateExpr(data map[string]any) (bool, error) {
	if c.program == nil {
		if err := c.compileExpr(); err != nil {
			return false, err
		}
	}

	out, err := expr.Run(c.program, data)
	if err != nil {
		if c.readsMissingField(data) {
			return false, nil
		}
		return false, fmt.Errorf("run expr %q: %w", c.Expr, err)
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("expr %q returned %T, want bool", c.Expr, out)
	}
	return result, nil
}

func (c *Condition) readsMissingField(data map[string]any) bool {
	for _, path := range c.refs {
		if v, ok := Lookup(data, path); !ok || v == nil {
			return true
		}
	}
	return false
}

// refCollector gathers the context paths an expression reads, such as
// "amount" or "order.total".
type refCollector struct {
	paths []string
}

func (r *refCollector) Visit(node *ast.Node) {
	if path, ok := refPath(*node); ok {
		r.paths = append(r.paths, path)
	}
}

func refPath(node ast.Node) (string, bool) {
	switch n := node.(type) {
	case *ast.IdentifierNode:
		return n.Value, true
	case *ast.MemberNode:
		parent, ok := refPath(n.Node)
		if !ok {
			return "", false
		}
		switch p := n.Property.(type) {
		case *ast.StringNode:
			return parent + "." + p.Value, true
		case *ast.IntegerNode:
			return parent + "." + strconv.Itoa(p.Value), true
		}
	}
	return "", false
}

func (c *Condition) evaluateField(data map[string]any) (bool, error) {
	left, present := Lookup(data, c.Field)

	switch c.Op {
	case OpExists:
		return present && left != nil, nil
	case OpNotExists:
		return !present || left == nil, nil
	}

	right := c.Value
	if c.ValueField != "" {
		right, _ = Lookup(data, c.ValueField)
	}

	switch c.Op {
	case OpEq:
		return present && valuesEqual(left, right), nil
	case OpNeq:
		return !present || !valuesEqual(left, right), nil
	case OpGt, OpGte, OpLt, OpLte:
		if !present {
			return false, nil
		}
		cmp, ok := compareOrdered(left, right)
		if !ok {
			return false, nil
		}
		switch c.Op {
		case OpGt:
			return cmp > 0, nil
		case OpGte:
			return cmp >= 0, nil
		case OpLt:
			return cmp < 0, nil
		}
		return cmp <= 0, nil
	case OpIn, OpNotIn:
		list, ok := asList(right)
		if !ok {
			return false, fmt.Errorf("operator %q on field %q requires an array value, got %T", c.Op, c.Field, right)
		}
		found := present && listContains(list, left)
		if c.Op == OpIn {
			return found, nil
		}
		return !found, nil
	case OpContains:
		if !present {
			return false, nil
		}
		if s, ok := left.(string); ok {
			needle, ok := right.(string)
			return ok && strings.Contains(s, needle), nil
		}
		if list, ok := asList(left); ok {
			return listContains(list, right), nil
		}
		if m, ok := left.(map[string]any); ok {
			key, ok := right.(string)
			if !ok {
				return false, nil
			}
			_, found := m[key]
			return found, nil
		}
		return false, nil
	case OpStartsWith, OpEndsWith:
		s, ok := left.(string)
		if !present || !ok {
			return false, nil
		}
		affix, ok := right.(string)
		if !ok {
			return false, nil
		}
		if c.Op == OpStartsWith {
			return strings.HasPrefix(s, affix), nil
		}
		return strings.HasSuffix(s, affix), nil
	}
	return false, fmt.Errorf("unknown operator %q", c.Op)
}
