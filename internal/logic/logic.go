// Package logic parses and evaluates the condition/action trees stored on
// workflow definitions.
//
// A tree has the shape
//
//	{"when": <condition>, "then": [<step>...], "else": [<step>...]}
//
// where a step is either an action {"action": "notify-ops", "params": {...}} or a
// nested branch with its own when/then/else. Conditions combine field
// comparisons and expr-lang expressions with all/any/not.
package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr/vm"
	"github.com/mitchellh/mapstructure"
	"github.com/xeipuuv/gojsonschema"
)

// ErrEmptyLogic is returned when a definition carries no logic blob.
var ErrEmptyLogic = errors.New("logic is empty")

// SchemaError lists the JSON schema violations of a logic blob.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "logic does not match schema: " + strings.Join(e.Violations, "; ")
}

// Logic is a parsed condition/action tree.
type Logic struct {
	When *Condition `mapstructure:"when"`
	Then []Step     `mapstructure:"then"`
	Else []Step     `mapstructure:"else"`
}

// Step is either an action or a nested branch.
type Step struct {
	Action string         `mapstructure:"action"`
	Params map[string]any `mapstructure:"params"`

	When *Condition `mapstructure:"when"`
	Then []Step     `mapstructure:"then"`
	Else []Step     `mapstructure:"else"`
}

// IsAction reports whether the step emits an action.
func (s Step) IsAction() bool {
	return s.Action != ""
}

// Condition is one node of a condition tree. Exactly one form is populated.
type Condition struct {
	All []Condition `mapstructure:"all"`
	Any []Condition `mapstructure:"any"`
	Not *Condition  `mapstructure:"not"`

	Field      string `mapstructure:"field"`
	Op         string `mapstructure:"op"`
	Value      any    `mapstructure:"value"`
	ValueField string `mapstructure:"value_field"`

	Expr string `mapstructure:"expr"`

	program *vm.Program
	refs    []string
}

// Parse validates raw against the logic schema, decodes it and compiles any
// expr conditions.
func Parse(raw json.RawMessage) (*Logic, error) {
	if len(strings.TrimSpace(string(raw))) == 0 || string(raw) == "null" {
		return nil, ErrEmptyLogic
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode logic: %w", err)
	}

	result, err := compiledSchema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate logic: %w", err)
	}
	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return nil, &SchemaError{Violations: violations}
	}

	var l Logic
	if err := mapstructure.Decode(doc, &l); err != nil {
		return nil, fmt.Errorf("decode logic: %w", err)
	}

	if err := l.compile(); err != nil {
		return nil, err
	}
	return &l, nil
}

func (l *Logic) compile() error {
	if l.When != nil {
		if err := l.When.compile(); err != nil {
			return err
		}
	}
	if err := compileSteps(l.Then); err != nil {
		return err
	}
	return compileSteps(l.Else)
}

func compileSteps(steps []Step) error {
	for i := range steps {
		if steps[i].When != nil {
			if err := steps[i].When.compile(); err != nil {
				return err
			}
		}
		if err := compileSteps(steps[i].Then); err != nil {
			return err
		}
		if err := compileSteps(steps[i].Else); err != nil {
			return err
		}
	}
	return nil
}

func (c *Condition) compile() error {
	switch {
	case c.Expr != "":
		return c.compileExpr()
	case c.Not != nil:
		return c.Not.compile()
	default:
		for i := range c.All {
			if err := c.All[i].compile(); err != nil {
				return err
			}
		}
		for i := range c.Any {
			if err := c.Any[i].compile(); err != nil {
				return err
			}
		}
	}
	return nil
}
