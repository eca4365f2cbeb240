package logic

import "fmt"

// ResolvedAction is an action whose parameters have been resolved against the
// event context.
type ResolvedAction struct {
	Name   string         `json:"name"`
	Params map[string]any `json:"params"`
}

// Result is the outcome of evaluating a logic tree.
type Result struct {
	// Matched reports whether the top-level condition held.
	Matched bool
	Actions []ResolvedAction
}

// Evaluate walks the tree against data and collects the actions of every
// branch taken, in document order.
func (l *Logic) Evaluate(data map[string]any) (Result, error) {
	matched := true
	if l.When != nil {
		ok, err := l.When.Evaluate(data)
		if err != nil {
			return Result{}, fmt.Errorf("when: %w", err)
		}
		matched = ok
	}

	branch, name := l.Then, "then"
	if !matched {
		branch, name = l.Else, "else"
	}

	actions := make([]ResolvedAction, 0, len(branch))
	actions, err := collect(branch, data, name, actions)
	if err != nil {
		return Result{}, err
	}
	return Result{Matched: matched, Actions: actions}, nil
}

func collect(steps []Step, data map[string]any, path string, out []ResolvedAction) ([]ResolvedAction, error) {
	for i, step := range steps {
		stepPath := fmt.Sprintf("%s[%d]", path, i)

		if step.IsAction() {
			params := step.Params
			if params == nil {
				params = map[string]any{}
			}
			out = append(out, ResolvedAction{
				Name:   step.Action,
				Params: ResolveParams(params, data),
			})
			continue
		}

		taken := true
		if step.When != nil {
			ok, err := step.When.Evaluate(data)
			if err != nil {
				return nil, fmt.Errorf("%s.when: %w", stepPath, err)
			}
			taken = ok
		}

		var err error
		if taken {
			out, err = collect(step.Then, data, stepPath+".then", out)
		} else {
			out, err = collect(step.Else, data, stepPath+".else", out)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
