package worlds

import (
	"fmt"

	"github.com/reusee/scone/executors"
	"go.starlark.net/starlark"
)

// World is an immutable world state of a scripted domain.
type World struct {
	domain *Domain
	state  starlark.Value
}

var _ executors.WorldState = new(World)

func (w *World) Domain() *Domain {
	return w.domain
}

func (w *World) State() starlark.Value {
	return w.state
}

func (w *World) String() string {
	if w.domain.formatState == nil {
		return w.state.String()
	}
	ret, err := w.domain.call(w.domain.formatState, w.state)
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	if s, ok := starlark.AsString(ret); ok {
		return s
	}
	return ret.String()
}

func (w *World) Equal(other *World) (bool, error) {
	return starlark.Equal(w.state, other.state)
}

// AllObjects returns an empty list if the script fails, logging the error.
func (w *World) AllObjects() []any {
	ret, err := w.domain.call(w.domain.allObjects, w.state)
	if err != nil {
		w.domain.logger.Error("all objects", "script", w.domain.filename, "error", err)
		return []any{}
	}
	objects, err := fromStarlarkList(ret)
	if err != nil {
		w.domain.logger.Error("all objects", "script", w.domain.filename, "error", err)
		return []any{}
	}
	return objects
}

func (w *World) ApplyJoin(value any, property string) (any, error) {
	v, err := toStarlark(value)
	if err != nil {
		return nil, err
	}
	ret, err := w.domain.call(w.domain.join, w.state, v, starlark.String(property))
	if err != nil {
		return nil, err
	}
	return fromStarlark(ret)
}

func (w *World) ApplyDoubleJoin(value1, value2 any, property string) (any, error) {
	v1, err := toStarlark(value1)
	if err != nil {
		return nil, err
	}
	v2, err := toStarlark(value2)
	if err != nil {
		return nil, err
	}
	ret, err := w.domain.call(w.domain.doubleJoin, w.state, v1, v2, starlark.String(property))
	if err != nil {
		return nil, err
	}
	return fromStarlark(ret)
}

// ApplyAction hands every available argument to the script, bottom to top.
// The script reports how many of the topmost ones it consumed.
func (w *World) ApplyAction(action string, args executors.Args) (executors.WorldState, executors.HistoryEntry, error) {
	n := args.Len()
	available := make([]any, n)
	for i := range n {
		available[n-1-i], _ = args.Peek(i)
	}
	list, err := toStarlark(available)
	if err != nil {
		return nil, executors.HistoryEntry{}, err
	}

	ret, err := w.domain.call(w.domain.applyAction, w.state, starlark.String(action), list)
	if err != nil {
		return nil, executors.HistoryEntry{}, err
	}
	tuple, ok := ret.(starlark.Tuple)
	if !ok || len(tuple) != 3 {
		return nil, executors.HistoryEntry{}, fmt.Errorf("apply_action: expecting (state, consumed, args), got %s", ret)
	}
	var consumed int
	if err := starlark.AsInt(tuple[1], &consumed); err != nil {
		return nil, executors.HistoryEntry{}, fmt.Errorf("apply_action: consumed: %w", err)
	}
	if consumed < 0 || consumed > n {
		return nil, executors.HistoryEntry{}, fmt.Errorf("apply_action: consumed %d of %d arguments", consumed, n)
	}

	popped, err := executors.PopN(args, consumed)
	if err != nil {
		return nil, executors.HistoryEntry{}, err
	}
	entryArgs := popped
	if tuple[2] != starlark.None {
		entryArgs, err = fromStarlarkList(tuple[2])
		if err != nil {
			return nil, executors.HistoryEntry{}, fmt.Errorf("apply_action: entry args: %w", err)
		}
	}

	return w.domain.NewWorld(tuple[0]), executors.HistoryEntry{
		Action: action,
		Args:   entryArgs,
	}, nil
}

func (w *World) ReverseAction(action string) (string, error) {
	if w.domain.reverseAction == nil {
		return "", fmt.Errorf("no reverse action of %s", action)
	}
	ret, err := w.domain.call(w.domain.reverseAction, starlark.String(action))
	if err != nil {
		return "", err
	}
	reversed, ok := starlark.AsString(ret)
	if !ok {
		return "", fmt.Errorf("reverse_action: expecting string, got %s", ret.Type())
	}
	return reversed, nil
}

func (w *World) ResolveArgument(obj any) (any, error) {
	if w.domain.resolveArgument == nil {
		return obj, nil
	}
	v, err := toStarlark(obj)
	if err != nil {
		return nil, err
	}
	ret, err := w.domain.call(w.domain.resolveArgument, w.state, v)
	if err != nil {
		return nil, err
	}
	return fromStarlark(ret)
}

func (w *World) CheckArgument(frame *executors.Frame, next any) (bool, error) {
	if w.domain.checkArgument == nil {
		return false, fmt.Errorf("%s does not define check_argument", w.domain.filename)
	}
	args, err := toStarlark(frame.Args)
	if err != nil {
		return false, err
	}
	v, err := toStarlark(next)
	if err != nil {
		return false, err
	}
	ret, err := w.domain.call(w.domain.checkArgument, starlark.String(frame.Predicate.Arg()), args, v)
	if err != nil {
		return false, err
	}
	ready, ok := ret.(starlark.Bool)
	if !ok {
		return false, fmt.Errorf("check_argument: expecting bool, got %s", ret.Type())
	}
	return bool(ready), nil
}
