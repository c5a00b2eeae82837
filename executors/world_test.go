package executors

import (
	"fmt"
	"slices"
	"strings"
)

type beaker struct {
	Pos     int
	Content string
}

// testWorld is a row of beakers holding colored liquid units, bottom to top.
type testWorld struct {
	beakers []string
}

var _ WorldState = new(testWorld)

func newTestWorld(beakers ...string) *testWorld {
	return &testWorld{
		beakers: beakers,
	}
}

func (w *testWorld) String() string {
	return strings.Join(w.beakers, "|")
}

func (w *testWorld) beaker(i int) beaker {
	return beaker{
		Pos:     i + 1,
		Content: w.beakers[i],
	}
}

func (w *testWorld) AllObjects() []any {
	ret := make([]any, len(w.beakers))
	for i := range w.beakers {
		ret[i] = w.beaker(i)
	}
	return ret
}

func (w *testWorld) ApplyJoin(value any, property string) (any, error) {
	if property != "Color" {
		return nil, fmt.Errorf("unknown property: %s", property)
	}
	color, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("bad color: %v", value)
	}
	ret := []any{}
	for i, content := range w.beakers {
		if content != "" && strings.Trim(content, color) == "" {
			ret = append(ret, w.beaker(i))
		}
	}
	return ret, nil
}

func (w *testWorld) ApplyDoubleJoin(value1, value2 any, property string) (any, error) {
	if property != "ColorAmount" {
		return nil, fmt.Errorf("unknown property: %s", property)
	}
	amount, ok := value2.(int)
	if !ok {
		return nil, fmt.Errorf("bad amount: %v", value2)
	}
	colored, err := w.ApplyJoin(value1, "Color")
	if err != nil {
		return nil, err
	}
	ret := []any{}
	for _, b := range colored.([]any) {
		if len(b.(beaker).Content) == amount {
			ret = append(ret, b)
		}
	}
	return ret, nil
}

func (w *testWorld) ApplyAction(action string, args Args) (WorldState, HistoryEntry, error) {
	next := &testWorld{
		beakers: slices.Clone(w.beakers),
	}
	switch action {

	case "Pour", "Unpour":
		values, err := PopN(args, 2)
		if err != nil {
			return nil, HistoryEntry{}, err
		}
		from, ok1 := values[0].(beaker)
		to, ok2 := values[1].(beaker)
		if !ok1 || !ok2 {
			return nil, HistoryEntry{}, fmt.Errorf("bad arguments: %v", values)
		}
		if action == "Unpour" {
			from, to = to, from
		}
		next.beakers[to.Pos-1] += next.beakers[from.Pos-1]
		next.beakers[from.Pos-1] = ""
		return next, HistoryEntry{
			Action: action,
			Args:   values,
		}, nil

	case "Drain":
		values, err := PopN(args, 2)
		if err != nil {
			return nil, HistoryEntry{}, err
		}
		b, ok1 := values[0].(beaker)
		amount, ok2 := values[1].(int)
		if !ok1 || !ok2 {
			return nil, HistoryEntry{}, fmt.Errorf("bad arguments: %v", values)
		}
		content := next.beakers[b.Pos-1]
		next.beakers[b.Pos-1] = content[:max(0, len(content)-amount)]
		return next, HistoryEntry{
			Action: action,
			Args:   values,
		}, nil

	case "Noop":
		return next, HistoryEntry{
			Action: action,
		}, nil

	}
	return nil, HistoryEntry{}, fmt.Errorf("unknown action: %s", action)
}

func (w *testWorld) ReverseAction(action string) (string, error) {
	switch action {
	case "Pour":
		return "Unpour", nil
	case "Unpour":
		return "Pour", nil
	}
	return "", fmt.Errorf("no reverse of %s", action)
}

func (w *testWorld) ResolveArgument(obj any) (any, error) {
	b, ok := obj.(beaker)
	if !ok {
		return nil, fmt.Errorf("not an object: %v", obj)
	}
	return w.beaker(b.Pos - 1), nil
}

func (w *testWorld) CheckArgument(frame *Frame, next any) (bool, error) {
	n := len(frame.Args) + 1
	isBeaker := func(v any) bool {
		switch v.(type) {
		case beaker, *Frame:
			return true
		}
		return false
	}
	switch action := frame.Predicate.Arg(); action {
	case "Pour", "Unpour":
		if n > 2 || !isBeaker(next) {
			return false, fmt.Errorf("bad argument %d of %s: %v", n, action, next)
		}
		return n == 2, nil
	case "Drain":
		switch n {
		case 1:
			if !isBeaker(next) {
				return false, fmt.Errorf("bad beaker: %v", next)
			}
			return false, nil
		case 2:
			switch next.(type) {
			case int, *Frame:
				return true, nil
			}
			return false, fmt.Errorf("bad amount: %v", next)
		}
		return false, fmt.Errorf("too many arguments")
	case "Noop":
		return true, nil
	default:
		return false, fmt.Errorf("unknown action: %s", action)
	}
}
