package worlds

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/reusee/scone/logs"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// Domain is a world-state model implemented by a Starlark script.
//
// Required script functions:
//
//	parse_state(raw) -> state
//	all_objects(state) -> list
//	join(state, value, prop) -> value
//	double_join(state, value1, value2, prop) -> value
//	apply_action(state, action, args) -> (new_state, consumed, entry_args)
//
// Optional ones:
//
//	reverse_action(action) -> action
//	resolve_argument(state, obj) -> value
//	check_argument(action, args, next) -> bool
//	format_state(state) -> string
//
// all_objects should not fail. A failure is logged and yields an empty list.
type Domain struct {
	filename string
	logger   logs.Logger

	parseState      starlark.Callable
	allObjects      starlark.Callable
	join            starlark.Callable
	doubleJoin      starlark.Callable
	applyAction     starlark.Callable
	reverseAction   starlark.Callable
	resolveArgument starlark.Callable
	checkArgument   starlark.Callable
	formatState     starlark.Callable
}

type Option func(*Domain)

func WithLogger(logger logs.Logger) Option {
	return func(d *Domain) {
		d.logger = logger
	}
}

var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
}

// Load executes a domain script. src is as for starlark.ExecFile: nil reads filename.
func Load(filename string, src any, options ...Option) (*Domain, error) {
	d := &Domain{
		filename: filename,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(d)
	}

	predeclared := starlark.StringDict{
		"struct": starlark.NewBuiltin("struct", starlarkstruct.Make),
		"log": starlarkutil.MakeFunc("log", func(msg string) {
			d.logger.Info(msg, "script", d.filename)
		}),
	}
	globals, err := starlark.ExecFileOptions(fileOptions, d.thread("load"), filename, src, predeclared)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	globals.Freeze()

	for _, fn := range []struct {
		name     string
		target   *starlark.Callable
		optional bool
	}{
		{"parse_state", &d.parseState, false},
		{"all_objects", &d.allObjects, false},
		{"join", &d.join, false},
		{"double_join", &d.doubleJoin, false},
		{"apply_action", &d.applyAction, false},
		{"reverse_action", &d.reverseAction, true},
		{"resolve_argument", &d.resolveArgument, true},
		{"check_argument", &d.checkArgument, true},
		{"format_state", &d.formatState, true},
	} {
		value, ok := globals[fn.name]
		if !ok {
			if fn.optional {
				continue
			}
			return nil, fmt.Errorf("load %s: %s not defined", filename, fn.name)
		}
		callable, ok := value.(starlark.Callable)
		if !ok {
			return nil, fmt.Errorf("load %s: %s is not callable", filename, fn.name)
		}
		*fn.target = callable
	}

	return d, nil
}

func (d *Domain) Filename() string {
	return d.filename
}

func (d *Domain) thread(name string) *starlark.Thread {
	return &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			d.logger.Debug(msg, "script", d.filename)
		},
	}
}

// call invokes a script function and freezes its result, so that world states are never mutated in place.
func (d *Domain) call(fn starlark.Callable, args ...starlark.Value) (starlark.Value, error) {
	ret, err := starlark.Call(d.thread(fn.Name()), fn, starlark.Tuple(args), nil)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			d.logger.Debug("script error", "function", fn.Name(), "backtrace", evalErr.Backtrace())
		}
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	ret.Freeze()
	return ret, nil
}

// ParseState builds the world state described by raw.
func (d *Domain) ParseState(raw string) (*World, error) {
	state, err := d.call(d.parseState, starlark.String(raw))
	if err != nil {
		return nil, err
	}
	return d.NewWorld(state), nil
}

func (d *Domain) NewWorld(state starlark.Value) *World {
	state.Freeze()
	return &World{
		domain: d,
		state:  state,
	}
}
