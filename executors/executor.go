package executors

import (
	"log/slog"
	"reflect"

	"github.com/reusee/scone/logs"
	"github.com/reusee/scone/predicates"
)

type Executor interface {
	// Execute applies predicates left to right, continuing from prior if it is not nil.
	Execute(preds []predicates.Predicate, prior *Denotation) (Denotation, error)
	ExecutePredicate(pred predicates.Predicate, prior *Denotation) (Denotation, error)
	// Apply applies one predicate to d, taking ownership of d's stack.
	Apply(pred predicates.Predicate, d Denotation) (Denotation, error)
	Finalize(d Denotation) (WorldState, error)
}

type Option func(*executor)

func WithLogger(logger logs.Logger) Option {
	return func(e *executor) {
		e.logger = logger
	}
}

// WithDebug enables trace logging of every applied predicate.
func WithDebug(debug bool) Option {
	return func(e *executor) {
		e.debug = debug
	}
}

// WithStrictActions makes an action fail if it leaves unconsumed arguments behind.
func WithStrictActions(strict bool) Option {
	return func(e *executor) {
		e.strict = strict
	}
}

type executor struct {
	initial WorldState
	logger  logs.Logger
	debug   bool
	strict  bool
}

func newExecutor(initial WorldState, options []Option) executor {
	e := executor{
		initial: initial,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, option := range options {
		option(&e)
	}
	return e
}

func (e *executor) start(prior *Denotation) Denotation {
	if prior == nil {
		return NewDenotation(e.initial)
	}
	return prior.Fork()
}

func (e *executor) execute(
	apply func(predicates.Predicate, Denotation) (Denotation, error),
	preds []predicates.Predicate,
	prior *Denotation,
) (Denotation, error) {
	d := e.start(prior)
	if e.debug {
		e.logger.Debug("execute", "predicates", preds, "denotation", d)
	}
	for _, pred := range preds {
		var err error
		d, err = e.step(apply, pred, d)
		if err != nil {
			return Denotation{}, err
		}
	}
	return d, nil
}

// step applies one predicate, tracing the result if debug is enabled.
func (e *executor) step(
	apply func(predicates.Predicate, Denotation) (Denotation, error),
	pred predicates.Predicate,
	d Denotation,
) (Denotation, error) {
	next, err := apply(pred, d)
	if err != nil {
		if e.debug {
			e.logger.Debug("apply failed", "predicate", pred, "error", err)
		}
		return Denotation{}, err
	}
	if e.debug {
		e.logger.Debug("apply", "predicate", pred, "denotation", next)
	}
	return next, nil
}

// fire records an executed action. residue is the number of arguments left unconsumed.
func (e *executor) fire(
	pred predicates.Predicate,
	d Denotation,
	world WorldState,
	entry HistoryEntry,
	consumed int,
	residue int,
) (Denotation, error) {
	if world == nil {
		return Denotation{}, stepErrorf(ErrInvalidArgument, pred, "action %s returned no state", entry.Action)
	}
	if e.strict && residue > 0 {
		return Denotation{}, stepErrorf(ErrUnconsumedArguments, pred, "%d left after %s", residue, entry.Action)
	}
	return d.derive(world, entry, consumed, residue), nil
}

// Finalize returns the world state of a complete program.
func Finalize(d Denotation) (WorldState, error) {
	if len(d.stack) > 0 {
		return nil, &Error{
			Kind: ErrIncompleteProgram,
			Msg:  "stack not empty",
		}
	}
	return d.world, nil
}

func join(world WorldState, pred predicates.Predicate, value any) (any, error) {
	result, err := world.ApplyJoin(value, pred.Arg())
	if err != nil {
		return nil, portError(pred, err)
	}
	if isEmpty(result) {
		return nil, stepErrorf(ErrEmptyJoinResult, pred, "%v", value)
	}
	return result, nil
}

func doubleJoin(world WorldState, pred predicates.Predicate, value1, value2 any) (any, error) {
	result, err := world.ApplyDoubleJoin(value1, value2, pred.Arg())
	if err != nil {
		return nil, portError(pred, err)
	}
	if isEmpty(result) {
		return nil, stepErrorf(ErrEmptyJoinResult, pred, "%v %v", value1, value2)
	}
	return result, nil
}

func isEmpty(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	}
	value := reflect.ValueOf(v)
	switch value.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return value.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return value.IsNil()
	}
	return false
}

func asList(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return v, true
	case string:
		return nil, false
	}
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Slice && value.Kind() != reflect.Array {
		return nil, false
	}
	ret := make([]any, value.Len())
	for i := range ret {
		ret[i] = value.Index(i).Interface()
	}
	return ret, true
}

// position resolves a logical-form position against a sequence of length n:
// positive positions are 1-based, non-positive ones count from the end with 0 being the first element.
func position(pos int, n int) (int, bool) {
	idx := pos - 1
	if pos <= 0 {
		idx = pos
		if idx < 0 {
			idx += n
		}
	}
	if idx < 0 || idx >= n {
		return 0, false
	}
	return idx, true
}

func index(pred predicates.Predicate, objects []any, pos int) (any, error) {
	idx, ok := position(pos, len(objects))
	if !ok {
		return nil, stepErrorf(ErrInvalidArgument, pred, "position %d out of %d objects", pos, len(objects))
	}
	return objects[idx], nil
}

func lookupHistory(pred predicates.Predicate, history []HistoryEntry, pos int) (HistoryEntry, error) {
	idx, ok := position(pos, len(history))
	if !ok {
		return HistoryEntry{}, stepErrorf(ErrInvalidArgument, pred, "history position %d out of %d entries", pos, len(history))
	}
	return history[idx], nil
}

// historyArgument returns the k-th slot of an entry, resolving domain objects to presentable values.
func historyArgument(pred predicates.Predicate, world WorldState, entry HistoryEntry, k int) (any, error) {
	arg, ok := entry.Slot(k)
	if !ok {
		return nil, stepErrorf(ErrInvalidArgument, pred, "no slot %d in %v", k, entry)
	}
	switch arg.(type) {
	case int, string:
		return arg, nil
	}
	resolved, err := world.ResolveArgument(arg)
	if err != nil {
		return nil, portError(pred, err)
	}
	return resolved, nil
}
