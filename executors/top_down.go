package executors

import (
	"github.com/reusee/scone/predicates"
)

// TopDown evaluates predicates arriving in pre-order of a function application tree.
// The stack holds open frames; a frame is reduced once it has collected all its arguments.
type TopDown struct {
	executor
}

var _ Executor = new(TopDown)

func NewTopDown(initial WorldState, options ...Option) *TopDown {
	return &TopDown{
		executor: newExecutor(initial, options),
	}
}

func (t *TopDown) Execute(preds []predicates.Predicate, prior *Denotation) (Denotation, error) {
	return t.execute(t.Apply, preds, prior)
}

func (t *TopDown) ExecutePredicate(pred predicates.Predicate, prior *Denotation) (Denotation, error) {
	return t.step(t.Apply, pred, t.start(prior))
}

func (t *TopDown) Finalize(d Denotation) (WorldState, error) {
	return Finalize(d)
}

func (t *TopDown) Apply(pred predicates.Predicate, d Denotation) (Denotation, error) {
	if pred.OpensAction() {
		if err := openAction(pred, pred, &d); err != nil {
			return d, err
		}
		return d, nil
	}

	var ready bool
	var err error

	switch pred.Type() {

	case predicates.TypeColor, predicates.TypeFraction:
		ready, err = t.supply(pred, &d, pred.Name())

	case predicates.TypeNumber:
		ready, err = t.supply(pred, &d, pred.Number())

	case predicates.TypeProperty, predicates.TypeDoubleProperty:
		err = t.open(pred, &d)

	case predicates.TypeBuiltin:
		switch pred.Builtin() {
		case predicates.BuiltinAllObjects:
			ready, err = t.supply(pred, &d, d.world.AllObjects())
		case predicates.BuiltinIndex:
			err = t.open(pred, &d)
		default:
			err = stepErrorf(ErrUnknownPredicate, pred, "cannot apply builtin")
		}

	case predicates.TypeHistorySlot:
		if pred.History() == predicates.HistoryArgument {
			err = t.open(pred, &d)
		} else {
			err = stepErrorf(ErrUnknownPredicate, pred, "invalid history slot")
		}

	default:
		err = stepErrorf(ErrUnknownPredicate, pred, "cannot apply %s predicate", pred.Type())
	}

	if err != nil {
		return d, err
	}
	return t.reduce(d, ready)
}

// reduce evaluates ready frames from the innermost one outwards.
// It returns as soon as an action fires.
func (t *TopDown) reduce(d Denotation, ready bool) (Denotation, error) {
	for ready {
		v, _ := d.pop()
		frame := v.(*Frame)
		pred := frame.Predicate

		var err error
		switch pred.Type() {

		case predicates.TypeProperty:
			var result any
			result, err = join(d.world, pred, frame.Args[0])
			if err == nil {
				ready, err = t.supply(pred, &d, result)
			}

		case predicates.TypeDoubleProperty:
			var result any
			result, err = doubleJoin(d.world, pred, frame.Args[0], frame.Args[1])
			if err == nil {
				ready, err = t.supply(pred, &d, result)
			}

		case predicates.TypeBuiltin:
			objects, ok := asList(frame.Args[0])
			if !ok {
				return d, stepErrorf(ErrInvalidArgument, pred, "expecting object list, got %T", frame.Args[0])
			}
			pos, ok := frame.Args[1].(int)
			if !ok {
				return d, stepErrorf(ErrInvalidArgument, pred, "expecting integer, got %T", frame.Args[1])
			}
			var result any
			result, err = index(pred, objects, pos)
			if err == nil {
				ready, err = t.supply(pred, &d, result)
			}

		case predicates.TypeAction:
			args := newSliceArgs(&frame.Args)
			world, entry, err := d.world.ApplyAction(pred.Arg(), args)
			if err != nil {
				return d, portError(pred, err)
			}
			return t.fire(pred, d, world, entry, args.Consumed(), args.Len()+len(d.stack))

		case predicates.TypeHistorySlot:
			var entry HistoryEntry
			entry, err = lookupHistory(pred, d.history, frame.Args[0].(int))
			if err != nil {
				break
			}
			switch pred.History() {

			case predicates.HistoryReplay:
				err = t.openReplay(pred, &d, entry.Action)
				ready = false

			case predicates.HistoryUndo:
				var action string
				action, err = d.world.ReverseAction(entry.Action)
				if err != nil {
					err = portError(pred, err)
					break
				}
				err = t.openReplay(pred, &d, action)
				ready = false

			case predicates.HistoryArgument:
				var arg any
				arg, err = historyArgument(pred, d.world, entry, pred.Number())
				if err == nil {
					ready, err = t.supply(pred, &d, arg)
				}

			}

		}

		if err != nil {
			return d, err
		}
	}
	return d, nil
}

// check reports whether frame is complete once next is appended.
func (t *TopDown) check(frame *Frame, next any) (bool, error) {
	n := len(frame.Args) + 1
	pred := frame.Predicate
	switch pred.Type() {
	case predicates.TypeProperty:
		return n == 1, nil
	case predicates.TypeDoubleProperty:
		return n == 2, nil
	case predicates.TypeBuiltin:
		return n == 2, nil
	case predicates.TypeHistorySlot:
		if _, ok := next.(int); !ok {
			return false, stepErrorf(ErrInvalidArgument, pred, "expecting integer slot, got %T", next)
		}
		return n == 1, nil
	case predicates.TypeAction:
		ready, err := t.initial.CheckArgument(frame, next)
		if err != nil {
			return false, &Error{
				Kind:      ErrInvalidArgument,
				Predicate: pred.Name(),
				Err:       err,
			}
		}
		return ready, nil
	}
	return false, stepErrorf(ErrInvalidArgument, pred, "not a function")
}

// supply appends a fully evaluated value to the innermost frame.
func (t *TopDown) supply(pred predicates.Predicate, d *Denotation, value any) (bool, error) {
	top, ok := topFrame(d)
	if !ok {
		return false, stepErrorf(ErrInvalidArgument, pred, "no open frame for %v", value)
	}
	ready, err := t.check(top, value)
	if err != nil {
		return false, err
	}
	top.Args = append(top.Args, value)
	return ready, nil
}

// open pushes a function frame nested in the innermost frame.
func (t *TopDown) open(pred predicates.Predicate, d *Denotation) error {
	top, ok := topFrame(d)
	if !ok {
		return stepErrorf(ErrInvalidArgument, pred, "function outside of an action")
	}
	frame := &Frame{
		Predicate: pred,
	}
	if _, err := t.check(top, frame); err != nil {
		return err
	}
	d.push(frame)
	return nil
}

// openReplay opens the action frame of a replayed or reversed history entry.
func (t *TopDown) openReplay(pred predicates.Predicate, d *Denotation, action string) error {
	actionPred, err := predicates.New("A" + action)
	if err != nil || !actionPred.IsAction() {
		return stepErrorf(ErrInvalidArgument, pred, "cannot replay action %q", action)
	}
	return openAction(pred, actionPred, d)
}

// openAction pushes a top-level action frame. Actions cannot nest inside pending frames.
func openAction(pred predicates.Predicate, framePred predicates.Predicate, d *Denotation) error {
	if len(d.stack) > 0 {
		return stepErrorf(ErrMisplacedAction, pred, "%d pending values", len(d.stack))
	}
	d.push(&Frame{
		Predicate: framePred,
	})
	return nil
}

func topFrame(d *Denotation) (*Frame, bool) {
	v, ok := d.Top()
	if !ok {
		return nil, false
	}
	frame, ok := v.(*Frame)
	return frame, ok
}
