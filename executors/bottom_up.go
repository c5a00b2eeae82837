package executors

import (
	"github.com/reusee/scone/predicates"
)

// BottomUp evaluates predicates in postfix order, reducing each one against the stack immediately.
type BottomUp struct {
	executor
}

var _ Executor = new(BottomUp)

func NewBottomUp(initial WorldState, options ...Option) *BottomUp {
	return &BottomUp{
		executor: newExecutor(initial, options),
	}
}

func (b *BottomUp) Execute(preds []predicates.Predicate, prior *Denotation) (Denotation, error) {
	return b.execute(b.Apply, preds, prior)
}

func (b *BottomUp) ExecutePredicate(pred predicates.Predicate, prior *Denotation) (Denotation, error) {
	return b.step(b.Apply, pred, b.start(prior))
}

func (b *BottomUp) Finalize(d Denotation) (WorldState, error) {
	return Finalize(d)
}

func (b *BottomUp) Apply(pred predicates.Predicate, d Denotation) (Denotation, error) {
	switch pred.Type() {

	case predicates.TypeColor, predicates.TypeFraction:
		d.push(pred.Name())
		return d, nil

	case predicates.TypeNumber:
		d.push(pred.Number())
		return d, nil

	case predicates.TypeProperty:
		value, err := popValue(pred, &d)
		if err != nil {
			return d, err
		}
		result, err := join(d.world, pred, value)
		if err != nil {
			return d, err
		}
		d.push(result)
		return d, nil

	case predicates.TypeDoubleProperty:
		value2, err := popValue(pred, &d)
		if err != nil {
			return d, err
		}
		value1, err := popValue(pred, &d)
		if err != nil {
			return d, err
		}
		result, err := doubleJoin(d.world, pred, value1, value2)
		if err != nil {
			return d, err
		}
		d.push(result)
		return d, nil

	case predicates.TypeAction:
		return b.act(pred, pred.Arg(), d)

	case predicates.TypeBuiltin:
		switch pred.Builtin() {

		case predicates.BuiltinAllObjects:
			d.push(d.world.AllObjects())
			return d, nil

		case predicates.BuiltinIndex:
			pos, err := popInt(pred, &d)
			if err != nil {
				return d, err
			}
			value, err := popValue(pred, &d)
			if err != nil {
				return d, err
			}
			objects, ok := asList(value)
			if !ok {
				return d, stepErrorf(ErrInvalidArgument, pred, "expecting object list, got %T", value)
			}
			result, err := index(pred, objects, pos)
			if err != nil {
				return d, err
			}
			d.push(result)
			return d, nil

		}

	case predicates.TypeHistorySlot:
		if pred.History() == predicates.HistoryInvalid {
			break
		}
		pos, err := popInt(pred, &d)
		if err != nil {
			return d, err
		}
		entry, err := lookupHistory(pred, d.history, pos)
		if err != nil {
			return d, err
		}

		switch pred.History() {

		case predicates.HistoryReplay:
			return b.act(pred, entry.Action, d)

		case predicates.HistoryUndo:
			action, err := d.world.ReverseAction(entry.Action)
			if err != nil {
				return d, portError(pred, err)
			}
			return b.act(pred, action, d)

		case predicates.HistoryArgument:
			arg, err := historyArgument(pred, d.world, entry, pred.Number())
			if err != nil {
				return d, err
			}
			d.push(arg)
			return d, nil

		}

	}

	return d, stepErrorf(ErrUnknownPredicate, pred, "cannot apply %s predicate", pred.Type())
}

// act hands the live stack to the world state, which pops the arguments it needs.
func (b *BottomUp) act(pred predicates.Predicate, action string, d Denotation) (Denotation, error) {
	args := newSliceArgs(&d.stack)
	world, entry, err := d.world.ApplyAction(action, args)
	if err != nil {
		return d, portError(pred, err)
	}
	return b.fire(pred, d, world, entry, args.Consumed(), len(d.stack))
}

func popValue(pred predicates.Predicate, d *Denotation) (any, error) {
	v, ok := d.pop()
	if !ok {
		return nil, stepErrorf(ErrInvalidArgument, pred, "stack underflow")
	}
	return v, nil
}

func popInt(pred predicates.Predicate, d *Denotation) (int, error) {
	v, err := popValue(pred, d)
	if err != nil {
		return 0, err
	}
	n, ok := v.(int)
	if !ok {
		return 0, stepErrorf(ErrInvalidArgument, pred, "expecting integer, got %T", v)
	}
	return n, nil
}
