package executors

import "fmt"

// Denotation is an intermediate execution state: world state, command history and execution stack.
//
// The world state and the history only change by deriving a new Denotation when an action fires.
// The stack is owned by a single lineage; use Fork before branching.
type Denotation struct {
	world    WorldState
	history  []HistoryEntry
	stack    []any
	fired    bool
	consumed int
	residue  int
}

func NewDenotation(world WorldState) Denotation {
	return Denotation{
		world: world,
	}
}

func (d Denotation) World() WorldState {
	return d.world
}

// History returns the command history. The returned slice must not be modified.
func (d Denotation) History() []HistoryEntry {
	return d.history[:len(d.history):len(d.history)]
}

// UtteranceIndex is the number of executed actions.
func (d Denotation) UtteranceIndex() int {
	return len(d.history)
}

func (d Denotation) Stack() []any {
	return cloneStack(d.stack)
}

func (d Denotation) StackLen() int {
	return len(d.stack)
}

func (d Denotation) Top() (any, bool) {
	if len(d.stack) == 0 {
		return nil, false
	}
	return d.stack[len(d.stack)-1], true
}

// LastConsumed returns the number of stack values consumed by the most recent action, or -1 if no action has fired.
func (d Denotation) LastConsumed() int {
	if !d.fired {
		return -1
	}
	return d.consumed
}

// Residue returns the number of values left pending right after the most recent action.
func (d Denotation) Residue() int {
	return d.residue
}

// Fork returns a denotation with an independent copy of the stack. The history is shared.
func (d Denotation) Fork() Denotation {
	d.stack = cloneStack(d.stack)
	d.history = d.History()
	return d
}

func (d Denotation) WithStack(stack []any) Denotation {
	d.stack = cloneStack(stack)
	d.history = d.History()
	return d
}

func (d Denotation) String() string {
	return fmt.Sprintf("<%v %v %v>", d.world, d.history, d.stack)
}

func (d *Denotation) push(v any) {
	d.stack = append(d.stack, v)
}

func (d *Denotation) pop() (any, bool) {
	n := len(d.stack)
	if n == 0 {
		return nil, false
	}
	v := d.stack[n-1]
	d.stack[n-1] = nil
	d.stack = d.stack[:n-1]
	return v, true
}

// derive records an action: new world state, one more history entry, same stack.
func (d Denotation) derive(world WorldState, entry HistoryEntry, consumed int, residue int) Denotation {
	return Denotation{
		world:    world,
		history:  append(d.History(), entry),
		stack:    d.stack,
		fired:    true,
		consumed: consumed,
		residue:  residue,
	}
}

func cloneStack(stack []any) []any {
	if len(stack) == 0 {
		return nil
	}
	ret := make([]any, len(stack))
	for i, v := range stack {
		if frame, ok := v.(*Frame); ok {
			v = frame.clone()
		}
		ret[i] = v
	}
	return ret
}
