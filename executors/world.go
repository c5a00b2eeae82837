package executors

import (
	"fmt"
	"slices"

	"github.com/reusee/scone/predicates"
)

// WorldState is the domain model the executors call into.
// Implementations must never mutate a state in place: ApplyAction returns a new state.
type WorldState interface {
	ApplyJoin(value any, property string) (any, error)
	ApplyDoubleJoin(value1, value2 any, property string) (any, error)

	// ApplyAction pops the arguments the action needs from args and returns the resulting state
	// together with the history entry recording the action and its resolved arguments.
	ApplyAction(action string, args Args) (WorldState, HistoryEntry, error)

	ReverseAction(action string) (string, error)
	ResolveArgument(obj any) (any, error)
	AllObjects() []any

	// CheckArgument is the top-down arity policy for action frames.
	// It reports whether frame is complete once next is appended, or fails if next is not acceptable.
	CheckArgument(frame *Frame, next any) (bool, error)
}

// HistoryEntry is an executed action with its resolved arguments.
type HistoryEntry struct {
	Action string
	Args   []any
}

// Slot returns the k-th element of the entry: 0 is the action name, 1.. are the arguments.
func (h HistoryEntry) Slot(k int) (any, bool) {
	if k == 0 {
		return h.Action, true
	}
	if k < 0 || k > len(h.Args) {
		return nil, false
	}
	return h.Args[k-1], true
}

func (h HistoryEntry) Len() int {
	return 1 + len(h.Args)
}

func (h HistoryEntry) String() string {
	return fmt.Sprintf("%s%v", h.Action, h.Args)
}

// Frame is a pending function application of the top-down executor.
type Frame struct {
	Predicate predicates.Predicate
	Args      []any
}

func (f *Frame) Name() string {
	return f.Predicate.Name()
}

func (f *Frame) clone() *Frame {
	return &Frame{
		Predicate: f.Predicate,
		Args:      slices.Clone(f.Args),
	}
}

func (f *Frame) String() string {
	return fmt.Sprintf("(%s %v)", f.Predicate.Name(), f.Args)
}

// Args is a consumable argument source handed to WorldState.ApplyAction.
// Values are popped from the top, which is the most recently pushed or collected value.
type Args interface {
	Len() int
	// Peek returns the i-th value from the top without consuming it.
	Peek(i int) (any, bool)
	Pop() (any, error)
	Consumed() int
}

// PopN pops n values and returns them in push order.
func PopN(args Args, n int) ([]any, error) {
	if args.Len() < n {
		return nil, fmt.Errorf("%w: want %d arguments, got %d", ErrInvalidArgument, n, args.Len())
	}
	ret := make([]any, n)
	for i := n - 1; i >= 0; i-- {
		v, err := args.Pop()
		if err != nil {
			return nil, err
		}
		ret[i] = v
	}
	return ret, nil
}

type sliceArgs struct {
	values   *[]any
	consumed int
}

var _ Args = new(sliceArgs)

func newSliceArgs(values *[]any) *sliceArgs {
	return &sliceArgs{
		values: values,
	}
}

func (s *sliceArgs) Len() int {
	return len(*s.values)
}

func (s *sliceArgs) Peek(i int) (any, bool) {
	idx := len(*s.values) - 1 - i
	if i < 0 || idx < 0 {
		return nil, false
	}
	return (*s.values)[idx], true
}

func (s *sliceArgs) Pop() (any, error) {
	n := len(*s.values)
	if n == 0 {
		return nil, fmt.Errorf("%w: no argument left", ErrInvalidArgument)
	}
	v := (*s.values)[n-1]
	(*s.values)[n-1] = nil
	*s.values = (*s.values)[:n-1]
	s.consumed++
	return v, nil
}

func (s *sliceArgs) Consumed() int {
	return s.consumed
}
