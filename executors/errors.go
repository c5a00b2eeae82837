package executors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reusee/scone/predicates"
)

var (
	ErrUnknownPredicate    = predicates.ErrUnknownPredicate
	ErrEmptyJoinResult     = errors.New("empty join result")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrMisplacedAction     = errors.New("misplaced action")
	ErrIncompleteProgram   = errors.New("incomplete program")
	ErrUnconsumedArguments = errors.New("unconsumed arguments")
)

// Error is a failed execution step.
type Error struct {
	Kind      error
	Predicate string
	Msg       string
	Err       error
}

func (e *Error) Error() string {
	var parts []string
	if e.Predicate != "" {
		parts = append(parts, e.Predicate)
	}
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() []error {
	var ret []error
	if e.Kind != nil {
		ret = append(ret, e.Kind)
	}
	if e.Err != nil {
		ret = append(ret, e.Err)
	}
	return ret
}

func stepErrorf(kind error, pred predicates.Predicate, format string, args ...any) error {
	return &Error{
		Kind:      kind,
		Predicate: pred.Name(),
		Msg:       fmt.Sprintf(format, args...),
	}
}

// portError wraps an error returned by the world state.
// Errors already produced by this package keep their kind.
func portError(pred predicates.Predicate, err error) error {
	var stepErr *Error
	if errors.As(err, &stepErr) {
		return err
	}
	return &Error{
		Predicate: pred.Name(),
		Err:       err,
	}
}
