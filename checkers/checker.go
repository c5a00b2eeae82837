package checkers

import (
	"errors"
	"fmt"

	"github.com/reusee/scone/executors"
	"github.com/reusee/scone/predicates"
	"github.com/reusee/scone/sconeconfigs"
)

var (
	ErrStackTooDeep   = errors.New("stack too deep")
	ErrActionNotClear = errors.New("action left values on the stack")
)

// Checker decides whether a partial program is worth extending.
type Checker struct {
	// MaxStackSize bounds the stack depth. Zero disables the bound.
	MaxStackSize int
	// ActionMustClearStack rejects programs ending with an action that left values pending.
	ActionMustClearStack bool
}

func New() Checker {
	return Checker{
		MaxStackSize:         sconeconfigs.DefaultMaxStackSize,
		ActionMustClearStack: true,
	}
}

func (c Checker) Check(program []predicates.Predicate, d executors.Denotation) bool {
	return c.Validate(program, d) == nil
}

// Validate is like Check but reports the violated rule.
func (c Checker) Validate(program []predicates.Predicate, d executors.Denotation) error {
	if c.MaxStackSize > 0 && d.StackLen() > c.MaxStackSize {
		return fmt.Errorf("%w: %d > %d", ErrStackTooDeep, d.StackLen(), c.MaxStackSize)
	}
	if c.ActionMustClearStack &&
		d.StackLen() > 0 &&
		len(program) > 0 &&
		program[len(program)-1].IsAction() {
		return fmt.Errorf("%w: %d after %s", ErrActionNotClear, d.StackLen(), program[len(program)-1])
	}
	return nil
}
