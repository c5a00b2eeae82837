package main

import (
	"context"
	"fmt"
	"io"

	"github.com/reusee/scone/checkers"
	"github.com/reusee/scone/executors"
	"github.com/reusee/scone/logs"
	"github.com/reusee/scone/predicates"
	"github.com/reusee/scone/worlds"
)

// RunProgram executes a whitespace-separated program from a raw initial state
// and writes the command history and the final state to w.
type RunProgram func(ctx context.Context, initial string, program string, w io.Writer) error

func (Module) RunProgram(
	logger logs.Logger,
	newSpan logs.NewSpan,
	getDomain worlds.GetDomain,
	newExecutor executors.NewExecutor,
	checker checkers.Checker,
) RunProgram {
	return func(ctx context.Context, initial string, program string, w io.Writer) (err error) {
		ctx, _ = newSpan(ctx, "")
		defer func() {
			err = logs.WrapSpan(ctx, err)
		}()

		domain, err := getDomain()
		if err != nil {
			return err
		}
		world, err := domain.ParseState(initial)
		if err != nil {
			return err
		}
		preds, err := predicates.NewRegistry().ParseString(program)
		if err != nil {
			return err
		}
		logger.InfoContext(ctx, "run", "predicates", len(preds), "initial", world)

		executor := newExecutor(world)
		d := executors.NewDenotation(world)
		for i, pred := range preds {
			d, err = executor.ExecutePredicate(pred, &d)
			if err != nil {
				return fmt.Errorf("predicate %d: %w", i+1, err)
			}
			if err := checker.Validate(preds[:i+1], d); err != nil {
				logger.WarnContext(ctx, "invalid partial program",
					"predicate", pred,
					"reason", err,
				)
			}
		}

		final, err := executor.Finalize(d)
		if err != nil {
			return err
		}
		for i, entry := range d.History() {
			if _, err := fmt.Fprintf(w, "%d\t%s\n", i+1, entry); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%v\n", final); err != nil {
			return err
		}
		return nil
	}
}
