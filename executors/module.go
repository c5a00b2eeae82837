package executors

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scone/logs"
	"github.com/reusee/scone/sconeconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs sconeconfigs.Module
}

type NewExecutor func(initial WorldState) Executor

func (Module) NewExecutor(
	logger logs.Logger,
	debug sconeconfigs.Debug,
	strict sconeconfigs.StrictActions,
	topDown sconeconfigs.TopDown,
) NewExecutor {
	return func(initial WorldState) Executor {
		options := []Option{
			WithDebug(bool(debug)),
			WithStrictActions(bool(strict)),
		}
		if topDown {
			return NewTopDown(initial, append(options, WithLogger(logger.With("executor", "top-down")))...)
		}
		return NewBottomUp(initial, append(options, WithLogger(logger.With("executor", "bottom-up")))...)
	}
}
