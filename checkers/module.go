package checkers

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scone/sconeconfigs"
)

type Module struct {
	dscope.Module
	Configs sconeconfigs.Module
}

func (Module) Checker(
	maxStackSize sconeconfigs.MaxStackSize,
	mustClear sconeconfigs.ActionMustClearStack,
) Checker {
	return Checker{
		MaxStackSize:         int(maxStackSize),
		ActionMustClearStack: bool(mustClear),
	}
}
