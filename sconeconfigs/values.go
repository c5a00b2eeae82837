package sconeconfigs

import (
	"github.com/reusee/scone/cmds"
	"github.com/reusee/scone/configs"
	"github.com/reusee/scone/vars"
)

// Debug enables executor trace logging.
type Debug bool

var debugFlag = cmds.Switch("-debug")

func (Module) Debug(
	loader configs.Loader,
) Debug {
	return Debug(*debugFlag || configs.First[bool](loader, "debug"))
}

// TopDown selects the top-down executor instead of the bottom-up one.
type TopDown bool

var topDownFlag = cmds.Switch("-top-down")

func (Module) TopDown(
	loader configs.Loader,
) TopDown {
	return TopDown(*topDownFlag || configs.First[bool](loader, "executor.top_down"))
}

// StrictActions makes actions fail when they leave arguments unconsumed.
type StrictActions bool

var strictFlag = cmds.Switch("-strict")

func (Module) StrictActions(
	loader configs.Loader,
) StrictActions {
	return StrictActions(*strictFlag || configs.First[bool](loader, "executor.strict_actions"))
}

// MaxStackSize bounds the stack depth of valid partial programs. Zero disables the bound.
type MaxStackSize int

const DefaultMaxStackSize = 3

var maxStackSizeFlag = cmds.Var[*int]("-max-stack-size")

func (Module) MaxStackSize(
	loader configs.Loader,
) MaxStackSize {
	if *maxStackSizeFlag != nil {
		return MaxStackSize(**maxStackSizeFlag)
	}
	if n, ok := configs.Lookup[int](loader, "checker.max_stack_size"); ok {
		return MaxStackSize(n)
	}
	return DefaultMaxStackSize
}

// ActionMustClearStack rejects partial programs whose last action left values on the stack.
type ActionMustClearStack bool

var actionMustClearStackFlag = cmds.Var[*bool]("-action-must-clear-stack")

func (Module) ActionMustClearStack(
	loader configs.Loader,
) ActionMustClearStack {
	if *actionMustClearStackFlag != nil {
		return ActionMustClearStack(**actionMustClearStackFlag)
	}
	if b, ok := configs.Lookup[bool](loader, "checker.action_must_clear_stack"); ok {
		return ActionMustClearStack(b)
	}
	return true
}

type DomainName string

var domainFlag = cmds.Var[string]("-domain")

func (Module) DomainName(
	loader configs.Loader,
) DomainName {
	return DomainName(vars.FirstNonZero(
		*domainFlag,
		configs.First[string](loader, "domain"),
	))
}

// DomainScript is the path of the Starlark script implementing the domain.
type DomainScript string

var scriptFlag = cmds.Var[string]("-script")

func (Module) DomainScript(
	loader configs.Loader,
) DomainScript {
	return DomainScript(vars.FirstNonZero(
		*scriptFlag,
		configs.First[string](loader, "domain_script"),
	))
}

// NumSteps lists the numbers of utterances per dataset example. -1 takes whole stories.
type NumSteps []int

var numStepsFlag = cmds.Collect[int]("-num-steps")

func (Module) NumSteps(
	loader configs.Loader,
) NumSteps {
	if len(*numStepsFlag) > 0 {
		return NumSteps(*numStepsFlag)
	}
	if steps, ok := configs.Lookup[[]int](loader, "dataset.num_steps"); ok && len(steps) > 0 {
		return steps
	}
	return NumSteps{-1}
}

// SliceFromMiddle also takes dataset examples starting in the middle of stories.
type SliceFromMiddle bool

var sliceFromMiddleFlag = cmds.Switch("-slice-from-middle")

func (Module) SliceFromMiddle(
	loader configs.Loader,
) SliceFromMiddle {
	return SliceFromMiddle(*sliceFromMiddleFlag || configs.First[bool](loader, "dataset.slice_from_middle"))
}
