package main

import (
	"context"
	"fmt"
	"os"

	"github.com/reusee/dscope"
	"github.com/reusee/scone/cmds"
	"github.com/reusee/scone/modes"
)

var (
	programArg = cmds.Var[string]("run")
	datasetArg = cmds.Var[string]("dataset")
	initArg    = cmds.Var[string]("-init")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	switch {

	case *programArg != "":
		scope.Call(func(
			run RunProgram,
		) {
			exitOnError(run(ctx, *initArg, *programArg, os.Stdout))
		})

	case *datasetArg != "":
		scope.Call(func(
			summarize SummarizeDataset,
		) {
			exitOnError(summarize(ctx, *datasetArg, os.Stdout))
		})

	default:
		cmds.GlobalExecutor.WriteUsage(os.Stderr)
		os.Exit(2)
	}
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
