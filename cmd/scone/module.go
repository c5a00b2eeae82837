package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scone/checkers"
	"github.com/reusee/scone/datasets"
	"github.com/reusee/scone/executors"
	"github.com/reusee/scone/worlds"
)

type Module struct {
	dscope.Module
	Executors executors.Module
	Checkers  checkers.Module
	Worlds    worlds.Module
	Datasets  datasets.Module
}
