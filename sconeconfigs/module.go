package sconeconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scone/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}
