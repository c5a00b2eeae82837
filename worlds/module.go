package worlds

import (
	"errors"
	"sync"

	"github.com/reusee/dscope"
	"github.com/reusee/scone/logs"
	"github.com/reusee/scone/sconeconfigs"
)

type Module struct {
	dscope.Module
	Logs    logs.Module
	Configs sconeconfigs.Module
}

var ErrNoScript = errors.New("no domain script configured")

type GetDomain func() (*Domain, error)

func (Module) GetDomain(
	script sconeconfigs.DomainScript,
	logger logs.Logger,
) GetDomain {
	return sync.OnceValues(func() (*Domain, error) {
		if script == "" {
			return nil, ErrNoScript
		}
		logger.Info("load domain", "script", script)
		return Load(string(script), nil, WithLogger(logger))
	})
}
