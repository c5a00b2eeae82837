package datasets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scone/executors"
	"github.com/reusee/scone/sconeconfigs"
	"github.com/reusee/scone/worlds"
)

type Module struct {
	dscope.Module
	Configs sconeconfigs.Module
	Worlds  worlds.Module
}

type NewReader func(path string) (Reader, error)

func (Module) NewReader(
	domainName sconeconfigs.DomainName,
	numSteps sconeconfigs.NumSteps,
	fromMiddle sconeconfigs.SliceFromMiddle,
	getDomain worlds.GetDomain,
) NewReader {
	return func(path string) (Reader, error) {
		domain, err := ParseDomain(string(domainName))
		if err != nil {
			return Reader{}, err
		}
		script, err := getDomain()
		if err != nil {
			return Reader{}, err
		}
		return Reader{
			Path:   path,
			Domain: domain,
			ParseState: func(raw string) (executors.WorldState, error) {
				world, err := script.ParseState(raw)
				if err != nil {
					return nil, err
				}
				return world, nil
			},
			NumSteps:        numSteps,
			SliceFromMiddle: bool(fromMiddle),
		}, nil
	}
}
