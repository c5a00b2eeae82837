package datasets

import (
	"fmt"

	"github.com/reusee/scone/predicates"
)

type Domain uint8

const (
	DomainAlchemy Domain = iota + 1
	DomainScene
	DomainTangrams
	DomainUndograms
)

var domainNames = map[Domain]string{
	DomainAlchemy:   "alchemy",
	DomainScene:     "scene",
	DomainTangrams:  "tangrams",
	DomainUndograms: "undograms",
}

func (d Domain) String() string {
	if name, ok := domainNames[d]; ok {
		return name
	}
	return fmt.Sprintf("Domain(%d)", d)
}

func ParseDomain(name string) (Domain, error) {
	for domain, n := range domainNames {
		if n == name {
			return domain, nil
		}
	}
	return 0, fmt.Errorf("unknown SCONE domain: %q", name)
}

// Vocabulary returns the default predicates of the domain.
func (d Domain) Vocabulary() []predicates.Predicate {
	preds, err := predicates.Vocabulary(d.String())
	if err != nil {
		return nil
	}
	return preds
}
