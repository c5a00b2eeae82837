package worlds

import (
	"errors"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/scone/modes"
	"github.com/reusee/scone/sconeconfigs"
)

func TestModule(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() sconeconfigs.DomainScript {
			return "testdata/alchemy.star"
		},
	).Call(func(
		get GetDomain,
	) {
		domain, err := get()
		if err != nil {
			t.Fatal(err)
		}
		again, err := get()
		if err != nil {
			t.Fatal(err)
		}
		if domain != again {
			t.Fatal("should load once")
		}
		if domain.Filename() != "testdata/alchemy.star" {
			t.Fatalf("got %s", domain.Filename())
		}
	})
}

func TestModuleNoScript(t *testing.T) {
	dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() sconeconfigs.DomainScript {
			return ""
		},
	).Call(func(
		get GetDomain,
	) {
		if _, err := get(); !errors.Is(err, ErrNoScript) {
			t.Fatalf("got %v", err)
		}
	})
}
