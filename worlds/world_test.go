package worlds

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/scone/executors"
	"github.com/reusee/scone/predicates"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

func loadAlchemy(t *testing.T) *Domain {
	t.Helper()
	domain, err := Load("testdata/alchemy.star", nil)
	if err != nil {
		t.Fatal(err)
	}
	return domain
}

func parseState(t *testing.T, domain *Domain, raw string) *World {
	t.Helper()
	world, err := domain.ParseState(raw)
	if err != nil {
		t.Fatal(err)
	}
	return world
}

func parse(t *testing.T, program string) []predicates.Predicate {
	t.Helper()
	preds, err := predicates.NewRegistry().ParseString(program)
	if err != nil {
		t.Fatal(err)
	}
	return preds
}

func TestParseState(t *testing.T) {
	domain := loadAlchemy(t)
	world := parseState(t, domain, "1:rr 2:g 3:_ 4:yyy")
	if got := world.String(); got != "1:rr 2:g 3:_ 4:yyy" {
		t.Fatalf("got %s", got)
	}
	if objects := world.AllObjects(); len(objects) != 4 {
		t.Fatalf("got %v", objects)
	}
	if _, err := domain.ParseState("2:rr 1:g"); err == nil {
		t.Fatal("should error")
	}
}

func TestBottomUp(t *testing.T) {
	domain := loadAlchemy(t)
	initial := parseState(t, domain, "1:rr 2:g 3:_ 4:yyy")
	executor := executors.NewBottomUp(initial)
	d, err := executor.Execute(parse(t, "r PColor 1 index all-objects 3 index APour"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.World().(*World).String(); got != "1:_ 2:g 3:rr 4:yyy" {
		t.Fatalf("got %s", got)
	}
	if got := initial.String(); got != "1:rr 2:g 3:_ 4:yyy" {
		t.Fatalf("got %s", got)
	}
	history := d.History()
	if len(history) != 1 || history[0].Action != "Pour" || len(history[0].Args) != 2 {
		t.Fatalf("got %v", history)
	}

	// history arguments resolve against the current state
	d, err = executor.Execute(parse(t, "1 H1"), &d)
	if err != nil {
		t.Fatal(err)
	}
	top, _ := d.Top()
	b, ok := top.(*starlarkstruct.Struct)
	if !ok {
		t.Fatalf("got %T", top)
	}
	pos, _ := b.Attr("pos")
	content, _ := b.Attr("content")
	if n, _ := fromStarlark(pos); n != 1 || content != starlark.String("") {
		t.Fatalf("got %v", b)
	}
}

func TestDrainFraction(t *testing.T) {
	domain := loadAlchemy(t)
	executor := executors.NewBottomUp(parseState(t, domain, "1:rr 2:gggg"))
	d, err := executor.Execute(parse(t, "all-objects -1 index X1/2 ADrain all-objects 1 index X1/1 ADrain"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.World().(*World).String(); got != "1:_ 2:gg" {
		t.Fatalf("got %s", got)
	}
	entry := d.History()[0]
	if entry.Action != "Drain" || entry.Args[1] != "X1/2" {
		t.Fatalf("got %v", entry)
	}
	if d.LastConsumed() != 2 || d.StackLen() != 0 {
		t.Fatalf("got %v", d)
	}
}

func TestTopDownAgreement(t *testing.T) {
	domain := loadAlchemy(t)
	initial := parseState(t, domain, "1:rr 2:g 3:_ 4:yyy")
	for _, c := range []struct {
		topDown  string
		bottomUp string
	}{
		{
			"APour index PColor r 1 index all-objects 3",
			"r PColor 1 index all-objects 3 index APour",
		},
		{
			"AMix index all-objects 4 ADrain index all-objects 4 1",
			"all-objects 4 index AMix all-objects 4 index 1 ADrain",
		},
		{
			"APour index all-objects 1 index all-objects 3 H0 1 index all-objects 4 index all-objects 3",
			"all-objects 1 index all-objects 3 index APour all-objects 4 index all-objects 3 index 1 H0",
		},
		{
			"APour index all-objects 2 index all-objects 1 APour H2 -1 H1 -1",
			"all-objects 2 index all-objects 1 index APour -1 H2 -1 H1 APour",
		},
	} {
		got, err := executors.NewTopDown(initial).Execute(parse(t, c.topDown), nil)
		if err != nil {
			t.Fatalf("%s: %v", c.topDown, err)
		}
		expected, err := executors.NewBottomUp(initial).Execute(parse(t, c.bottomUp), nil)
		if err != nil {
			t.Fatalf("%s: %v", c.bottomUp, err)
		}
		ok, err := got.World().(*World).Equal(expected.World().(*World))
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("%s: got %v, expected %v", c.topDown, got.World(), expected.World())
		}
		if got.UtteranceIndex() != expected.UtteranceIndex() || got.StackLen() != 0 || expected.StackLen() != 0 {
			t.Fatalf("%s: got %v, expected %v", c.topDown, got, expected)
		}
	}
}

func TestScriptErrors(t *testing.T) {
	domain := loadAlchemy(t)
	world := parseState(t, domain, "1:rr 2:g")

	_, err := executors.NewBottomUp(world).Execute(parse(t, "p PColor"), nil)
	if !errors.Is(err, executors.ErrEmptyJoinResult) {
		t.Fatalf("got %v", err)
	}

	_, err = executors.NewBottomUp(world).Execute(parse(t, "r PShape"), nil)
	if err == nil || !strings.Contains(err.Error(), "unknown property: Shape") {
		t.Fatalf("got %v", err)
	}

	_, err = executors.NewBottomUp(world).Execute(parse(t, "all-objects 1 index APour"), nil)
	if err == nil || !strings.Contains(err.Error(), "Pour takes 2 arguments") {
		t.Fatalf("got %v", err)
	}

	_, err = executors.NewTopDown(world).Execute(parse(t, "APour r"), nil)
	if !errors.Is(err, executors.ErrInvalidArgument) || !strings.Contains(err.Error(), "expecting a beaker") {
		t.Fatalf("got %v", err)
	}

	// no reverse_action in the script
	d, err := executors.NewBottomUp(world).Execute(parse(t, "all-objects 1 index all-objects 2 index APour"), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = executors.NewBottomUp(world).Execute(parse(t, "all-objects 1 index all-objects 2 index 1 HUndo"), &d)
	if err == nil || !strings.Contains(err.Error(), "no reverse action of Pour") {
		t.Fatalf("got %v", err)
	}
}

const minimalScript = `
def parse_state(raw):
    print("parse", raw)
    return raw.split(",")

def all_objects(state):
    return list(state)

def join(state, value, prop):
    return [x for x in state if x.startswith(value)]

def double_join(state, value1, value2, prop):
    return []

def apply_action(state, action, args):
    if action == "Drop":
        return [x for x in state if x != args[-1]], 1, None
    if action == "Clear":
        return [], 0, []
    fail("unknown action")

def reverse_action(action):
    return {"Drop": "Restore"}[action]
`

func TestMinimalScript(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	domain, err := Load("minimal.star", minimalScript, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	world, err := domain.ParseState("ab,ac,b")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "parse ab,ac,b") {
		t.Fatalf("got %s", buf.String())
	}

	d, err := executors.NewBottomUp(world).Execute(parse(t, "all-objects 1 index ADrop"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.World().(*World).String(); got != `["ac", "b"]` {
		t.Fatalf("got %s", got)
	}
	if entry := d.History()[0]; len(entry.Args) != 1 || entry.Args[0] != "ab" {
		t.Fatalf("got %v", entry)
	}

	// string slots pass through
	d, err = executors.NewBottomUp(world).Execute(parse(t, "1 H1"), &d)
	if err != nil {
		t.Fatal(err)
	}
	if top, _ := d.Top(); top != "ab" {
		t.Fatalf("got %v", top)
	}

	reversed, err := world.ReverseAction("Drop")
	if err != nil {
		t.Fatal(err)
	}
	if reversed != "Restore" {
		t.Fatalf("got %s", reversed)
	}

	// consumed nothing
	d, err = executors.NewBottomUp(world).Execute(parse(t, "b AClear"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.StackLen() != 1 || d.LastConsumed() != 0 || len(d.History()[0].Args) != 0 {
		t.Fatalf("got %v", d)
	}

	// no check_argument in the script
	_, err = executors.NewTopDown(world).Execute(parse(t, "ADrop b"), nil)
	if !errors.Is(err, executors.ErrInvalidArgument) {
		t.Fatalf("got %v", err)
	}
}

func TestAllObjectsFailure(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(buf, nil))
	script := strings.Replace(minimalScript, "return list(state)", `fail("no objects")`, 1)
	domain, err := Load("broken.star", script, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	world, err := domain.ParseState("ab,b")
	if err != nil {
		t.Fatal(err)
	}
	objects := world.AllObjects()
	if objects == nil || len(objects) != 0 {
		t.Fatalf("got %#v", objects)
	}
	if !strings.Contains(buf.String(), "level=ERROR") || !strings.Contains(buf.String(), "no objects") {
		t.Fatalf("got %s", buf.String())
	}

	_, err = executors.NewBottomUp(world).Execute(parse(t, "all-objects 1 index"), nil)
	if !errors.Is(err, executors.ErrInvalidArgument) || !strings.Contains(err.Error(), "out of 0 objects") {
		t.Fatalf("got %v", err)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("bad.star", "def parse_state(raw):\n    return raw\n"); err == nil || !strings.Contains(err.Error(), "all_objects not defined") {
		t.Fatalf("got %v", err)
	}
	if _, err := Load("bad.star", "parse_state = 1\n"); err == nil || !strings.Contains(err.Error(), "parse_state is not callable") {
		t.Fatalf("got %v", err)
	}
	if _, err := Load("bad.star", "def ("); err == nil {
		t.Fatal("should error")
	}
	if _, err := Load("testdata/missing.star", nil); err == nil {
		t.Fatal("should error")
	}
}

func TestFrameValue(t *testing.T) {
	v, err := toStarlark(&executors.Frame{
		Predicate: predicates.MustNew("APour"),
		Args:      []any{1, "r"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if v.Type() != "frame" {
		t.Fatalf("got %s", v.Type())
	}
	name, _ := v.(starlark.HasAttrs).Attr("name")
	if name != starlark.String("APour") {
		t.Fatalf("got %v", name)
	}
	args, _ := v.(starlark.HasAttrs).Attr("args")
	if args.(*starlark.List).Len() != 2 {
		t.Fatalf("got %v", args)
	}
}

func TestConversion(t *testing.T) {
	v, err := toStarlark([]any{1, "a", true, nil, []any{2}})
	if err != nil {
		t.Fatal(err)
	}
	back, err := fromStarlark(v)
	if err != nil {
		t.Fatal(err)
	}
	list := back.([]any)
	if len(list) != 5 || list[0] != 1 || list[1] != "a" || list[2] != true || list[3] != nil {
		t.Fatalf("got %v", list)
	}
	if inner := list[4].([]any); len(inner) != 1 || inner[0] != 2 {
		t.Fatalf("got %v", inner)
	}

	// tuples stay opaque
	tuple := starlark.Tuple{starlark.MakeInt(1)}
	back, err = fromStarlark(tuple)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := back.(starlark.Tuple); !ok {
		t.Fatalf("got %T", back)
	}

	if _, err := toStarlark(struct{}{}); err == nil {
		t.Fatal("should error")
	}
}
