package predicates

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var ErrUnknownPredicate = errors.New("unknown predicate")

// Predicate is a single logical-form token.
// All fields derive from the name, so two values with the same name compare equal with ==.
type Predicate struct {
	name    string
	typ     Type
	number  int
	builtin Builtin
	history History
}

func New(name string) (Predicate, error) {
	p := Predicate{
		name: name,
	}
	typ, err := Classify(name)
	if err != nil {
		return p, err
	}
	p.typ = typ

	switch typ {

	case TypeNumber:
		n, err := strconv.Atoi(name)
		if err != nil {
			return p, fmt.Errorf("%w: %q: %w", ErrUnknownPredicate, name, err)
		}
		p.number = n

	case TypeBuiltin:
		p.builtin = builtinNames[name]

	case TypeHistorySlot:
		switch name {
		case "H0":
			p.history = HistoryReplay
		case "HUndo":
			p.history = HistoryUndo
		default:
			if k, err := strconv.Atoi(name[1:]); err == nil && k >= 1 {
				p.history = HistoryArgument
				p.number = k
			}
		}

	}

	return p, nil
}

func MustNew(name string) Predicate {
	p, err := New(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Classify maps a name to its type tag. The first matching rule wins.
func Classify(name string) (Type, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownPredicate)
	}
	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsLetter(r) {
		return TypeColor, nil
	}
	switch c := name[0]; {
	case c == '-' || c >= '0' && c <= '9':
		return TypeNumber, nil
	case c == 'X':
		return TypeFraction, nil
	case c == 'P':
		return TypeProperty, nil
	case c == 'D':
		return TypeDoubleProperty, nil
	case c == 'A':
		return TypeAction, nil
	}
	if _, ok := builtinNames[name]; ok {
		return TypeBuiltin, nil
	}
	if name[0] == 'H' {
		return TypeHistorySlot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPredicate, name)
}

func (p Predicate) Name() string {
	return p.name
}

func (p Predicate) String() string {
	return p.name
}

func (p Predicate) Type() Type {
	return p.typ
}

// Types returns the tag collection of the predicate. It always holds exactly one tag.
func (p Predicate) Types() []Type {
	return []Type{p.typ}
}

func (p Predicate) TypesVector() (ret [len(AllTypes)]bool) {
	for i, t := range AllTypes {
		ret[i] = t == p.typ
	}
	return
}

// Number returns the integer value of a NUMBER predicate, or the slot index of an H<k> predicate.
func (p Predicate) Number() int {
	return p.number
}

// Arg returns the property or action name carried after the one-letter prefix.
func (p Predicate) Arg() string {
	switch p.typ {
	case TypeProperty, TypeDoubleProperty, TypeAction:
		return p.name[1:]
	}
	return ""
}

func (p Predicate) Builtin() Builtin {
	return p.builtin
}

func (p Predicate) History() History {
	return p.history
}

func (p Predicate) IsAction() bool {
	return p.typ == TypeAction
}

// OpensAction reports whether the predicate starts a top-level action: A<action>, H0 or HUndo.
func (p Predicate) OpensAction() bool {
	return p.typ == TypeAction ||
		p.history == HistoryReplay ||
		p.history == HistoryUndo
}

func (p Predicate) Equal(q Predicate) bool {
	return p.name == q.name
}
