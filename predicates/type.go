package predicates

import "fmt"

type Type uint8

const (
	TypeColor Type = iota
	TypeNumber
	TypeFraction
	TypeProperty
	TypeDoubleProperty
	TypeAction
	TypeBuiltin
	TypeHistorySlot
)

// AllTypes is the fixed order used by k-hot type vectors.
var AllTypes = [...]Type{
	TypeColor,
	TypeNumber,
	TypeFraction,
	TypeProperty,
	TypeDoubleProperty,
	TypeAction,
	TypeBuiltin,
	TypeHistorySlot,
}

var typeNames = [...]string{
	TypeColor:          "color",
	TypeNumber:         "number",
	TypeFraction:       "fraction",
	TypeProperty:       "property",
	TypeDoubleProperty: "double_property",
	TypeAction:         "action",
	TypeBuiltin:        "builtin",
	TypeHistorySlot:    "history_slot",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", t)
}

type Builtin uint8

const (
	BuiltinNone Builtin = iota
	BuiltinAllObjects
	BuiltinIndex
	BuiltinArgmin
	BuiltinArgmax
)

var builtinNames = map[string]Builtin{
	"all-objects": BuiltinAllObjects,
	"index":       BuiltinIndex,
	"argmin":      BuiltinArgmin,
	"argmax":      BuiltinArgmax,
}

// History sub-cases of HISTORY_SLOT predicates.
type History uint8

const (
	HistoryInvalid History = iota
	// H0
	HistoryReplay
	// HUndo
	HistoryUndo
	// H<k>, k >= 1
	HistoryArgument
)
