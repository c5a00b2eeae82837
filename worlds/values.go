package worlds

import (
	"fmt"
	"reflect"

	"github.com/reusee/scone/executors"
	"go.starlark.net/starlark"
)

// toStarlark converts an executor value for a script call.
// Script values pass through unchanged; pending top-down frames become frame values.
func toStarlark(v any) (starlark.Value, error) {
	switch v := v.(type) {

	case nil:
		return starlark.None, nil

	case starlark.Value:
		return v, nil

	case *executors.Frame:
		return newFrameValue(v)

	case bool:
		return starlark.Bool(v), nil

	case string:
		return starlark.String(v), nil

	case int:
		return starlark.MakeInt(v), nil
	case int64:
		return starlark.MakeInt64(v), nil

	case float64:
		return starlark.Float(v), nil

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elem, err := toStarlark(e)
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			elem, err := toStarlark(val)
			if err != nil {
				return nil, err
			}
			if err := d.SetKey(starlark.String(k), elem); err != nil {
				return nil, err
			}
		}
		return d, nil

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.String:
		return starlark.String(value.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint()), nil

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elem, err := toStarlark(value.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return starlark.NewList(elems), nil

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None, nil
		}
		return toStarlark(elem.Interface())

	}

	return nil, fmt.Errorf("unsupported type for starlark: %T", v)
}

// fromStarlark converts a script result for the executors.
// Lists become []any so that index can address them; other compound values stay opaque domain objects.
func fromStarlark(v starlark.Value) (any, error) {
	switch v := v.(type) {

	case starlark.NoneType:
		return nil, nil

	case starlark.Bool:
		return bool(v), nil

	case starlark.String:
		return string(v), nil

	case starlark.Int:
		i, ok := v.Int64()
		if !ok {
			return nil, fmt.Errorf("integer out of range: %s", v)
		}
		return int(i), nil

	case *starlark.List:
		ret := make([]any, v.Len())
		for i := range ret {
			elem, err := fromStarlark(v.Index(i))
			if err != nil {
				return nil, err
			}
			ret[i] = elem
		}
		return ret, nil

	}
	return v, nil
}

func fromStarlarkList(v starlark.Value) ([]any, error) {
	list, ok := v.(*starlark.List)
	if !ok {
		return nil, fmt.Errorf("expecting list, got %s", v.Type())
	}
	ret, err := fromStarlark(list)
	if err != nil {
		return nil, err
	}
	return ret.([]any), nil
}

// frameValue exposes a pending top-down frame to check_argument.
type frameValue struct {
	name string
	args *starlark.List
}

var _ starlark.HasAttrs = frameValue{}

func newFrameValue(frame *executors.Frame) (starlark.Value, error) {
	args, err := toStarlark(frame.Args)
	if err != nil {
		return nil, err
	}
	args.Freeze()
	return frameValue{
		name: frame.Name(),
		args: args.(*starlark.List),
	}, nil
}

func (f frameValue) String() string {
	return fmt.Sprintf("frame(%s, %s)", f.name, f.args)
}

func (f frameValue) Type() string {
	return "frame"
}

func (f frameValue) Freeze() {
	f.args.Freeze()
}

func (f frameValue) Truth() starlark.Bool {
	return starlark.True
}

func (f frameValue) Hash() (uint32, error) {
	return 0, fmt.Errorf("unhashable type: frame")
}

func (f frameValue) Attr(name string) (starlark.Value, error) {
	switch name {
	case "name":
		return starlark.String(f.name), nil
	case "args":
		return f.args, nil
	}
	return nil, nil
}

func (f frameValue) AttrNames() []string {
	return []string{"args", "name"}
}
