package tomlval

import (
	"fmt"
	"sort"
)

// FromInterface converts plain decoded data (JSON-shaped maps, slices
// and scalars) into a Value. Map keys come out sorted; callers that
// care about authored order should go through Parse instead.
func FromInterface(raw any) (Value, error) {
	switch typed := raw.(type) {
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for key := range typed {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		tab := NewTable()
		for _, key := range keys {
			v, err := FromInterface(typed[key])
			if err != nil {
				return Value{}, err
			}
			tab.Set(key, v)
		}
		return TableValue(tab), nil
	case []any:
		items := make([]Value, 0, len(typed))
		for _, elem := range typed {
			v, err := FromInterface(elem)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ArrayValue(items...), nil
	case string:
		return StringValue(typed), nil
	case bool:
		return BoolValue(typed), nil
	case int:
		return IntegerValue(int64(typed)), nil
	case int64:
		return IntegerValue(typed), nil
	case float64:
		return FloatValue(typed), nil
	default:
		return Value{}, fmt.Errorf("tomlval: unsupported value type %T", raw)
	}
}

// ToInterface renders a Value as plain maps, slices and scalars, the
// shape encoding/json expects.
func ToInterface(v Value) (any, error) {
	return toInterface(v)
}
