package tomlval

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// keySep joins key-path segments in the authored-order index. NUL
// cannot appear in a TOML bare or quoted key segment we care about.
const keySep = "\x00"

// Parse decodes TOML bytes into a Value. Table key order follows the
// authored document where the decoder metadata makes it unambiguous
// and falls back to sorted order for anything left over.
func Parse(data []byte) (Value, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Value{}, fmt.Errorf("tomlval: decode: %w", err)
	}

	order := make(map[string][]string)
	seen := make(map[string]struct{})
	for _, key := range md.Keys() {
		for i := range key {
			parent := strings.Join(key[:i], keySep)
			marker := parent + keySep + key[i]
			if _, dup := seen[marker]; dup {
				continue
			}
			seen[marker] = struct{}{}
			order[parent] = append(order[parent], key[i])
		}
	}

	return fromTable(raw, nil, order)
}

func fromTable(raw map[string]any, path []string, order map[string][]string) (Value, error) {
	tab := NewTable()
	prefix := strings.Join(path, keySep)

	handled := make(map[string]struct{}, len(raw))
	ordered := order[prefix]
	for _, key := range ordered {
		if _, ok := raw[key]; !ok {
			continue
		}
		handled[key] = struct{}{}
		v, err := fromInterface(raw[key], append(path, key), order)
		if err != nil {
			return Value{}, err
		}
		tab.Set(key, v)
	}

	var rest []string
	for key := range raw {
		if _, ok := handled[key]; !ok {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		v, err := fromInterface(raw[key], append(path, key), order)
		if err != nil {
			return Value{}, err
		}
		tab.Set(key, v)
	}

	return TableValue(tab), nil
}

func fromInterface(raw any, path []string, order map[string][]string) (Value, error) {
	switch typed := raw.(type) {
	case map[string]any:
		return fromTable(typed, path, order)
	case []map[string]any:
		items := make([]Value, 0, len(typed))
		for _, elem := range typed {
			v, err := fromTable(elem, path, order)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ArrayValue(items...), nil
	case []any:
		items := make([]Value, 0, len(typed))
		for _, elem := range typed {
			v, err := fromInterface(elem, path, order)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ArrayValue(items...), nil
	case string:
		return StringValue(typed), nil
	case int64:
		return IntegerValue(typed), nil
	case float64:
		return FloatValue(typed), nil
	case bool:
		return BoolValue(typed), nil
	default:
		return Value{}, fmt.Errorf("tomlval: unsupported value type %T at %s", raw, strings.Join(path, "."))
	}
}

// Encode renders a table Value as canonical TOML with sorted keys.
// Round-tripping preserves value equality, not byte layout.
func Encode(v Value) ([]byte, error) {
	if v.Kind() != KindTable {
		return nil, fmt.Errorf("tomlval: encode: top-level value is %s, want table", v.Kind())
	}
	plain, err := toInterface(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(plain); err != nil {
		return nil, fmt.Errorf("tomlval: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func toInterface(v Value) (any, error) {
	switch v.Kind() {
	case KindTable:
		tab, _ := (&v).Table()
		out := make(map[string]any, tab.Len())
		for _, key := range tab.Keys() {
			child, ok := tab.Get(key)
			if !ok {
				continue
			}
			plain, err := toInterface(*child)
			if err != nil {
				return nil, err
			}
			out[key] = plain
		}
		return out, nil
	case KindArray:
		items, _ := (&v).Array()
		out := make([]any, len(items))
		for i, item := range items {
			plain, err := toInterface(item)
			if err != nil {
				return nil, err
			}
			out[i] = plain
		}
		return out, nil
	case KindString:
		s, _ := (&v).AsString()
		return s, nil
	case KindInteger:
		n, _ := (&v).AsInteger()
		return n, nil
	case KindFloat:
		f, _ := (&v).AsFloat()
		return f, nil
	case KindBool:
		b, _ := (&v).AsBool()
		return b, nil
	default:
		return nil, fmt.Errorf("tomlval: encode: invalid value")
	}
}
