package tomlval

// Merge layers override on top of base and returns the result without
// mutating either input. Two tables merge key by key, recursing where
// both sides carry a table under the same key. Any other pairing, a
// mismatched shape or a scalar or an array on either side, replaces
// the base value wholesale. Arrays are never element-merged.
func Merge(base, override Value) Value {
	baseTab, baseOK := (&base).Table()
	overTab, overOK := (&override).Table()
	if !baseOK || !overOK {
		return override.Clone()
	}

	merged := NewTable()
	for _, key := range baseTab.Keys() {
		if v, ok := baseTab.Get(key); ok {
			merged.Set(key, v.Clone())
		}
	}
	for _, key := range overTab.Keys() {
		overVal, ok := overTab.Get(key)
		if !ok {
			continue
		}
		if existing, ok := merged.Get(key); ok {
			merged.Set(key, Merge(*existing, *overVal))
		} else {
			merged.Set(key, overVal.Clone())
		}
	}
	return TableValue(merged)
}
