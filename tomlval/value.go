package tomlval

import (
	"github.com/iancoleman/orderedmap"
)

// Kind identifies the shape category of a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTable
	KindArray
	KindString
	KindInteger
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return "invalid"
	}
}

// Value is a parsed structured datum: a table, an array, or a scalar.
// The zero Value is invalid.
type Value struct {
	kind Kind
	tab  *Table
	arr  []Value
	str  string
	num  int64
	flt  float64
	bl   bool
}

// Table is a string-keyed map of Values that remembers insertion order.
// Authored key order matters to the editor UI, so tables never reorder
// on their own.
type Table struct {
	om *orderedmap.OrderedMap
}

func NewTable() *Table {
	return &Table{om: orderedmap.New()}
}

func (t *Table) Get(key string) (*Value, bool) {
	if t == nil || t.om == nil {
		return nil, false
	}
	raw, ok := t.om.Get(key)
	if !ok {
		return nil, false
	}
	v, ok := raw.(*Value)
	return v, ok
}

func (t *Table) Set(key string, v Value) {
	if t == nil {
		return
	}
	if t.om == nil {
		t.om = orderedmap.New()
	}
	t.om.Set(key, &v)
}

func (t *Table) Delete(key string) {
	if t == nil || t.om == nil {
		return
	}
	t.om.Delete(key)
}

func (t *Table) Has(key string) bool {
	_, ok := t.Get(key)
	return ok
}

// Keys returns a copy, so callers may mutate the table while ranging.
func (t *Table) Keys() []string {
	if t == nil || t.om == nil {
		return nil
	}
	return append([]string(nil), t.om.Keys()...)
}

func (t *Table) Len() int {
	return len(t.Keys())
}

func (t *Table) clone() *Table {
	if t == nil {
		return nil
	}
	out := NewTable()
	for _, key := range t.Keys() {
		if v, ok := t.Get(key); ok {
			out.Set(key, v.Clone())
		}
	}
	return out
}

// Constructors.

func TableValue(t *Table) Value {
	if t == nil {
		t = NewTable()
	}
	return Value{kind: KindTable, tab: t}
}

func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

func StringValue(s string) Value { return Value{kind: KindString, str: s} }

func IntegerValue(i int64) Value { return Value{kind: KindInteger, num: i} }

func FloatValue(f float64) Value { return Value{kind: KindFloat, flt: f} }

func BoolValue(b bool) Value { return Value{kind: KindBool, bl: b} }

func (v *Value) Kind() Kind {
	if v == nil {
		return KindInvalid
	}
	return v.kind
}

func (v *Value) IsValid() bool { return v.Kind() != KindInvalid }

// Table returns the backing table when v is a table.
func (v *Value) Table() (*Table, bool) {
	if v == nil || v.kind != KindTable {
		return nil, false
	}
	if v.tab == nil {
		v.tab = NewTable()
	}
	return v.tab, true
}

// Array returns the backing slice when v is an array. The slice is
// shared; use the Array* helpers for structural edits.
func (v *Value) Array() ([]Value, bool) {
	if v == nil || v.kind != KindArray {
		return nil, false
	}
	return v.arr, true
}

func (v *Value) ArrayLen() int {
	if v == nil || v.kind != KindArray {
		return 0
	}
	return len(v.arr)
}

// ArrayAt returns a pointer into the array so callers can edit the
// element in place. Out-of-range indexes return nil.
func (v *Value) ArrayAt(i int) *Value {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return nil
	}
	return &v.arr[i]
}

func (v *Value) ArrayAppend(item Value) {
	if v == nil || v.kind != KindArray {
		return
	}
	v.arr = append(v.arr, item)
}

func (v *Value) ArrayRemove(i int) {
	if v == nil || v.kind != KindArray || i < 0 || i >= len(v.arr) {
		return
	}
	v.arr = append(v.arr[:i], v.arr[i+1:]...)
}

func (v *Value) ArraySwap(i, j int) {
	if v == nil || v.kind != KindArray {
		return
	}
	if i < 0 || j < 0 || i >= len(v.arr) || j >= len(v.arr) {
		return
	}
	v.arr[i], v.arr[j] = v.arr[j], v.arr[i]
}

func (v *Value) AsString() (string, bool) {
	if v == nil || v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v *Value) AsInteger() (int64, bool) {
	if v == nil || v.kind != KindInteger {
		return 0, false
	}
	return v.num, true
}

func (v *Value) AsFloat() (float64, bool) {
	if v == nil || v.kind != KindFloat {
		return 0, false
	}
	return v.flt, true
}

// AsNumber reads either numeric kind as a float64.
func (v *Value) AsNumber() (float64, bool) {
	if v == nil {
		return 0, false
	}
	switch v.kind {
	case KindInteger:
		return float64(v.num), true
	case KindFloat:
		return v.flt, true
	default:
		return 0, false
	}
}

func (v *Value) AsBool() (bool, bool) {
	if v == nil || v.kind != KindBool {
		return false, false
	}
	return v.bl, true
}

// Clone deep-copies the value. Scalars copy trivially; tables and
// arrays copy element by element.
func (v Value) Clone() Value {
	switch v.kind {
	case KindTable:
		return Value{kind: KindTable, tab: v.tab.clone()}
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	default:
		return v
	}
}

// Equal reports deep equality. Integer and Float values compare equal
// when they represent the same number, so an edit that rewrites 50 as
// 50.0 does not mark a document dirty.
func Equal(a, b Value) bool {
	an, aIsNum := (&a).AsNumber()
	bn, bIsNum := (&b).AsNumber()
	if aIsNum && bIsNum {
		return an == bn
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindTable:
		ak := a.tab.Keys()
		bk := b.tab.Keys()
		if len(ak) != len(bk) {
			return false
		}
		for _, key := range ak {
			av, _ := a.tab.Get(key)
			bv, ok := b.tab.Get(key)
			if !ok || !Equal(*av, *bv) {
				return false
			}
		}
		return true
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindString:
		return a.str == b.str
	case KindBool:
		return a.bl == b.bl
	default:
		return a.kind == b.kind
	}
}
