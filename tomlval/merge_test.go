package tomlval

import "testing"

func mustParse(t *testing.T, doc string) Value {
	t.Helper()
	v, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return v
}

func TestMergeTablesRecursively(t *testing.T) {
	base := mustParse(t, `
name = "grunt"
health = 50

[movement]
max_speed = 20
accel = 0.1
`)
	override := mustParse(t, `
health = 80

[movement]
accel = 0.5
`)

	merged := Merge(base, override)
	tab, ok := (&merged).Table()
	if !ok {
		t.Fatalf("merged value is %s, want table", merged.Kind())
	}

	if v, _ := tab.Get("name"); v == nil {
		t.Fatalf("base-only key dropped by merge")
	} else if s, _ := v.AsString(); s != "grunt" {
		t.Fatalf("name = %q, want grunt", s)
	}

	if v, _ := tab.Get("health"); v == nil {
		t.Fatalf("health missing")
	} else if n, _ := v.AsInteger(); n != 80 {
		t.Fatalf("health = %d, want override 80", n)
	}

	movement, _ := tab.Get("movement")
	moveTab, ok := movement.Table()
	if !ok {
		t.Fatalf("movement lost table shape")
	}
	if v, _ := moveTab.Get("max_speed"); v == nil {
		t.Fatalf("nested base-only key dropped")
	}
	if v, _ := moveTab.Get("accel"); v == nil {
		t.Fatalf("nested override key missing")
	} else if f, _ := v.AsFloat(); f != 0.5 {
		t.Fatalf("accel = %v, want 0.5", f)
	}
}

func TestMergeReplacesOnShapeMismatch(t *testing.T) {
	cases := []struct {
		name     string
		base     Value
		override Value
	}{
		{"array over array", ArrayValue(IntegerValue(1), IntegerValue(2)), ArrayValue(IntegerValue(9))},
		{"scalar over table", TableValue(NewTable()), StringValue("flat")},
		{"table over scalar", IntegerValue(3), TableValue(NewTable())},
		{"array over table", TableValue(NewTable()), ArrayValue(BoolValue(true))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Merge(tc.base, tc.override)
			if !Equal(got, tc.override) {
				t.Fatalf("merge did not replace wholesale: got kind %s", got.Kind())
			}
		})
	}
}

func TestMergeArraysNeverElementMerge(t *testing.T) {
	base := mustParse(t, `colliders = [{ shape = "Rectangle", width = 10.0, height = 10.0 }, { shape = "Circle", radius = 4.0 }]`)
	override := mustParse(t, `colliders = [{ shape = "Capsule", radius = 2.0, length = 6.0 }]`)

	merged := Merge(base, override)
	tab, _ := (&merged).Table()
	colliders, _ := tab.Get("colliders")
	if n := colliders.ArrayLen(); n != 1 {
		t.Fatalf("override array length = %d, want 1 (arrays replace, never merge)", n)
	}
	first := colliders.ArrayAt(0)
	firstTab, _ := first.Table()
	if v, _ := firstTab.Get("shape"); v == nil {
		t.Fatalf("replacement element missing shape")
	} else if s, _ := v.AsString(); s != "Capsule" {
		t.Fatalf("shape = %q, want Capsule", s)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := mustParse(t, `health = 50`)
	override := mustParse(t, `health = 80`)
	_ = Merge(base, override)

	baseTab, _ := (&base).Table()
	if v, _ := baseTab.Get("health"); v == nil {
		t.Fatalf("base lost key")
	} else if n, _ := v.AsInteger(); n != 50 {
		t.Fatalf("base mutated: health = %d", n)
	}
}
