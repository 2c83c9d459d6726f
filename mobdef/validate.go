package mobdef

import (
	"fmt"
	"strconv"

	"voidwake/mobs/tomlval"
)

type IssueSeverity string

const (
	IssueError   IssueSeverity = "error"
	IssueWarning IssueSeverity = "warning"
)

// Issue is one validation finding, addressed by a dotted field path.
type Issue struct {
	Path     string        `json:"path"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
}

type ValidationResult struct {
	Issues []Issue `json:"issues"`
}

func (r ValidationResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == IssueError {
			return true
		}
	}
	return false
}

func (r *ValidationResult) add(path string, severity IssueSeverity, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{Path: path, Severity: severity, Message: fmt.Sprintf(format, args...)})
}

// Validate checks an authored document before save. It works on the
// generic value so the editor can surface findings against fields the
// typed decoder would reject outright.
func Validate(doc tomlval.Value) ValidationResult {
	var result ValidationResult
	tab, ok := (&doc).Table()
	if !ok {
		result.add("", IssueError, "document is %s, want table", doc.Kind())
		return result
	}

	checkRequiredString(&result, tab, "name")
	checkRequiredString(&result, tab, "sprite")
	checkHealth(&result, tab)

	for _, field := range []string{"max_linear_speed", "linear_acceleration", "linear_deceleration"} {
		checkVec2(&result, tab, field)
	}

	checkRange(&result, tab, "restitution", 0, 1)
	checkRange(&result, tab, "friction", 0, 10)

	checkColliders(&result, tab)
	checkMobSpawners(&result, tab)
	checkProjectileSpawners(&result, tab)

	return result
}

func checkRequiredString(result *ValidationResult, tab *tomlval.Table, field string) {
	v, ok := tab.Get(field)
	if !ok {
		result.add(field, IssueError, "required field is missing")
		return
	}
	s, ok := v.AsString()
	if !ok {
		result.add(field, IssueError, "must be a string, got %s", v.Kind())
		return
	}
	if s == "" {
		result.add(field, IssueError, "must not be empty")
	}
}

func checkHealth(result *ValidationResult, tab *tomlval.Table) {
	v, ok := tab.Get("health")
	if !ok {
		return
	}
	n, ok := v.AsInteger()
	if !ok {
		result.add("health", IssueError, "must be an integer, got %s", v.Kind())
		return
	}
	if n <= 0 {
		result.add("health", IssueError, "must be positive, got %d", n)
	}
}

func checkVec2(result *ValidationResult, tab *tomlval.Table, field string) {
	v, ok := tab.Get(field)
	if !ok {
		return
	}
	if !isVec2(v) {
		result.add(field, IssueError, "must be a two-element numeric array")
	}
}

func isVec2(v *tomlval.Value) bool {
	if v.ArrayLen() != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if _, ok := v.ArrayAt(i).AsNumber(); !ok {
			return false
		}
	}
	return true
}

func checkRange(result *ValidationResult, tab *tomlval.Table, field string, lo, hi float64) {
	v, ok := tab.Get(field)
	if !ok {
		return
	}
	n, ok := v.AsNumber()
	if !ok {
		result.add(field, IssueError, "must be numeric, got %s", v.Kind())
		return
	}
	if n < lo || n > hi {
		result.add(field, IssueError, "must be between %v and %v, got %v", lo, hi, n)
	}
}

func checkColliders(result *ValidationResult, tab *tomlval.Table) {
	v, ok := tab.Get("colliders")
	if !ok {
		return
	}
	items, ok := v.Array()
	if !ok {
		result.add("colliders", IssueError, "must be an array of tables")
		return
	}
	for i := range items {
		path := "colliders[" + strconv.Itoa(i) + "]"
		collider, ok := items[i].Table()
		if !ok {
			result.add(path, IssueError, "must be a table")
			continue
		}
		shapeVal, ok := collider.Get("shape")
		if !ok {
			result.add(path+".shape", IssueError, "required field is missing")
			continue
		}
		shape, ok := shapeVal.AsString()
		if !ok {
			result.add(path+".shape", IssueError, "must be a string")
			continue
		}
		switch shape {
		case "Rectangle":
			requireNumeric(result, collider, path, "width")
			requireNumeric(result, collider, path, "height")
		case "Circle":
			requireNumeric(result, collider, path, "radius")
		case "Capsule":
			requireNumeric(result, collider, path, "radius")
			requireNumeric(result, collider, path, "length")
		default:
			result.add(path+".shape", IssueError, "unknown shape %q, want Rectangle, Circle or Capsule", shape)
		}
	}
}

func requireNumeric(result *ValidationResult, tab *tomlval.Table, base, field string) {
	v, ok := tab.Get(field)
	if !ok {
		result.add(base+"."+field, IssueError, "required field is missing")
		return
	}
	if _, ok := v.AsNumber(); !ok {
		result.add(base+"."+field, IssueError, "must be numeric, got %s", v.Kind())
	}
}

func checkMobSpawners(result *ValidationResult, tab *tomlval.Table) {
	checkSpawnerGroup(result, tab, "mob_spawners", func(path string, spawner *tomlval.Table) {
		requireNumeric(result, spawner, path, "timer")
		requireString(result, spawner, path, "mob_ref")
	})
}

func checkProjectileSpawners(result *ValidationResult, tab *tomlval.Table) {
	checkSpawnerGroup(result, tab, "projectile_spawners", func(path string, spawner *tomlval.Table) {
		requireNumeric(result, spawner, path, "timer")
		requireString(result, spawner, path, "projectile_type")
		requireString(result, spawner, path, "faction")
	})
}

func checkSpawnerGroup(result *ValidationResult, tab *tomlval.Table, field string, check func(string, *tomlval.Table)) {
	v, ok := tab.Get(field)
	if !ok {
		return
	}
	group, ok := v.Table()
	if !ok {
		result.add(field, IssueError, "must be a table of spawners")
		return
	}
	for _, key := range group.Keys() {
		entryVal, ok := group.Get(key)
		if !ok {
			continue
		}
		path := field + "." + key
		spawner, ok := entryVal.Table()
		if !ok {
			result.add(path, IssueError, "must be a table")
			continue
		}
		check(path, spawner)
	}
}

func requireString(result *ValidationResult, tab *tomlval.Table, base, field string) {
	v, ok := tab.Get(field)
	if !ok {
		result.add(base+"."+field, IssueError, "required field is missing")
		return
	}
	if s, ok := v.AsString(); !ok || s == "" {
		result.add(base+"."+field, IssueError, "must be a non-empty string")
	}
}
