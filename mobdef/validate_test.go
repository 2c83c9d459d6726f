package mobdef

import (
	"testing"
)

func issuePaths(result ValidationResult) map[string]bool {
	paths := make(map[string]bool, len(result.Issues))
	for _, issue := range result.Issues {
		paths[issue.Path] = true
	}
	return paths
}

func TestValidateCleanDocument(t *testing.T) {
	doc := parseDoc(t, `
name = "raider/grunt"
sprite = "raider_grunt"
health = 60
restitution = 0.5
friction = 2.0
max_linear_speed = [20.0, 20.0]
colliders = [{ shape = "Rectangle", width = 10.0, height = 10.0 }]

[mob_spawners.vents]
timer = 6.0
mob_ref = "raider/grunt"
`)
	result := Validate(doc)
	if len(result.Issues) != 0 {
		t.Fatalf("unexpected issues: %+v", result.Issues)
	}
}

func TestValidateFindings(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		path string
	}{
		{"missing name", `sprite = "x"`, "name"},
		{"empty sprite", `
name = "x"
sprite = ""
`, "sprite"},
		{"non-integer health", `
name = "x"
sprite = "x"
health = 12.5
`, "health"},
		{"non-positive health", `
name = "x"
sprite = "x"
health = 0
`, "health"},
		{"restitution out of range", `
name = "x"
sprite = "x"
restitution = 1.5
`, "restitution"},
		{"friction out of range", `
name = "x"
sprite = "x"
friction = 11.0
`, "friction"},
		{"bad vec2", `
name = "x"
sprite = "x"
max_linear_speed = [1.0, 2.0, 3.0]
`, "max_linear_speed"},
		{"unknown collider shape", `
name = "x"
sprite = "x"
colliders = [{ shape = "Hexagon" }]
`, "colliders[0].shape"},
		{"rectangle missing height", `
name = "x"
sprite = "x"
colliders = [{ shape = "Rectangle", width = 4.0 }]
`, "colliders[0].height"},
		{"capsule missing length", `
name = "x"
sprite = "x"
colliders = [{ shape = "Capsule", radius = 2.0 }]
`, "colliders[0].length"},
		{"mob spawner missing ref", `
name = "x"
sprite = "x"

[mob_spawners.vents]
timer = 2.0
`, "mob_spawners.vents.mob_ref"},
		{"projectile spawner missing faction", `
name = "x"
sprite = "x"

[projectile_spawners.mouth]
timer = 1.0
projectile_type = "bolt"
`, "projectile_spawners.mouth.faction"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := Validate(parseDoc(t, tc.doc))
			if !result.HasErrors() {
				t.Fatalf("expected errors, got none")
			}
			if !issuePaths(result)[tc.path] {
				t.Fatalf("no issue at %q, have %+v", tc.path, result.Issues)
			}
		})
	}
}

func TestValidateIntegerHealthAccepted(t *testing.T) {
	result := Validate(parseDoc(t, `
name = "x"
sprite = "x"
health = 75
`))
	if result.HasErrors() {
		t.Fatalf("unexpected errors: %+v", result.Issues)
	}
}
