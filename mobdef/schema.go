package mobdef

import "github.com/invopop/jsonschema"

// BuildSchema reflects the definition document into a JSON schema for
// editor tooling and authored-file validation.
func BuildSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(MobDefinition))
	schema.Title = "Mob Definition"
	schema.Description = "Designer-authored mob document resolved from the base, extended and patch layers."
	return schema
}
