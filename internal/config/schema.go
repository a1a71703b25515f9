package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SettingsSchema returns a JSON Schema describing settings.json.
func SettingsSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&Settings{})
	sch.Title = "termctl settings"
	sch.Description = "Terminal pane settings stored in settings.json."
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
