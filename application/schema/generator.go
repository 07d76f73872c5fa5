// Package schema generates the JSON Schema published next to every link plan manifest.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/amdgpu-go/devlibs/domain/entities"
)

// PlanSchemaID identifies the link plan manifest format.
const PlanSchemaID = "https://github.com/amdgpu-go/devlibs/link-plan.schema.json"

// PlanSchemaTitle is the human-readable title of the manifest schema.
const PlanSchemaTitle = "Device library link plan"

// GenerateSchema reflects v into a self-contained JSON Schema (Draft 2020-12).
// Nested types are inlined rather than referenced. Empty id or title are omitted.
func GenerateSchema(v any, id, title string) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
	}
	schema := reflector.Reflect(v)
	if id != "" {
		schema.ID = jsonschema.ID(id)
	}
	if title != "" {
		schema.Title = title
	}

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return out, nil
}

// PlanSchema returns the schema of the link plan manifest (entities.PlanManifest).
func PlanSchema() ([]byte, error) {
	return GenerateSchema(&entities.PlanManifest{}, PlanSchemaID, PlanSchemaTitle)
}
