// Package jsonschema derives JSON Schema documents from Go types by reflection.
//
// Tool input types are described to the model with these schemas: struct
// fields become object properties named after their json tag, and the
// jsonschema tag adds a description, enum values or an explicit required
// marker:
//
//	type searchInput struct {
//		Query string `json:"query" jsonschema:"description=Search query"`
//		Count int    `json:"count,omitempty" jsonschema:"description=Number of results, 1 to 20"`
//	}
//
// The main entry point is [GenerateJSONSchema].
package jsonschema
