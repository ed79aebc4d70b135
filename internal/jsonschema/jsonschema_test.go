package jsonschema

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestGeneratesPrimitiveSchemas(t *testing.T) {
	tests := []struct {
		name     string
		generate func() (*Schema, error)
		expected string
	}{
		{"string", GenerateJSONSchema[string], "string"},
		{"int", GenerateJSONSchema[int], "integer"},
		{"uint16", GenerateJSONSchema[uint16], "integer"},
		{"float32", GenerateJSONSchema[float32], "number"},
		{"bool", GenerateJSONSchema[bool], "boolean"},
		{"pointer", GenerateJSONSchema[*string], "string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := tt.generate()
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if schema.Type != tt.expected {
				t.Errorf("Expected type '%s', got '%s'", tt.expected, schema.Type)
			}
		})
	}
}

func TestGeneratesArrayAndMapSchemas(t *testing.T) {
	schema, err := GenerateJSONSchema[[]int]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if schema.Type != "array" || schema.Items == nil || schema.Items.Type != "integer" {
		t.Errorf("Unexpected array schema: %s", schema)
	}

	schema, err = GenerateJSONSchema[map[string]bool]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if schema.Type != "object" || schema.AdditionalProperties == nil || schema.AdditionalProperties.Type != "boolean" {
		t.Errorf("Unexpected map schema: %s", schema)
	}
}

type pageInput struct {
	URL        string `json:"url" jsonschema:"description=Absolute URL of the page, including the scheme"`
	AsMarkdown bool   `json:"as_markdown,omitempty" jsonschema:"description=Render the page as Markdown"`
	Internal   string `json:"-"`
	hidden     string
	Untagged   int
}

func TestStructPropertiesAndRequired(t *testing.T) {
	schema, err := GenerateJSONSchema[pageInput]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if schema.Type != "object" {
		t.Fatalf("Expected object, got %s", schema.Type)
	}

	if len(schema.Properties) != 3 {
		t.Fatalf("Expected 3 properties, got %d: %s", len(schema.Properties), schema)
	}
	if schema.Properties["url"].Description != "Absolute URL of the page, including the scheme" {
		t.Errorf("Description with comma not preserved: %q", schema.Properties["url"].Description)
	}
	if schema.Properties["as_markdown"].Type != "boolean" {
		t.Errorf("Expected boolean for as_markdown")
	}
	if _, ok := schema.Properties["Untagged"]; !ok {
		t.Errorf("Expected untagged field to use its Go name")
	}

	expected := []string{"url", "Untagged"}
	if !reflect.DeepEqual(schema.Required, expected) {
		t.Errorf("Expected required %v, got %v", expected, schema.Required)
	}
}

type enumInput struct {
	SafeSearch string  `json:"safesearch,omitempty" jsonschema:"enum=off,enum=moderate,enum=strict,description=Adult content filter"`
	Count      int     `json:"count,omitempty" jsonschema:"enum=5,enum=10"`
	Ratio      float64 `json:"ratio,omitempty" jsonschema:"enum=0.5"`
	Fresh      *bool   `json:"fresh" jsonschema:"required,enum=true"`
}

func TestEnumAndRequiredTags(t *testing.T) {
	schema, err := GenerateJSONSchema[enumInput]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	safe := schema.Properties["safesearch"]
	if !reflect.DeepEqual(safe.Enum, []any{"off", "moderate", "strict"}) {
		t.Errorf("Unexpected string enum: %v", safe.Enum)
	}
	if safe.Description != "Adult content filter" {
		t.Errorf("Unexpected description: %q", safe.Description)
	}
	if !reflect.DeepEqual(schema.Properties["count"].Enum, []any{int64(5), int64(10)}) {
		t.Errorf("Unexpected int enum: %v", schema.Properties["count"].Enum)
	}
	if !reflect.DeepEqual(schema.Properties["ratio"].Enum, []any{0.5}) {
		t.Errorf("Unexpected float enum: %v", schema.Properties["ratio"].Enum)
	}
	if !reflect.DeepEqual(schema.Properties["fresh"].Enum, []any{true}) {
		t.Errorf("Unexpected bool enum: %v", schema.Properties["fresh"].Enum)
	}
	if !reflect.DeepEqual(schema.Required, []string{"fresh"}) {
		t.Errorf("Expected only the tagged pointer to be required, got %v", schema.Required)
	}
}

type badEnum struct {
	Count int `json:"count" jsonschema:"enum=ten"`
}

func TestInvalidEnumReturnsError(t *testing.T) {
	_, err := GenerateJSONSchema[badEnum]()
	if err == nil {
		t.Fatal("Expected error for non-numeric enum on int field")
	}
	if !strings.Contains(err.Error(), "badEnum.Count") {
		t.Errorf("Expected field name in error, got %v", err)
	}
}

type result struct {
	Title string `json:"title"`
}

type nested struct {
	Results []result `json:"results"`
}

type node struct {
	Name     string  `json:"name"`
	Children []*node `json:"children,omitempty"`
}

func TestNestedAndRecursiveStructs(t *testing.T) {
	schema, err := GenerateJSONSchema[nested]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	items := schema.Properties["results"].Items
	if items == nil || items.Type != "object" || items.Properties["title"].Type != "string" {
		t.Errorf("Unexpected nested schema: %s", schema)
	}

	schema, err = GenerateJSONSchema[node]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	child := schema.Properties["children"].Items
	if child == nil || child.Type != "object" || child.Properties != nil {
		t.Errorf("Expected recursion to stop at a plain object, got %s", schema)
	}
}

func TestJsonString(t *testing.T) {
	schema, err := GenerateJSONSchema[result]()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	compact, err := schema.JsonString()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if strings.Contains(compact, "\n") {
		t.Errorf("Expected compact JSON, got %s", compact)
	}

	indented, err := schema.JsonString(true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(indented, "\n  ") {
		t.Errorf("Expected indented JSON, got %s", indented)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(schema.String()), &decoded); err != nil {
		t.Fatalf("String() is not valid JSON: %v", err)
	}
	if decoded["type"] != "object" {
		t.Errorf("Unexpected decoded type: %v", decoded["type"])
	}
}
