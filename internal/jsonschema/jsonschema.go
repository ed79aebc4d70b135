package jsonschema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to describe tool parameters.
type Schema struct {
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object, keyed by their JSON name
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items describes the elements of an array
	Items *Schema `json:"items,omitempty"`
	// AdditionalProperties describes the values of a map
	AdditionalProperties *Schema `json:"additionalProperties,omitempty"`
	Enum                 []any   `json:"enum,omitempty"`
}

// GenerateJSONSchema builds the schema of T.
//
// Pointers are transparent. A struct type that contains itself is rendered as
// a plain object at the point of recursion. An error is returned when a
// jsonschema tag cannot be applied to its field.
func GenerateJSONSchema[T any]() (*Schema, error) {
	g := &generator{visiting: make(map[reflect.Type]bool)}
	schema := g.schemaFor(reflect.TypeFor[T]())
	if g.err != nil {
		return nil, g.err
	}
	return schema, nil
}

type generator struct {
	visiting map[reflect.Type]bool
	err      error
}

func (g *generator) schemaFor(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Pointer:
		return g.schemaFor(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: g.schemaFor(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: g.schemaFor(t.Elem())}
	case reflect.Struct:
		return g.structSchema(t)
	default:
		return &Schema{Type: "object"}
	}
}

func (g *generator) structSchema(t reflect.Type) *Schema {
	schema := &Schema{Type: "object"}
	if g.visiting[t] {
		return schema
	}
	g.visiting[t] = true
	defer delete(g.visiting, t)

	schema.Properties = make(map[string]*Schema)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		fieldSchema := g.schemaFor(field.Type)
		requiredByTag, err := applyTag(field, fieldSchema)
		if err != nil && g.err == nil {
			g.err = fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
		}
		schema.Properties[name] = fieldSchema

		if (field.Type.Kind() != reflect.Pointer && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

// jsonName returns the property name encoding/json would use for field.
func jsonName(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			omitEmpty = true
		}
	}
	return name, omitEmpty, false
}

// applyTag applies the jsonschema struct tag of field to schema and reports
// whether the field is explicitly required. Supported entries:
//
//	description=<text>   may contain commas
//	enum=<value>         repeatable, converted to the field's kind
//	required
func applyTag(field reflect.StructField, schema *Schema) (bool, error) {
	tag := field.Tag.Get("jsonschema")
	if tag == "" {
		return false, nil
	}

	required := false
	for _, entry := range splitTag(tag) {
		key, value, hasValue := strings.Cut(entry, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "description":
			schema.Description = value
		case key == "enum":
			v, err := enumValue(field.Type, value)
			if err != nil {
				return required, err
			}
			schema.Enum = append(schema.Enum, v)
		}
	}
	return required, nil
}

// splitTag splits a jsonschema tag on commas that start a new entry, so
// descriptions can carry commas of their own.
func splitTag(tag string) []string {
	var entries []string
	current := ""
	for _, part := range strings.Split(tag, ",") {
		if current != "" && !startsEntry(part) {
			current += "," + part
			continue
		}
		if current != "" {
			entries = append(entries, current)
		}
		current = part
	}
	if current != "" {
		entries = append(entries, current)
	}
	return entries
}

func startsEntry(part string) bool {
	key, _, _ := strings.Cut(part, "=")
	switch key {
	case "description", "enum", "required":
		return true
	}
	return false
}

func enumValue(t reflect.Type, value string) (any, error) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as integer: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as number: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as boolean: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type %v", t)
	}
}

// JsonString converts the Schema to its JSON representation, indented when
// indent is true.
func (s *Schema) JsonString(indent ...bool) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(indent) > 0 && indent[0] {
		data, err = json.MarshalIndent(s, "", "  ")
	} else {
		data, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(data), nil
}

func (s *Schema) String() string {
	out, err := s.JsonString()
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}
