package mcp

import (
	"encoding/json"
	"fmt"
)

// ValidateToolCall checks a call's name and required arguments against the
// tool's input schema, and the JSON type of every argument whose property
// declares one
func ValidateToolCall(tool Tool, call ToolCallParams) error {
	if call.Name != tool.Name {
		return fmt.Errorf("tool name mismatch: expected %s, got %s", tool.Name, call.Name)
	}

	for _, fieldName := range requiredFields(tool.InputSchema["required"]) {
		if _, exists := call.Arguments[fieldName]; !exists {
			return NewJSONRPCError(ErrCodeInvalidParams, fmt.Sprintf("required field missing: %s", fieldName), nil)
		}
	}

	props, ok := tool.InputSchema["properties"].(map[string]interface{})
	if !ok {
		return nil
	}
	for fieldName, fieldValue := range call.Arguments {
		fieldDef, ok := props[fieldName].(map[string]interface{})
		if !ok {
			continue
		}
		expectedType, ok := fieldDef["type"].(string)
		if !ok {
			continue
		}
		if actualType := jsonType(fieldValue); actualType != expectedType {
			return NewJSONRPCError(ErrCodeInvalidParams,
				fmt.Sprintf("type mismatch for field %s: expected %s, got %s", fieldName, expectedType, actualType), nil)
		}
	}

	return nil
}

// requiredFields accepts both a Go-built []string and a decoded []interface{}
func requiredFields(v interface{}) []string {
	switch fields := v.(type) {
	case []string:
		return fields
	case []interface{}:
		out := make([]string, 0, len(fields))
		for _, f := range fields {
			if s, ok := f.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// jsonType returns the JSON type of a decoded value
func jsonType(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case json.Number, float64, int, int64:
		return "number"
	case bool:
		return "boolean"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	case nil:
		return "null"
	default:
		return "unknown"
	}
}
