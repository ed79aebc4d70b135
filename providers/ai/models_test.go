package ai

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestToolResultSuccessJSON(t *testing.T) {
	result := NewToolResultSuccess(map[string]int{"count": 3})

	out, err := result.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != `{"success":true,"data":{"count":3}}` {
		t.Errorf("unexpected JSON: %s", out)
	}
}

func TestToolResultErrorJSON(t *testing.T) {
	result := NewToolResultError(ToolErrorNotFound, "tool 'x' is not available")

	out, err := result.ToJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded["success"] != false {
		t.Errorf("expected success=false, got %v", decoded["success"])
	}
	if decoded["error"] != ToolErrorNotFound {
		t.Errorf("expected error code %q, got %v", ToolErrorNotFound, decoded["error"])
	}
	if _, ok := decoded["data"]; ok {
		t.Error("expected data to be omitted on failure")
	}
}

func TestToolResultToJSONPropagatesMarshalError(t *testing.T) {
	_, err := NewToolResultSuccess(math.NaN()).ToJSON()
	if err == nil || !strings.Contains(err.Error(), "unsupported value") {
		t.Errorf("expected marshal error, got %v", err)
	}
}

func TestChatResponseAsMessage(t *testing.T) {
	resp := &ChatResponse{
		Content: "searching",
		ToolCalls: []ToolCall{{
			ID:       "call_1",
			Type:     "function",
			Function: ToolCallFunction{Name: "search_web", Arguments: `{"query":"go"}`},
		}},
		Reasoning: "should search",
	}

	msg := resp.AsMessage()
	if msg.Role != RoleAssistant {
		t.Errorf("expected assistant role, got %s", msg.Role)
	}
	if msg.Content != "searching" || len(msg.ToolCalls) != 1 || msg.ToolCalls[0].ID != "call_1" {
		t.Errorf("unexpected message: %+v", msg)
	}
}
