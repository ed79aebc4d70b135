// Package ai defines the provider-agnostic chat types shared by the agent
// runtime and the LLM provider implementations.
//
// Request data flows through [ChatRequest] and responses come back as
// [ChatResponse]. Tool invocations requested by the model are carried as
// [ToolCall] values and answered with tool-role [Message]s whose content is
// usually a [ToolResult] rendered as JSON.
package ai
