package openai

import (
	"encoding/json"
	"strings"

	"github.com/leofalp/braveagent/internal/jsonschema"
	"github.com/leofalp/braveagent/internal/utils"
	"github.com/leofalp/braveagent/providers/ai"
)

/*
	CHAT COMPLETIONS API - INPUT
*/

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`

	Tools      []chatTool `json:"tools,omitempty"`
	ToolChoice string     `json:"tool_choice,omitempty"` // "auto" whenever tools are offered
}

type chatMessage struct {
	Role       string         `json:"role"` // system, user, assistant, tool
	Content    string         `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"` // For role=tool
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`   // For role=assistant
}

type chatTool struct {
	Type     string       `json:"type"` // "function"
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"` // "function"
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"` // JSON string, parsed by the tool with ParseStringAs
	} `json:"function"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

type chatCompletionResponse struct {
	ID                string       `json:"id"`
	Object            string       `json:"object"` // "chat.completion"
	Created           int64        `json:"created"`
	Model             string       `json:"model"`
	SystemFingerprint string       `json:"system_fingerprint,omitempty"`
	Choices           []chatChoice `json:"choices"`
	Usage             *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"` // "stop", "length", "tool_calls", "content_filter"
}

type chatResponseMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content,omitempty"`
	ToolCalls []chatToolCall `json:"tool_calls,omitempty"`
	Refusal   string         `json:"refusal,omitempty"`
	Reasoning string         `json:"reasoning,omitempty"` // OpenRouter and some compatible servers
}

type chatUsage struct {
	PromptTokens        int `json:"prompt_tokens"`
	CompletionTokens    int `json:"completion_tokens"`
	TotalTokens         int `json:"total_tokens"`
	PromptTokensDetails *struct {
		CachedTokens int `json:"cached_tokens,omitempty"`
	} `json:"prompt_tokens_details,omitempty"`
}

/*
	CONVERSION FUNCTIONS
*/

// requestToChatCompletion converts ai.ChatRequest to chat completions format
func requestToChatCompletion(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{
		Model: request.Model,
	}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		chatMsg := chatMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
			Name:       msg.Name,
		}
		for _, tc := range msg.ToolCalls {
			toolCall := chatToolCall{ID: tc.ID, Type: tc.Type}
			if toolCall.Type == "" {
				toolCall.Type = "function"
			}
			toolCall.Function.Name = tc.Function.Name
			toolCall.Function.Arguments = tc.Function.Arguments
			chatMsg.ToolCalls = append(chatMsg.ToolCalls, toolCall)
		}
		req.Messages = append(req.Messages, chatMsg)
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature > 0 {
			temp := float64(cfg.Temperature)
			req.Temperature = &temp
		}
		if cfg.TopP > 0 {
			topP := float64(cfg.TopP)
			req.TopP = &topP
		}
		if cfg.MaxTokens > 0 {
			maxTokens := cfg.MaxTokens
			req.MaxTokens = &maxTokens
		}
	}

	for _, tl := range request.Tools {
		req.Tools = append(req.Tools, chatTool{
			Type: "function",
			Function: chatFunction{
				Name:        tl.Name,
				Description: tl.Description,
				Parameters:  tl.Parameters,
			},
		})
	}
	if len(req.Tools) > 0 {
		req.ToolChoice = "auto"
	}

	return req
}

// chatCompletionToGeneric converts the first choice of a chat completion
// response to ai.ChatResponse.
func chatCompletionToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	chatResp := &ai.ChatResponse{
		Id:      resp.ID,
		Model:   resp.Model,
		Created: resp.Created,
	}
	if len(resp.Choices) == 0 {
		chatResp.FinishReason = "error"
		return chatResp
	}

	choice := resp.Choices[0]
	chatResp.FinishReason = choice.FinishReason
	chatResp.Refusal = choice.Message.Refusal

	content := strings.TrimSpace(choice.Message.Content)
	reasoning := strings.TrimSpace(choice.Message.Reasoning)
	if thought := extractReasoningFromThinkTags(content); thought != "" {
		reasoning = strings.TrimSpace(reasoning + "\n" + thought)
		content = cleanThinkTags(content)
	}
	chatResp.Content = content
	chatResp.Reasoning = reasoning

	for _, tc := range choice.Message.ToolCalls {
		chatResp.ToolCalls = append(chatResp.ToolCalls, ai.ToolCall{
			ID:   tc.ID,
			Type: tc.Type,
			Function: ai.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	// Some compatible servers put tool calls in the content instead.
	if len(chatResp.ToolCalls) == 0 && content != "" {
		if parsed := parseToolCallsFromContent(content); len(parsed) > 0 {
			chatResp.ToolCalls = parsed
			chatResp.Content = ""
			if chatResp.FinishReason == "stop" {
				chatResp.FinishReason = "tool_calls"
			}
		}
	}

	if resp.Usage != nil {
		chatResp.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
		if resp.Usage.PromptTokensDetails != nil {
			chatResp.Usage.CachedTokens = resp.Usage.PromptTokensDetails.CachedTokens
		}
	}

	return chatResp
}

// parseToolCallsFromContent recognises <TOOLCALL>[...]</TOOLCALL> blocks and
// bare JSON arrays of {"name", "arguments"} objects. Plain prose yields nil.
func parseToolCallsFromContent(content string) []ai.ToolCall {
	payload := strings.TrimSpace(content)
	if start := strings.Index(payload, "<TOOLCALL>"); start != -1 {
		end := strings.Index(payload, "</TOOLCALL>")
		if end <= start {
			return nil
		}
		payload = strings.TrimSpace(payload[start+len("<TOOLCALL>") : end])
	}
	if !strings.HasPrefix(payload, "[") || !strings.HasSuffix(payload, "]") {
		return nil
	}

	type parsedCall struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	calls, err := utils.ParseStringAs[[]parsedCall](payload)
	if err != nil {
		return nil
	}

	var toolCalls []ai.ToolCall
	for _, call := range calls {
		if call.Name == "" {
			continue
		}
		args := string(call.Arguments)
		if args == "" {
			args = "{}"
		}
		toolCalls = append(toolCalls, ai.ToolCall{
			Type:     "function",
			Function: ai.ToolCallFunction{Name: call.Name, Arguments: args},
		})
	}
	return toolCalls
}

// extractReasoningFromThinkTags returns the text inside <think>...</think>,
// as emitted by reasoning models such as DeepSeek. The opening tag is
// optional; the closing one is not.
func extractReasoningFromThinkTags(content string) string {
	start := strings.Index(content, "<think>")
	if start == -1 {
		start = 0
	} else {
		start += len("<think>")
	}

	end := strings.Index(content, "</think>")
	if end == -1 || end < start {
		return ""
	}
	return strings.TrimSpace(content[start:end])
}

// cleanThinkTags removes the <think> block and returns the remaining answer.
func cleanThinkTags(content string) string {
	start := strings.Index(content, "<think>")
	if start == -1 {
		start = 0
	}

	end := strings.Index(content, "</think>")
	if end == -1 || end < start {
		return content
	}
	return strings.TrimSpace(content[:start] + content[end+len("</think>"):])
}
