// Package openai implements [ai.Provider] over the OpenAI chat completions
// API (POST {base}/chat/completions). Any OpenAI-compatible endpoint works by
// overriding the base URL.
//
//	provider := openai.NewOpenAIProvider().
//		WithAPIKey(cfg.OpenAIAPIKey).
//		WithBaseURL(cfg.OpenAIBaseURL)
package openai
