// Package tool turns typed Go functions into tools an LLM can call.
//
// [NewTool] derives the parameter schema of a tool from its input type, and
// [Tool.Call] decodes the model's JSON arguments (repairing them when needed),
// runs the function and encodes the result. A [Catalog] holds the tools
// offered to the model during one agent run.
//
// The provider subpackages hold the HTTP clients behind the tools:
// bravesearch for the Brave Search API and webfetch for page retrieval.
package tool
