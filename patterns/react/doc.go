// Package react implements the ReAct (Reasoning + Acting) agentic pattern on
// top of the core client. It drives an iterative tool-execution loop in which
// the model alternates between reasoning steps and tool calls until it
// produces a final text answer.
//
// The main entry point is [New], which wraps a configured [client.Client] and
// a toolset bound to a caller-defined dependencies type D. [Agent.Run] takes
// the user input, the dependencies and the prior history, and returns the
// answer together with the messages produced by the run.
//
// Tool faults never abort a run: unknown tools, malformed arguments, tool
// errors and panics are reported back to the model as a failed
// [ai.ToolResult] so it can recover.
package react
