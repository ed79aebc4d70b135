// Package assistant defines the Brave Search assistant: its dependencies, the
// tools the model may call and the system prompt that describes them.
//
// Tools are built per run from a [Deps] value by [Toolset], so a single agent
// can serve any implementation of the dependencies, including test doubles.
package assistant
