// Package memory defines the Provider interface for conversation history.
// Read methods return errors so that a store backed by something other than
// process memory can surface failures. The in-process implementation lives in
// [github.com/leofalp/braveagent/providers/memory/inmemory].
package memory
