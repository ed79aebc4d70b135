// Package inmemory provides a concurrency-safe, slice-backed [memory.Provider]
// for keeping one session's chat history in process memory. Nothing survives
// a restart.
package inmemory
