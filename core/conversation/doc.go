// Package conversation implements the interactive chat loop: it reads user
// lines, runs one agent turn per line and keeps the session history in a
// [memory.Provider].
package conversation
