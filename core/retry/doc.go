// Package retry runs one conversational turn of an agent with a bounded number
// of attempts and a fixed delay between them.
package retry
