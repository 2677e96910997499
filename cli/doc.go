// Package cli implements the frames command line client.
//
// The client loads a home frame through the configured proxy, renders the
// current stack item as text and reads commands from standard input: a button
// number presses that button, "input <text>" sets the frame input text and
// "reset", "clear", "stack", "tx" and "quit" manage the session.
package cli
