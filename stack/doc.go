// Package stack implements the frame interaction stack: an append-at-head
// history of request/response exchanges plus the session state derived from the
// first successfully loaded frame.
//
// Reducer.Reduce is a pure transition function. Items are located by Identity
// and replaced with copy-on-write, so a transition can never touch an item it
// was not issued for, even with several requests in flight. Store wraps the
// reducer as the single writer and notifies listeners after each dispatch.
//
// RESET keeps the item at index 0, which is always the most recent exchange.
package stack
