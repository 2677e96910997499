// Package engine drives a frame through its request/response lifecycle.
//
// An Engine owns the interaction stack and turns host intents (load a URL,
// press a button) into signed proxy calls. Every outcome, including failures,
// is recorded on the stack; Handler callbacks notify the host of redirects,
// messages, errors and wallet interactions.
//
// Transaction and signature buttons run a two-round exchange: the button target
// returns a transaction intent, the host's wallet handler executes it and the
// resulting id is posted back to the frame, reusing the pending stack item of
// the first round so the stack shows a single logical entry.
//
// Each fetch runs under an abort handle keyed by its source. A GET fetch cancels
// the previous in-flight GET; button presses are independent of each other.
// Nothing is dispatched by a fetch whose context was cancelled.
package engine
