// Package resolve classifies proxy responses.
//
// Classify evaluates an ordered list of guards: transport failure, redirect,
// structured message, opaque error, malformed body and finally success. The
// first guard that matches decides the outcome, so a body that would satisfy
// more than one shape is always interpreted the same way.
package resolve
