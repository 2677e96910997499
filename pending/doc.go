// Package pending tracks interactions that wait on something outside the
// engine, such as a wallet confirming a transaction or producing a signature.
//
// The package centralizes only the lifecycle concerns:
// - Create a typed pending entry bound to a namespace (the logical fetch source)
// - List entries of a namespace
// - Complete or cancel an entry; cancelling aborts the context of the waiter
package pending
