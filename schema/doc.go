// Package schema defines the data exchanged between the frame engine, the proxy
// and the host: frames, buttons, multi-specification parse results, transaction
// intents and the engine's error taxonomy.
//
// Response bodies are discriminated with Guards (compiled JSON schemas) rather
// than by probing for field presence, so each body shape has one authoritative
// definition.
package schema
