// Package frames provides high-level helpers for embedding the frame interaction engine.
//
// The package glues the engine with a configured proxy transport, a signer
// adapter and an optional wallet bridge. In practice it is used as an umbrella
// package that exposes two entry-points:
//  1. LoadOptions – reads EngineOptions from a YAML or JSON document on any afs supported storage and
//  2. NewEngine – returns a fully configured engine.Engine.
//
// EngineOptions can be populated from CLI flags or configuration files.
//
// Example:
//
//	options, _ := frames.LoadOptions(ctx, "file:///etc/frames/config.yaml")
//	eng, _ := frames.NewEngine(ctx, options, &engine.Handler{ /* … */ })
//	_ = eng.FetchFrame(ctx, &engine.GetRequest{URL: options.HomeframeURL}, true)
package frames
