// Package collection provides small concurrency-safe containers shared by the engine.
package collection
