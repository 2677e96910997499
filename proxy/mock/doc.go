// Package mock provides an in-process frame proxy that facilitates unit
// testing of the engine without real frame servers.
//
// Handlers can be replaced per test; every request is recorded so tests can
// assert on what the engine sent.
package mock
