// Package store persists signer credentials on behalf of signer adapters.
//
// The frame engine itself never touches credentials; adapters that need to
// survive restarts keep them here. It ships with an in-memory store for tests
// and short-lived hosts and an afs-backed store that can write to any URL
// scheme afs supports (file://, mem://, gs://, s3://).
package store
