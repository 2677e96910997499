// Package signer defines the Signer Adapter contract the frame engine depends on.
//
// Concrete identity protocols plug in by implementing Adapter. The engine asks
// the adapter whether a signer is present, delegates signing of every button
// press to it and never persists or mutates credentials itself. Two reference
// adapters ship with the module: anonymous (unsigned payloads) and jwt
// (payloads signed as a compact JWS).
package signer
