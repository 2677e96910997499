// Package wallet bridges the engine's transaction execution phase to an
// Ethereum JSON-RPC wallet endpoint. It issues eth_sendTransaction and
// eth_signTypedData_v4 calls over a viant/jsonrpc transport and returns the
// resulting transaction hash or signature to the engine.
package wallet
