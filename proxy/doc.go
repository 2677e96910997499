// Package proxy implements the client side of the frame proxy contract.
//
// The engine never contacts frame servers directly: GET requests ask the proxy
// to fetch and parse a frame URL under every supported specification, POST
// requests forward a signed button press. The client does not follow
// redirects, so a 302 from a post_redirect button is visible to the caller.
package proxy
