package schema

// ButtonAction identifies what pressing a frame button does.
type ButtonAction string

const (
	ActionPost         ButtonAction = "post"
	ActionPostRedirect ButtonAction = "post_redirect"
	ActionLink         ButtonAction = "link"
	ActionMint         ButtonAction = "mint"
	ActionTx           ButtonAction = "tx"
)

// Known reports whether the action is one the engine can route.
func (a ButtonAction) Known() bool {
	switch a {
	case ActionPost, ActionPostRedirect, ActionLink, ActionMint, ActionTx:
		return true
	}
	return false
}

const (
	MethodSendTransaction = "eth_sendTransaction"
	MethodSignTypedDataV4 = "eth_signTypedData_v4"
)

// Specification names used as keys of a multi-specification parse result.
const (
	SpecificationFarcaster   = "farcaster"
	SpecificationFarcasterV2 = "farcaster_v2"
	SpecificationOpenFrames  = "openframes"
	FarcasterManifestKey     = "farcaster_manifest"
)
