package frames

import (
	"fmt"
	"net/http"

	"github.com/viant/frames/proxy/transport"
	"github.com/viant/frames/schema"
)

const (
	SignerAnonymous = "anonymous"
	SignerJWT       = "jwt"
)

// EngineOptions defines options for configuring a frame engine.
type EngineOptions struct {
	ProxyURL               string  `yaml:"proxyURL" json:"proxyURL"  short:"p" long:"proxy" description:"frame proxy url"`
	GetProxyURL            string  `yaml:"getProxyURL,omitempty" json:"getProxyURL,omitempty"  long:"get-proxy" description:"dedicated GET frame proxy url"`
	PostProxyURL           string  `yaml:"postProxyURL,omitempty" json:"postProxyURL,omitempty"  long:"post-proxy" description:"dedicated POST frame proxy url"`
	HomeframeURL           string  `yaml:"homeframeURL,omitempty" json:"homeframeURL,omitempty"  short:"u" long:"url" description:"home frame url"`
	ParseFarcasterManifest bool    `yaml:"parseFarcasterManifest,omitempty" json:"parseFarcasterManifest,omitempty"  long:"manifest" description:"parse farcaster manifest"`
	Specification          string  `yaml:"specification,omitempty" json:"specification,omitempty"  short:"s" long:"specification" description:"frame specification" choice:"openframes" choice:"farcaster" choice:"farcaster_v2"`
	RequestsPerSecond      float64 `yaml:"requestsPerSecond,omitempty" json:"requestsPerSecond,omitempty"  long:"rps" description:"max proxy requests per second"`
	Burst                  int     `yaml:"burst,omitempty" json:"burst,omitempty"  long:"burst" description:"proxy request burst"`
	TransactionDataSuffix  string  `yaml:"transactionDataSuffix,omitempty" json:"transactionDataSuffix,omitempty"  long:"tx-suffix" description:"hex suffix appended to transaction data"`

	ProxyAuth *ProxyAuth     `yaml:"proxyAuth,omitempty" json:"proxyAuth,omitempty" group:"proxy auth"`
	Signer    *SignerOptions `yaml:"signer,omitempty" json:"signer,omitempty" group:"signer"`
	Wallet    *WalletOptions `yaml:"wallet,omitempty" json:"wallet,omitempty" group:"wallet"`
	Extra     map[string]any `yaml:"extra,omitempty" json:"extra,omitempty" no-flag:"true"`

	// HTTPClient, if set, is used as the base client for proxy calls.
	HTTPClient *http.Client `yaml:"-" json:"-" no-flag:"true"`
	// CookieJar, if set, keeps proxy session cookies across calls.
	CookieJar http.CookieJar `yaml:"-" json:"-" no-flag:"true"`
}

// ProxyAuth defines how the engine authenticates to the frame proxy.
type ProxyAuth struct {
	transport.Auth `yaml:",inline"`
	// OAuth2ConfigURL points to an oauth2 client config, optionally encrypted with EncryptionKey.
	OAuth2ConfigURL string `yaml:"oauth2ConfigURL,omitempty" json:"oauth2ConfigURL,omitempty"  long:"proxy-oauth2-config" description:"oauth2 client config file"`
	EncryptionKey   string `yaml:"encryptionKey,omitempty" json:"encryptionKey,omitempty"  long:"proxy-key" description:"oauth2 config encryption key"`
}

// SignerOptions defines the signer adapter.
type SignerOptions struct {
	Type     string `yaml:"type,omitempty" json:"type,omitempty"  long:"signer" description:"signer type" choice:"anonymous" choice:"jwt"`
	Issuer   string `yaml:"issuer,omitempty" json:"issuer,omitempty"  long:"signer-issuer" description:"jwt issuer"`
	Subject  string `yaml:"subject,omitempty" json:"subject,omitempty"  long:"signer-subject" description:"jwt subject"`
	StoreURL string `yaml:"storeURL,omitempty" json:"storeURL,omitempty"  long:"signer-store" description:"credential store url, e.g. file:///home/me/.frames or mem://localhost/frames"`
	Name     string `yaml:"name,omitempty" json:"name,omitempty"  long:"signer-name" description:"credential name"`
	// SecretURL holds an HS256 secret; without it an EdDSA key is loaded from the store.
	SecretURL string `yaml:"secretURL,omitempty" json:"secretURL,omitempty"  long:"signer-secret" description:"HS256 secret url"`
	Generate  bool   `yaml:"generate,omitempty" json:"generate,omitempty"  long:"signer-generate" description:"generate an EdDSA key when none is stored"`
}

// WalletOptions defines the JSON-RPC wallet bridge.
type WalletOptions struct {
	URL     string `yaml:"url,omitempty" json:"url,omitempty"  short:"w" long:"wallet" description:"wallet json-rpc url"`
	Address string `yaml:"address,omitempty" json:"address,omitempty"  short:"a" long:"address" description:"connected wallet address"`
}

// Init applies defaults.
func (o *EngineOptions) Init() {
	if o.Specification == "" {
		o.Specification = schema.SpecificationOpenFrames
	}
	if o.Signer == nil {
		o.Signer = &SignerOptions{}
	}
	if o.Signer.Type == "" {
		o.Signer.Type = SignerAnonymous
	}
	if o.Signer.Name == "" {
		o.Signer.Name = "default"
	}
	if o.RequestsPerSecond > 0 && o.Burst == 0 {
		o.Burst = 1
	}
}

// Validate checks required fields.
func (o *EngineOptions) Validate() error {
	if o.ProxyURL == "" && (o.GetProxyURL == "" || o.PostProxyURL == "") {
		return fmt.Errorf("proxy url was empty")
	}
	switch o.Signer.Type {
	case SignerAnonymous, SignerJWT:
	default:
		return fmt.Errorf("unsupported signer type: %v", o.Signer.Type)
	}
	return nil
}
