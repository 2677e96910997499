package frames

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/frames/engine"
	"github.com/viant/frames/proxy"
	"github.com/viant/frames/proxy/transport"
	"github.com/viant/frames/signer"
	"github.com/viant/frames/signer/anonymous"
	"github.com/viant/frames/signer/jwt"
	"github.com/viant/frames/signer/store"
	"github.com/viant/frames/wallet"
	"github.com/viant/scy/auth/authorizer"
	"golang.org/x/oauth2"
)

// NewEngine creates an engine with proxy transport, signer and wallet configured via EngineOptions.
func NewEngine(ctx context.Context, options *EngineOptions, handler *engine.Handler, extra ...engine.Option) (*engine.Engine, error) {
	options.Init()
	if err := options.Validate(); err != nil {
		return nil, err
	}
	logger := slog.Default()

	httpClient, err := options.httpClient(ctx)
	if err != nil {
		return nil, err
	}
	client := proxy.New(options.ProxyURL,
		proxy.WithGetURL(options.GetProxyURL),
		proxy.WithPostURL(options.PostProxyURL),
		proxy.WithFarcasterManifest(options.ParseFarcasterManifest),
		proxy.WithHTTPClient(httpClient),
		proxy.WithLogger(logger),
	)
	adapter, err := options.adapter(ctx)
	if err != nil {
		return nil, err
	}
	if options.Wallet != nil && options.Wallet.URL != "" {
		aWallet := wallet.New(wallet.NewHTTPTransport(options.Wallet.URL, nil), wallet.WithLogger(logger))
		handler = aWallet.Bind(handler)
	}

	engineOptions := []engine.Option{
		engine.WithLogger(logger),
		engine.WithAdapter(adapter, options.Specification),
		engine.WithHandler(handler),
		engine.WithHomeframeURL(options.HomeframeURL),
		engine.WithTransactionDataSuffix(options.TransactionDataSuffix),
		engine.WithExtraButtonRequestPayload(options.Extra),
	}
	ret := engine.New(client, append(engineOptions, extra...)...)
	if options.Wallet != nil && options.Wallet.Address != "" {
		ret.SetConnectedAddress(options.Wallet.Address)
	}
	return ret, nil
}

func (o *EngineOptions) httpClient(ctx context.Context) (*http.Client, error) {
	base := http.DefaultTransport
	if o.HTTPClient != nil && o.HTTPClient.Transport != nil {
		base = o.HTTPClient.Transport
	}
	tokenSource, err := o.tokenSource(ctx)
	if err != nil {
		return nil, err
	}
	var roundTripper http.RoundTripper = transport.New(
		transport.WithTransport(base),
		transport.WithRateLimit(o.RequestsPerSecond, o.Burst),
		transport.WithTokenSource(tokenSource),
	)
	roundTripper = transport.WrapWithCookieJar(roundTripper, o.CookieJar)
	ret := &http.Client{Transport: roundTripper}
	if o.HTTPClient != nil {
		ret.Timeout = o.HTTPClient.Timeout
	}
	return ret, nil
}

func (o *EngineOptions) tokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	if o.ProxyAuth == nil {
		return nil, nil
	}
	auth := o.ProxyAuth.Auth
	if configURL := o.ProxyAuth.OAuth2ConfigURL; configURL != "" {
		if o.ProxyAuth.EncryptionKey != "" {
			configURL += "|" + o.ProxyAuth.EncryptionKey
		}
		anAuthorizer := authorizer.New()
		oauthCfg := &authorizer.OAuthConfig{ConfigURL: configURL}
		if err := anAuthorizer.EnsureConfig(ctx, oauthCfg); err != nil {
			return nil, fmt.Errorf("failed to load oauth2 config %q: %w", o.ProxyAuth.OAuth2ConfigURL, err)
		}
		auth.ClientID = oauthCfg.Config.ClientID
		auth.ClientSecret = oauthCfg.Config.ClientSecret
		auth.TokenURL = oauthCfg.Config.Endpoint.TokenURL
		if len(auth.Scopes) == 0 {
			auth.Scopes = oauthCfg.Config.Scopes
		}
	}
	return auth.TokenSource(ctx), nil
}

func (o *EngineOptions) adapter(ctx context.Context) (signer.Adapter, error) {
	cfg := o.Signer
	if cfg.Type != SignerJWT {
		return anonymous.New(), nil
	}
	var credentials store.Store = store.NewMemoryStore()
	if cfg.StoreURL != "" {
		credentials = store.NewFileStore(cfg.StoreURL)
	}
	jwtOptions := []jwt.Option{
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithSubject(cfg.Subject),
		jwt.WithStore(credentials, cfg.Name),
	}
	if cfg.SecretURL != "" {
		secret, err := afs.New().DownloadWithURL(ctx, cfg.SecretURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load signer secret: %w", err)
		}
		jwtOptions = append(jwtOptions, jwt.WithSecret([]byte(strings.TrimSpace(string(secret)))))
	}
	ret, err := jwt.New(ctx, jwtOptions...)
	if err != nil {
		return nil, err
	}
	if !ret.HasSigner() && cfg.Generate {
		if _, err = ret.Generate(ctx); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
