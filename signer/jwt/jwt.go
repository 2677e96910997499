// Package jwt provides a signer adapter that signs frame actions as a compact
// JWS. The frame server verifies trustedData.messageBytes with the adapter's
// public key (EdDSA) or shared secret (HS256).
package jwt

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/viant/frames/signer"
	"github.com/viant/frames/signer/store"
)

const (
	// ClientProtocol is advertised in every signed payload.
	ClientProtocol = "jwt@1.0"

	AlgorithmEdDSA = "EdDSA"
	AlgorithmHS256 = "HS256"
)

// Adapter signs frame actions with a locally held key.
type Adapter struct {
	mux          sync.RWMutex
	issuer       string
	subject      string
	algorithm    string
	key          []byte
	store        store.Store
	name         string
	now          func() time.Time
	onSignerless func(ctx context.Context) error
}

// Option configures an Adapter.
type Option func(a *Adapter)

// WithIssuer sets the iss claim.
func WithIssuer(issuer string) Option {
	return func(a *Adapter) {
		a.issuer = issuer
	}
}

// WithSubject sets the sub claim, typically the signer's identity.
func WithSubject(subject string) Option {
	return func(a *Adapter) {
		a.subject = subject
	}
}

// WithSecret signs with HS256 using secret.
func WithSecret(secret []byte) Option {
	return func(a *Adapter) {
		a.algorithm = AlgorithmHS256
		a.key = secret
	}
}

// WithPrivateKey signs with EdDSA using key.
func WithPrivateKey(key ed25519.PrivateKey) Option {
	return func(a *Adapter) {
		a.algorithm = AlgorithmEdDSA
		a.key = key
	}
}

// WithStore loads and persists the key under name.
func WithStore(aStore store.Store, name string) Option {
	return func(a *Adapter) {
		a.store = aStore
		a.name = name
	}
}

// WithClock overrides the iat source.
func WithClock(now func() time.Time) Option {
	return func(a *Adapter) {
		a.now = now
	}
}

// WithSignerlessHandler is called when a button is pressed without a key.
func WithSignerlessHandler(fn func(ctx context.Context) error) Option {
	return func(a *Adapter) {
		a.onSignerless = fn
	}
}

// New creates an adapter, loading its key from the store when one is configured.
func New(ctx context.Context, options ...Option) (*Adapter, error) {
	ret := &Adapter{now: time.Now, name: "default"}
	for _, opt := range options {
		opt(ret)
	}
	if ret.store != nil && len(ret.key) == 0 {
		credential, ok, err := ret.store.Lookup(ctx, ret.name)
		if err != nil {
			return nil, fmt.Errorf("failed to load signer %v: %w", ret.name, err)
		}
		if ok {
			ret.algorithm = credential.Algorithm
			ret.key = credential.Key
			if ret.subject == "" {
				ret.subject = credential.Subject
			}
		}
	}
	return ret, nil
}

// Generate creates a new EdDSA key and persists it when a store is configured.
func (a *Adapter) Generate(ctx context.Context) (ed25519.PublicKey, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	a.mux.Lock()
	a.algorithm = AlgorithmEdDSA
	a.key = private
	a.mux.Unlock()
	if a.store != nil {
		credential := &store.Credential{Algorithm: AlgorithmEdDSA, Subject: a.subject, Key: private, CreatedAt: a.now()}
		if err = a.store.Put(ctx, a.name, credential); err != nil {
			return nil, fmt.Errorf("failed to persist signer %v: %w", a.name, err)
		}
	}
	return public, nil
}

func (a *Adapter) HasSigner() bool {
	a.mux.RLock()
	defer a.mux.RUnlock()
	return len(a.key) > 0
}

func (a *Adapter) Signer() any {
	if !a.HasSigner() {
		return nil
	}
	return a.subject
}

// PublicKey returns the EdDSA public key, or nil for HS256 or no key.
func (a *Adapter) PublicKey() ed25519.PublicKey {
	a.mux.RLock()
	defer a.mux.RUnlock()
	if a.algorithm != AlgorithmEdDSA || len(a.key) != ed25519.PrivateKeySize {
		return nil
	}
	return ed25519.PrivateKey(a.key).Public().(ed25519.PublicKey)
}

func (a *Adapter) SignFrameAction(ctx context.Context, action *signer.ActionContext) (*signer.SignedRequest, error) {
	a.mux.RLock()
	algorithm, key := a.algorithm, a.key
	a.mux.RUnlock()
	if len(key) == 0 {
		return nil, signer.ErrNoSigner
	}
	data := signer.UntrustedData(action)
	now := a.now()
	data["unixTimestamp"] = now.UnixMilli()
	claims := gojwt.MapClaims{
		"iat":           now.Unix(),
		"untrustedData": data,
	}
	if a.issuer != "" {
		claims["iss"] = a.issuer
	}
	if a.subject != "" {
		claims["sub"] = a.subject
	}
	var signed string
	var err error
	switch algorithm {
	case AlgorithmEdDSA:
		signed, err = gojwt.NewWithClaims(gojwt.SigningMethodEdDSA, claims).SignedString(ed25519.PrivateKey(key))
	case AlgorithmHS256:
		signed, err = gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(key)
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if err != nil {
		return nil, err
	}
	return &signer.SignedRequest{
		Body: map[string]any{
			"clientProtocol": ClientProtocol,
			"untrustedData":  data,
			"trustedData":    map[string]any{"messageBytes": signed},
		},
		SearchParams: signer.SearchParams(action),
	}, nil
}

func (a *Adapter) OnSignerlessFramePress(ctx context.Context) error {
	if a.onSignerless == nil {
		return nil
	}
	return a.onSignerless(ctx)
}

// Logout drops the key and removes it from the store.
func (a *Adapter) Logout(ctx context.Context) error {
	a.mux.Lock()
	a.key = nil
	a.mux.Unlock()
	if a.store != nil {
		return a.store.Delete(ctx, a.name)
	}
	return nil
}

// Verify parses messageBytes with key and returns its claims.
func Verify(messageBytes string, key any) (gojwt.MapClaims, error) {
	claims := gojwt.MapClaims{}
	_, err := gojwt.ParseWithClaims(messageBytes, claims, func(token *gojwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *gojwt.SigningMethodEd25519:
			if _, ok := key.(ed25519.PublicKey); ok {
				return key, nil
			}
		case *gojwt.SigningMethodHMAC:
			if _, ok := key.([]byte); ok {
				return key, nil
			}
		}
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

var (
	_ signer.Adapter      = (*Adapter)(nil)
	_ signer.LogoutSigner = (*Adapter)(nil)
)
