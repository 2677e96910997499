package frames

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/frames/schema"
)

func TestLoadOptions(t *testing.T) {
	var testCases = []struct {
		description string
		URL         string
		content     string
		expect      func(t *testing.T, options *EngineOptions)
	}{
		{
			description: "yaml",
			URL:         "mem://localhost/frames/config.yaml",
			content: `proxyURL: https://proxy.example/frames
homeframeURL: https://frame.example
specification: farcaster
requestsPerSecond: 2
proxyAuth:
  token: abc
signer:
  type: jwt
  issuer: frames-cli
wallet:
  url: http://127.0.0.1:8545
extra:
  client: cli
`,
			expect: func(t *testing.T, options *EngineOptions) {
				assert.Equal(t, "https://proxy.example/frames", options.ProxyURL)
				assert.Equal(t, schema.SpecificationFarcaster, options.Specification)
				assert.Equal(t, 1, options.Burst)
				assert.Equal(t, "abc", options.ProxyAuth.Token)
				assert.Equal(t, SignerJWT, options.Signer.Type)
				assert.Equal(t, "default", options.Signer.Name)
				assert.Equal(t, "http://127.0.0.1:8545", options.Wallet.URL)
				assert.Equal(t, "cli", options.Extra["client"])
			},
		},
		{
			description: "json with defaults",
			URL:         "mem://localhost/frames/config.json",
			content:     `{"proxyURL":"https://proxy.example/frames"}`,
			expect: func(t *testing.T, options *EngineOptions) {
				assert.Equal(t, schema.SpecificationOpenFrames, options.Specification)
				assert.Equal(t, SignerAnonymous, options.Signer.Type)
				assert.NoError(t, options.Validate())
			},
		},
	}
	fs := afs.New()
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, fs.Upload(ctx, testCase.URL, 0o644, strings.NewReader(testCase.content)))
			options, err := LoadOptions(ctx, testCase.URL)
			require.NoError(t, err)
			testCase.expect(t, options)
		})
	}
}

func TestLoadOptions_Missing(t *testing.T) {
	_, err := LoadOptions(context.Background(), "mem://localhost/frames/missing.yaml")
	assert.Error(t, err)
}

func TestEngineOptions_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		options     EngineOptions
		expectErr   bool
	}{
		{description: "single proxy", options: EngineOptions{ProxyURL: "https://p.example"}},
		{description: "split proxies", options: EngineOptions{GetProxyURL: "https://g.example", PostProxyURL: "https://p.example"}},
		{description: "no proxy", options: EngineOptions{GetProxyURL: "https://g.example"}, expectErr: true},
		{description: "unknown signer", options: EngineOptions{ProxyURL: "https://p.example", Signer: &SignerOptions{Type: "lens"}}, expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			testCase.options.Init()
			err := testCase.options.Validate()
			if testCase.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
