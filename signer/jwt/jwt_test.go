package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/frames/schema"
	"github.com/viant/frames/signer"
	"github.com/viant/frames/signer/store"
)

func testAction() *signer.ActionContext {
	return &signer.ActionContext{
		Button:      schema.Button{Label: "go", Action: schema.ActionPost},
		ButtonIndex: 1,
		URL:         "https://x/frame",
		InputText:   "hi",
	}
}

func TestAdapter_EdDSA(t *testing.T) {
	ctx := context.Background()
	aStore := store.NewMemoryStore()
	adapter, err := New(ctx, WithStore(aStore, "alice"), WithSubject("fid:7"), WithIssuer("frames"))
	require.NoError(t, err)
	assert.False(t, adapter.HasSigner())

	_, err = adapter.SignFrameAction(ctx, testAction())
	assert.True(t, errors.Is(err, signer.ErrNoSigner))

	public, err := adapter.Generate(ctx)
	require.NoError(t, err)
	require.True(t, adapter.HasSigner())
	assert.Equal(t, "fid:7", adapter.Signer())
	assert.Equal(t, public, adapter.PublicKey())

	signed, err := adapter.SignFrameAction(ctx, testAction())
	require.NoError(t, err)
	trusted := signed.Body["trustedData"].(map[string]any)
	claims, err := Verify(trusted["messageBytes"].(string), public)
	require.NoError(t, err)
	assert.Equal(t, "fid:7", claims["sub"])
	assert.Equal(t, "frames", claims["iss"])
	data := claims["untrustedData"].(map[string]any)
	assert.Equal(t, "hi", data["inputText"])
	assert.Equal(t, float64(1), data["buttonIndex"])

	restored, err := New(ctx, WithStore(aStore, "alice"))
	require.NoError(t, err)
	assert.True(t, restored.HasSigner(), "key is restored from the store")
	assert.Equal(t, "fid:7", restored.Signer())

	require.NoError(t, restored.Logout(ctx))
	assert.False(t, restored.HasSigner())
	_, ok, err := aStore.Lookup(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_HS256(t *testing.T) {
	ctx := context.Background()
	secret := []byte("frame-secret")
	adapter, err := New(ctx, WithSecret(secret), WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	require.NoError(t, err)
	signed, err := adapter.SignFrameAction(ctx, testAction())
	require.NoError(t, err)
	messageBytes := signed.Body["trustedData"].(map[string]any)["messageBytes"].(string)

	claims, err := Verify(messageBytes, secret)
	require.NoError(t, err)
	assert.Equal(t, float64(1700000000), claims["iat"])

	_, err = Verify(messageBytes, []byte("other"))
	assert.Error(t, err)
	assert.Nil(t, adapter.PublicKey())
}

func TestAdapter_Signerless(t *testing.T) {
	called := false
	adapter, err := New(context.Background(), WithSignerlessHandler(func(ctx context.Context) error {
		called = true
		return nil
	}))
	require.NoError(t, err)
	require.NoError(t, adapter.OnSignerlessFramePress(context.Background()))
	assert.True(t, called)
	assert.Nil(t, adapter.Signer())
}
