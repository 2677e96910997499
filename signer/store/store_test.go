package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStores(t *testing.T) {
	ctx := context.Background()
	var testCases = []struct {
		description string
		store       Store
	}{
		{description: "memory", store: NewMemoryStore()},
		{description: "file", store: NewFileStore(filepath.Join(t.TempDir(), "signers"))},
		{description: "afs memory scheme", store: NewFileStore("mem://localhost/frames/signers")},
	}

	for _, testCase := range testCases {
		_, ok, err := testCase.store.Lookup(ctx, "default")
		require.NoError(t, err, testCase.description)
		assert.False(t, ok, testCase.description)

		credential := &Credential{Algorithm: "EdDSA", Subject: "fid:1", Key: []byte{1, 2, 3}, CreatedAt: time.Unix(10, 0).UTC()}
		require.NoError(t, testCase.store.Put(ctx, "default", credential), testCase.description)

		actual, ok, err := testCase.store.Lookup(ctx, "default")
		require.NoError(t, err, testCase.description)
		require.True(t, ok, testCase.description)
		assert.Equal(t, credential.Key, actual.Key, testCase.description)
		assert.Equal(t, credential.Subject, actual.Subject, testCase.description)

		require.NoError(t, testCase.store.Delete(ctx, "default"), testCase.description)
		_, ok, err = testCase.store.Lookup(ctx, "default")
		require.NoError(t, err, testCase.description)
		assert.False(t, ok, testCase.description)
		require.NoError(t, testCase.store.Delete(ctx, "default"), testCase.description+": delete is idempotent")
	}
}
