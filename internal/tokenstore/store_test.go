// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package tokenstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okunevich/petsearch/internal/tokenstore"
)

/*
TestMemoryStore_RoundTrip verifies the basic Store contract in memory.
*/
func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := tokenstore.NewMemoryStore()

	// 1. Empty store loads the zero value.
	tokens, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, tokens.IsZero())

	// 2. Save then load.
	require.NoError(t, store.Save(ctx, tokenstore.Tokens{Access: "a", Refresh: "r"}))
	tokens, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a", tokens.Access)
	assert.Equal(t, "r", tokens.Refresh)

	// 3. Clear is idempotent.
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	tokens, err = store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, tokens.IsZero())
}

/*
TestFileStore_RoundTrip verifies plaintext persistence and file permissions.
*/
func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.json")

	store, err := tokenstore.NewFileStore(path, "")
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	// 1. Missing file loads the zero value.
	tokens, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, tokens.IsZero())

	// 2. Save creates the file with owner-only permissions.
	require.NoError(t, store.Save(ctx, tokenstore.Tokens{Access: "acc", Refresh: "ref"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// 3. Plain JSON uses the shared storage keys.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"accessToken":"acc"`)
	assert.Contains(t, string(raw), `"refreshToken":"ref"`)

	// 4. Reload through a fresh store instance.
	reopened, err := tokenstore.NewFileStore(path, "")
	require.NoError(t, err)
	tokens, err = reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc", tokens.Access)

	// 5. Clear removes the file; clearing twice stays silent.
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

/*
TestFileStore_Encrypted verifies at-rest encryption and wrong-secret failure.
*/
func TestFileStore_Encrypted(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tokens.bin")

	store, err := tokenstore.NewFileStore(path, "correct horse battery staple")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, tokenstore.Tokens{Access: "secret-access", Refresh: "secret-refresh"}))

	// 1. Ciphertext never contains the tokens.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-access")

	// 2. The right secret round-trips.
	reopened, err := tokenstore.NewFileStore(path, "correct horse battery staple")
	require.NoError(t, err)
	tokens, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret-access", tokens.Access)
	assert.Equal(t, "secret-refresh", tokens.Refresh)

	// 3. A wrong secret fails loudly instead of yielding garbage.
	wrong, err := tokenstore.NewFileStore(path, "wrong secret")
	require.NoError(t, err)
	_, err = wrong.Load(ctx)
	assert.Error(t, err)
}

/*
TestFileStore_CorruptedFile verifies that undecodable files are reported.
*/
func TestFileStore_CorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := tokenstore.NewFileStore(path, "")
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err)
}
