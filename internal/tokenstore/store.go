// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

/*
Package tokenstore persists the session's token pair between runs.

It is the durable "local storage" of the client. The session store is the
only writer; both tokens are always saved and cleared together.

Implementations:

  - FileStore: A JSON file under the user's config directory, optionally
    encrypted at rest. The CLI default.
  - RedisStore: A shared store for headless deployments where several
    workers reuse one session.
  - MemoryStore: Ephemeral storage for tests and embedders.
*/
package tokenstore

import (
	"context"
	"sync"
)

// Tokens is the persisted credential pair.
//
// The JSON keys match the storage contract of the web client so a session
// exported from one can be imported by the other.
type Tokens struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

// IsZero reports whether no credentials are stored.
func (t Tokens) IsZero() bool { return t.Access == "" && t.Refresh == "" }

// Store is the durable storage contract for the session's token pair.
//
// # Semantics
//
// Load returns the zero [Tokens] value (not an error) when nothing is
// stored. Save always replaces both tokens. Clear is idempotent.
type Store interface {
	Load(context context.Context) (Tokens, error)
	Save(context context.Context, tokens Tokens) error
	Clear(context context.Context) error
}

// # In-Memory Store

// MemoryStore keeps the token pair in process memory only.
type MemoryStore struct {
	mu     sync.Mutex
	tokens Tokens
}

// NewMemoryStore creates an empty [*MemoryStore].
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Load returns the stored token pair.
func (store *MemoryStore) Load(context.Context) (Tokens, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.tokens, nil
}

// Save replaces the stored token pair.
func (store *MemoryStore) Save(_ context.Context, tokens Tokens) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.tokens = tokens
	return nil
}

// Clear removes the stored token pair.
func (store *MemoryStore) Clear(context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.tokens = Tokens{}
	return nil
}
