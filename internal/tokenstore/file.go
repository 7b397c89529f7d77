// Copyright (c) 2026 Petsearch. All rights reserved.
// Author: d.okunevich@gmail.com

package tokenstore

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"crypto/sha256"

	"github.com/okunevich/petsearch/internal/platform/constants"
)

// FileStore persists the token pair in a JSON file with 0600 permissions.
//
// # Encryption
//
// When constructed with a secret, the JSON payload is sealed with
// ChaCha20-Poly1305 before hitting disk; the random nonce is prepended to
// the ciphertext. Without a secret the file is plain JSON.
type FileStore struct {
	path string
	key  []byte // nil means plaintext
}

// hkdfInfo binds derived keys to this purpose so a reused secret cannot
// unlock unrelated material.
const hkdfInfo = "petsearch/token-file/v1"

// NewFileStore creates a [*FileStore] at path.
//
// # Parameters
//   - path: Token file location. Empty selects the per-user default under
//     [os.UserConfigDir].
//   - secret: Optional encryption secret. Empty disables encryption.
func NewFileStore(path, secret string) (*FileStore, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("tokenstore_resolve_config_dir: %w", err)
		}
		path = filepath.Join(configDir, filepath.FromSlash(constants.DefaultTokenFileName))
	}

	store := &FileStore{path: path}

	if secret != "" {
		key := make([]byte, chacha20poly1305.KeySize)
		reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(hkdfInfo))
		if _, err := io.ReadFull(reader, key); err != nil {
			return nil, fmt.Errorf("tokenstore_derive_key: %w", err)
		}
		store.key = key
	}

	return store, nil
}

// Path returns the resolved token file location.
func (store *FileStore) Path() string { return store.path }

// Load reads the token pair from disk.
//
// A missing file yields the zero [Tokens] value. A present but undecodable
// file is reported as an error so a corrupted session is never half-used.
func (store *FileStore) Load(context.Context) (Tokens, error) {
	payload, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Tokens{}, nil
		}
		return Tokens{}, fmt.Errorf("tokenstore_read_file: %w", err)
	}

	if store.key != nil {
		payload, err = store.open(payload)
		if err != nil {
			return Tokens{}, err
		}
	}

	var tokens Tokens
	if err := json.Unmarshal(payload, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("tokenstore_decode_file: %w", err)
	}

	return tokens, nil
}

// Save writes the token pair to disk, creating parent directories.
//
// The write goes through a temp file and rename so a crash mid-write never
// leaves a truncated token file behind.
func (store *FileStore) Save(_ context.Context, tokens Tokens) error {
	payload, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("tokenstore_encode_tokens: %w", err)
	}

	if store.key != nil {
		payload, err = store.seal(payload)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(store.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore_create_dir: %w", err)
	}

	temp := store.path + ".tmp"
	if err := os.WriteFile(temp, payload, 0o600); err != nil {
		return fmt.Errorf("tokenstore_write_file: %w", err)
	}

	if err := os.Rename(temp, store.path); err != nil {
		return fmt.Errorf("tokenstore_rename_file: %w", err)
	}

	return nil
}

// Clear removes the token file. A missing file is not an error.
func (store *FileStore) Clear(context.Context) error {
	if err := os.Remove(store.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("tokenstore_remove_file: %w", err)
	}
	return nil
}

// seal encrypts plaintext, prepending the random nonce.
func (store *FileStore) seal(plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(store.key)
	if err != nil {
		return nil, fmt.Errorf("tokenstore_cipher_init: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("tokenstore_nonce: %w", err)
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

// open decrypts a sealed payload produced by seal.
func (store *FileStore) open(sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(store.key)
	if err != nil {
		return nil, fmt.Errorf("tokenstore_cipher_init: %w", err)
	}

	if len(sealed) < aead.NonceSize() {
		return nil, fmt.Errorf("tokenstore_decrypt_file: payload too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("tokenstore_decrypt_file: %w", err)
	}

	return plaintext, nil
}
