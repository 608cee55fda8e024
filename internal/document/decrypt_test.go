// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package document

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/pbkdf2"
)

// encryptedState is a helper that creates a properly encrypted OpenTofu state
// document for testing.
func encryptedState(t *testing.T, plaintext []byte, passphrase string) []byte {
	t.Helper()
	salt := []byte("test-salt-12345")
	iterations := 4096

	key := pbkdf2.Key([]byte(passphrase), salt, iterations, 32, sha512.New)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	aesGCM, err := cipher.NewGCM(block)
	require.NoError(t, err)

	nonce := make([]byte, aesGCM.NonceSize())
	ciphertext := aesGCM.Seal(nonce, nonce, plaintext, nil)

	kp, err := json.Marshal(map[string]any{
		"salt":          base64.StdEncoding.EncodeToString(salt),
		"iterations":    iterations,
		"hash_function": "sha512",
		"key_length":    32,
	})
	require.NoError(t, err)

	state, err := json.Marshal(map[string]any{
		"meta": map[string]any{
			"key_provider.pbkdf2.mykey": base64.StdEncoding.EncodeToString(kp),
		},
		"encrypted_data": base64.StdEncoding.EncodeToString(ciphertext),
	})
	require.NoError(t, err)
	return state
}

func TestDecrypt(t *testing.T) {
	t.Parallel()
	plaintext := []byte(`{"version":4,"resources":[]}`)
	state := encryptedState(t, plaintext, "secret")

	require.True(t, IsEncrypted(state))
	assert.False(t, IsEncrypted(plaintext))
	assert.False(t, IsEncrypted([]byte("encrypted_data: x")))

	got, err := Decrypt(state, "secret")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)

	_, err = Decrypt(state, "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}

func TestDecryptErrors(t *testing.T) {
	t.Parallel()
	kp := func(cfg string) string { return base64.StdEncoding.EncodeToString([]byte(cfg)) }

	tests := []struct {
		name    string
		state   string
		wantErr string
	}{
		{"invalid json", `not json`, "parse state"},
		{"no encrypted data", `{"meta":{}}`, "encrypted_data"},
		{"no key provider", `{"meta":{"x":"y"},"encrypted_data":"dGVzdA=="}`, "pbkdf2"},
		{"invalid base64 key", `{"meta":{"key_provider.pbkdf2.k":"!!"},"encrypted_data":"dGVzdA=="}`, "key provider config"},
		{"invalid key config", `{"meta":{"key_provider.pbkdf2.k":"` + kp("nope") + `"},"encrypted_data":"dGVzdA=="}`, "key provider config"},
		{"unsupported hash", `{"meta":{"key_provider.pbkdf2.k":"` + kp(`{"salt":"c2FsdA==","iterations":1,"hash_function":"md5","key_length":32}`) + `"},"encrypted_data":"dGVzdA=="}`, "hash function"},
		{"short ciphertext", `{"meta":{"key_provider.pbkdf2.k":"` + kp(`{"salt":"c2FsdA==","iterations":1,"key_length":32}`) + `"},"encrypted_data":"eA=="}`, "ciphertext too short"},
		{"invalid key length", `{"meta":{"key_provider.pbkdf2.k":"` + kp(`{"salt":"c2FsdA==","iterations":1,"key_length":15}`) + `"},"encrypted_data":"dGVzdA=="}`, "cipher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decrypt([]byte(tt.state), "p")
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadEncrypted(t *testing.T) {
	ctx := context.Background()
	state := encryptedState(t, []byte(`{"serial":3}`), "secret")
	load := func(opts ...Option) (*Document, error) {
		opts = append([]Option{WithStdin(strings.NewReader(string(state)))}, opts...)
		return Load(ctx, Stdin, opts...)
	}
	t.Setenv("OBJDIFF_PASSPHRASE", "")
	t.Setenv("TF_VAR_passphrase", "")

	doc, err := load(WithPassphrase("secret"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"serial": 3.0}, doc.Value)
	assert.Equal(t, `{"serial":3}`, string(doc.Raw))

	_, err = load(WithPrompt(nil))
	assert.ErrorIs(t, err, ErrNoPassphrase)

	doc, err = load(WithPrompt(func(string) (string, error) { return "secret", nil }))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"serial": 3.0}, doc.Value)

	_, err = load(WithPrompt(func(string) (string, error) { return "", errors.New("interrupted") }))
	assert.ErrorContains(t, err, "interrupted")

	t.Setenv("TF_VAR_passphrase", "secret")
	_, err = load(WithPrompt(nil))
	assert.NoError(t, err)

	t.Setenv("OBJDIFF_PASSPHRASE", "wrong")
	_, err = load(WithPrompt(nil))
	assert.ErrorContains(t, err, "failed to decrypt")
}
