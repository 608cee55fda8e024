// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/term"
)

// ErrNoPassphrase is returned when an encrypted document is loaded without a
// passphrase and none can be prompted for.
var ErrNoPassphrase = errors.New("no passphrase for encrypted document")

// IsEncrypted reports whether raw looks like an encrypted OpenTofu state.
func IsEncrypted(raw []byte) bool {
	return gjson.ValidBytes(raw) && gjson.GetBytes(raw, "encrypted_data").Exists()
}

// keyProvider is the pbkdf2 key provider configuration OpenTofu stores in the
// meta block of an encrypted state.
type keyProvider struct {
	Salt       string `json:"salt"`
	Iterations int    `json:"iterations"`
	HashFunc   string `json:"hash_function"`
	KeyLength  int    `json:"key_length"`
}

// Decrypt decrypts an encrypted OpenTofu state using the provided passphrase.
// The first pbkdf2 key provider found in the meta block is used.
func Decrypt(raw []byte, passphrase string) ([]byte, error) {
	var state struct {
		Meta          map[string]string `json:"meta"`
		EncryptedData string            `json:"encrypted_data"`
	}

	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	if state.EncryptedData == "" {
		return nil, errors.New("state has no encrypted_data")
	}

	var encoded string
	for name, v := range state.Meta {
		if strings.HasPrefix(name, "key_provider.pbkdf2.") {
			encoded = v
			break
		}
	}
	if encoded == "" {
		return nil, errors.New("state has no pbkdf2 key provider")
	}

	config, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode key provider config: %w", err)
	}

	var kp keyProvider
	if err = json.Unmarshal(config, &kp); err != nil {
		return nil, fmt.Errorf("failed to parse key provider config: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(kp.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	h, err := hashFunc(kp.HashFunc)
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key([]byte(passphrase), salt, kp.Iterations, kp.KeyLength, h)
	return decrypt(state.EncryptedData, key)
}

func hashFunc(name string) (func() hash.Hash, error) {
	switch name {
	case "", "sha512":
		return sha512.New, nil
	case "sha256":
		return sha256.New, nil
	}
	return nil, fmt.Errorf("unsupported key provider hash function: %s", name)
}

func decrypt(encryptedData string, derivedKey []byte) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encryptedData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}

	block, err := aes.NewCipher(derivedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// The nonce prefixes the sealed data.
	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf(
			"ciphertext too short: expected at least %d bytes, got %d",
			nonceSize,
			len(ciphertext),
		)
	}

	plaintext, err := aesGCM.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt: %w", err)
	}

	return plaintext, nil
}

// Prompt reads a passphrase from the terminal without echoing it. It fails
// with ErrNoPassphrase when stdin is not a terminal.
func Prompt(source string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNoPassphrase
	}

	fmt.Fprintf(os.Stderr, "Enter passphrase for %s: ", source)
	defer fmt.Fprintln(os.Stderr)

	b, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	return string(b), nil
}
