// Package sealing optionally seals a ledger entry's human-readable witness
// reason text at rest, so a ledger shared across several
// blueprints (spec §5: "Ledger is the one shared object") can be persisted
// to disk without exposing violation detail in plaintext.
//
// The keystream technique — a per-install key file and a SHA-256-driven
// XOR keystream — is carried over unchanged from internal/cipher's
// Encrypt/Decrypt. The hardcoded Windows workspace path and the
// inbox/outbox message-passing helpers (ReadInbox, WriteOutbox,
// ClearInbox), which had no analogue once the message-passing use case was
// dropped, are replaced by a configurable key directory — see DESIGN.md.
package sealing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// #region config

// Sealer seals and unseals text using a key persisted under KeyDir.
type Sealer struct {
	KeyDir string
}

// NewSealer returns a Sealer that persists its key under dir.
func NewSealer(dir string) *Sealer {
	return &Sealer{KeyDir: dir}
}

func (s *Sealer) keyFile() string {
	return filepath.Join(s.KeyDir, ".ledger_seal_key")
}

// #endregion config

// #region key

func (s *Sealer) ensureKey() ([]byte, error) {
	if err := os.MkdirAll(s.KeyDir, 0755); err != nil {
		return nil, fmt.Errorf("create key dir: %w", err)
	}
	data, err := os.ReadFile(s.keyFile())
	if err == nil && len(data) >= 32 {
		return data[:32], nil
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("keygen: %w", err)
	}
	if err := os.WriteFile(s.keyFile(), key, 0600); err != nil {
		return nil, fmt.Errorf("write key: %w", err)
	}
	return key, nil
}

// #endregion key

// #region keystream

func keystream(key []byte, length int) []byte {
	stream := make([]byte, 0, length+32)
	counter := uint64(0)
	for len(stream) < length {
		buf := make([]byte, len(key)+8)
		copy(buf, key)
		binary.BigEndian.PutUint64(buf[len(key):], counter)
		h := sha256.Sum256(buf)
		stream = append(stream, h[:]...)
		counter++
	}
	return stream[:length]
}

// #endregion keystream

// #region seal-unseal

// Seal encrypts plaintext and returns a base64-encoded ciphertext.
func (s *Sealer) Seal(plaintext string) (string, error) {
	key, err := s.ensureKey()
	if err != nil {
		return "", err
	}
	data := []byte(plaintext)
	ks := keystream(key, len(data))
	cipher := make([]byte, len(data))
	for i := range data {
		cipher[i] = data[i] ^ ks[i]
	}
	return base64.StdEncoding.EncodeToString(cipher), nil
}

// Unseal decodes and decrypts a value produced by Seal.
func (s *Sealer) Unseal(b64Ciphertext string) (string, error) {
	key, err := s.ensureKey()
	if err != nil {
		return "", err
	}
	cipher, err := base64.StdEncoding.DecodeString(b64Ciphertext)
	if err != nil {
		return "", fmt.Errorf("base64 decode: %w", err)
	}
	ks := keystream(key, len(cipher))
	plain := make([]byte, len(cipher))
	for i := range cipher {
		plain[i] = cipher[i] ^ ks[i]
	}
	return string(plain), nil
}

// #endregion seal-unseal
