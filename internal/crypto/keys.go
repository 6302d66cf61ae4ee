package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/aptos-labs/aptos-go-sdk"
	aptoscrypto "github.com/aptos-labs/aptos-go-sdk/crypto"
)

const publicKeyHexLen = 64 // 32 bytes

// ErrInvalidPublicKey is returned when a public key does not normalize to 32 bytes.
var ErrInvalidPublicKey = errors.New("invalid public key")

// NormalizePublicKey strips an optional 0x prefix and one redundant leading zero
// byte, and returns the key as 64 lowercase hex characters.
func NormalizePublicKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.TrimPrefix(key, "0x")

	if len(key) == publicKeyHexLen+2 && strings.HasPrefix(key, "00") {
		key = key[2:]
	}
	if len(key) != publicKeyHexLen {
		return "", fmt.Errorf("%w: expected %d hex characters, got %d", ErrInvalidPublicKey, publicKeyHexLen, len(key))
	}
	if _, err := hex.DecodeString(key); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	return key, nil
}

// DecodePublicKey normalizes key and returns its 32 raw bytes.
func DecodePublicKey(key string) (ed25519.PublicKey, error) {
	norm, err := NormalizePublicKey(key)
	if err != nil {
		return nil, err
	}
	raw, _ := hex.DecodeString(norm)
	return ed25519.PublicKey(raw), nil
}

// AddressFromPublicKey derives the account address of a single-key Ed25519
// account from its authentication key. The address is always rendered in
// long form.
func AddressFromPublicKey(pub ed25519.PublicKey) (string, error) {
	key := &aptoscrypto.Ed25519PublicKey{}
	if err := key.FromBytes(pub); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}

	var addr aptos.AccountAddress
	addr.FromAuthKey(key.AuthKey())
	return "0x" + hex.EncodeToString(addr[:]), nil
}

// PublicKeyHex renders a public key the way keystore headers store it.
func PublicKeyHex(pub ed25519.PublicKey) string {
	return "0x" + hex.EncodeToString(pub)
}
