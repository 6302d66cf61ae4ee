package wallet

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"sync"

	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/signature"
)

// PasswordFunc returns a copy of the keystore password. The caller clears it.
type PasswordFunc func() ([]byte, error)

// Keystore is a wallet backed by an encrypted .cwt file on local disk. The key
// is decrypted for each signature and wiped right after.
type Keystore struct {
	name     string
	icon     string
	path     string
	password PasswordFunc

	mu      sync.Mutex
	chainID uint64
}

// SwitchableKeystore is a Keystore that also accepts network-change requests.
type SwitchableKeystore struct {
	*Keystore
}

// NewKeystore opens the keystore wallet at path. If switchable is set the
// returned wallet implements NetworkSwitcher.
func NewKeystore(name, path string, chainID uint64, password PasswordFunc, switchable bool) (Wallet, error) {
	if path == "" {
		return nil, errors.New("keystore path not set")
	}
	k := &Keystore{
		name:     name,
		path:     path,
		password: password,
		chainID:  chainID,
	}
	if switchable {
		return &SwitchableKeystore{Keystore: k}, nil
	}
	return k, nil
}

func (k *Keystore) Name() string { return k.name }
func (k *Keystore) Icon() string { return k.icon }

// Connect reads the account from the keystore header, no password needed.
func (k *Keystore) Connect(_ context.Context) (Account, error) {
	file, err := crypto.ReadWalletFile(k.path)
	if err != nil {
		return Account{}, fmt.Errorf("failed to read keystore: %w", err)
	}

	k.mu.Lock()
	chainID := k.chainID
	k.mu.Unlock()

	return Account{
		Address:   file.Address,
		PublicKey: file.PublicKey,
		ChainID:   chainID,
	}, nil
}

// ConnectWithNetwork approves any hint and targets its chain from then on.
func (k *Keystore) ConnectWithNetwork(_ context.Context, _ bool, hint NetworkHint) (ConnectStatus, error) {
	if _, err := crypto.ReadWalletFile(k.path); err != nil {
		return "", fmt.Errorf("failed to read keystore: %w", err)
	}

	k.mu.Lock()
	k.chainID = hint.ChainID
	k.mu.Unlock()

	return StatusApproved, nil
}

// SignMessage signs the full wallet-standard message text.
func (k *Keystore) SignMessage(_ context.Context, input SignMessageInput) (signature.Response, error) {
	full := FullMessage(input)
	sig, err := k.sign([]byte(full))
	if err != nil {
		return nil, err
	}
	return signature.ByteArray(sig), nil
}

// SignTransaction signs a transaction signing message.
func (k *Keystore) SignTransaction(_ context.Context, signingMessage []byte) ([]byte, error) {
	return k.sign(signingMessage)
}

// ChangeNetwork switches the chain the keystore targets.
func (s *SwitchableKeystore) ChangeNetwork(_ context.Context, chainID uint64, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainID = chainID
	return nil
}

func (k *Keystore) sign(message []byte) ([]byte, error) {
	password, err := k.password()
	if err != nil {
		return nil, err
	}
	defer clear(password)

	file, data, err := crypto.DecryptWallet(k.path, password)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}
	defer clear(data.Seed)

	if len(data.Seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("invalid seed length")
	}

	key := ed25519.NewKeyFromSeed(data.Seed)
	defer clear(key)

	// Verify key matches the published account
	pub := key.Public().(ed25519.PublicKey)
	address, err := crypto.AddressFromPublicKey(pub)
	if err != nil {
		return nil, err
	}
	if address != file.Address {
		return nil, errors.New("private key does not match address")
	}

	return ed25519.Sign(key, message), nil
}

// FullMessage is the text a wallet actually signs for a sign-message request.
func FullMessage(input SignMessageInput) string {
	return "APTOS\nmessage: " + input.Message + "\nnonce: " + input.Nonce
}
