// Package wallet models browser-extension style wallets: what they can do, how
// they are discovered and how a connection to one is made.
package wallet

import (
	"context"
	"errors"

	"github.com/AlexZinkM/movement-wallet/internal/signature"
)

var (
	ErrWalletNotFound = errors.New("wallet not found")
	ErrNotConnected   = errors.New("no wallet connected")
	ErrUnsupported    = errors.New("wallet does not support this capability")
)

// Capabilities lists which optional features a wallet exposes.
type Capabilities struct {
	Connect       bool
	SignMessage   bool
	SwitchNetwork bool
}

// Descriptor is what discovery shows for a wallet. Names are unique identifiers.
type Descriptor struct {
	Name         string
	Icon         string
	Capabilities Capabilities
}

// Account is the account a connected wallet exposes, on the network the
// wallet currently targets.
type Account struct {
	Address   string
	PublicKey string
	ChainID   uint64
}

// Wallet is the minimum every wallet implements. Optional features are
// separate interfaces checked with a type assertion.
type Wallet interface {
	Name() string
	Icon() string
	Connect(ctx context.Context) (Account, error)
}

// NetworkHint pre-declares the network a wallet should connect to.
type NetworkHint struct {
	ChainID uint64
	Name    string
	URL     string
}

// ConnectStatus is the answer of a wallet to a connect request.
type ConnectStatus string

const (
	StatusApproved ConnectStatus = "Approved"
	StatusRejected ConnectStatus = "Rejected"
)

// NetworkConnector can connect with a network hint.
type NetworkConnector interface {
	ConnectWithNetwork(ctx context.Context, silent bool, hint NetworkHint) (ConnectStatus, error)
}

// SignMessageInput is an application message with a freshness nonce.
type SignMessageInput struct {
	Message string
	Nonce   string
}

// MessageSigner signs application-defined text.
type MessageSigner interface {
	SignMessage(ctx context.Context, input SignMessageInput) (signature.Response, error)
}

// TransactionSigner signs a transaction signing message and returns the raw
// Ed25519 signature.
type TransactionSigner interface {
	SignTransaction(ctx context.Context, signingMessage []byte) ([]byte, error)
}

// NetworkSwitcher is the proprietary network-change feature some wallets expose.
type NetworkSwitcher interface {
	ChangeNetwork(ctx context.Context, chainID uint64, name string) error
}

// Describe builds the descriptor of w from the interfaces it implements.
func Describe(w Wallet) Descriptor {
	_, signs := w.(MessageSigner)
	_, switches := w.(NetworkSwitcher)
	return Descriptor{
		Name: w.Name(),
		Icon: w.Icon(),
		Capabilities: Capabilities{
			Connect:       true,
			SignMessage:   signs,
			SwitchNetwork: switches,
		},
	}
}
