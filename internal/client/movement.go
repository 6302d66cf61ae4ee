package client

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/bcs"
	aptoscrypto "github.com/aptos-labs/aptos-go-sdk/crypto"

	"github.com/AlexZinkM/movement-wallet/internal/network"
)

const (
	FunctionAccountTransfer = "0x1::aptos_account::transfer"
	FunctionCoinTransfer    = "0x1::coin::transfer"

	AptosCoinType = "0x1::aptos_coin::AptosCoin"
)

// Transfer describes a native-coin transfer call.
type Transfer struct {
	Function      string
	TypeArguments []string
	Recipient     string
	Amount        uint64 // octas
}

// UnsignedTransaction is a built transaction waiting for a signature.
type UnsignedTransaction interface {
	Sender() string
	Function() string
	SigningMessage() ([]byte, error)
}

// Authenticator pairs an Ed25519 public key with a signature over the signing message.
type Authenticator struct {
	PublicKey ed25519.PublicKey // 32 bytes
	Signature []byte            // 64 bytes
}

// Confirmation is the outcome of a committed transaction.
type Confirmation struct {
	Hash     string
	Success  bool
	VMStatus string
}

// AccountInfo on-chain account metadata
type AccountInfo struct {
	SequenceNumber    uint64
	AuthenticationKey string
}

// MovementClient is a client for a Movement full node
type MovementClient struct {
	rpcClient *aptos.Client
}

// NewMovementClient creates a client for the given network.
func NewMovementClient(n network.Network) (*MovementClient, error) {
	rpcClient, err := aptos.NewClient(aptos.NetworkConfig{
		Name:    "custom",
		ChainId: uint8(n.ChainID),
		NodeUrl: n.RPCURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Movement client: %w", err)
	}
	return &MovementClient{rpcClient: rpcClient}, nil
}

type rawTransaction struct {
	raw      *aptos.RawTransaction
	sender   string
	function string
}

func (t *rawTransaction) Sender() string   { return t.sender }
func (t *rawTransaction) Function() string { return t.function }

func (t *rawTransaction) SigningMessage() ([]byte, error) {
	return t.raw.SigningMessage()
}

// BuildTransfer builds an unsigned transfer from sender. Sequence number, gas
// and expiration are fetched from the node.
func (c *MovementClient) BuildTransfer(ctx context.Context, sender string, t Transfer) (UnsignedTransaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, err := parseAddress(sender)
	if err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	to, err := parseAddress(t.Recipient)
	if err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	amount, err := bcs.SerializeU64(t.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}

	moduleAddr, moduleName, function, err := splitQualified(t.Function)
	if err != nil {
		return nil, fmt.Errorf("invalid function: %w", err)
	}

	typeArgs := make([]aptos.TypeTag, 0, len(t.TypeArguments))
	for _, arg := range t.TypeArguments {
		tag, err := structTypeTag(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid type argument %q: %w", arg, err)
		}
		typeArgs = append(typeArgs, tag)
	}

	payload := &aptos.EntryFunction{
		Module: aptos.ModuleId{
			Address: moduleAddr,
			Name:    moduleName,
		},
		Function: function,
		ArgTypes: typeArgs,
		Args:     [][]byte{to[:], amount},
	}

	raw, err := c.rpcClient.BuildTransaction(from, aptos.TransactionPayload{Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}

	return &rawTransaction{raw: raw, sender: from.String(), function: t.Function}, nil
}

// Submit attaches auth to txn and sends it. Returns the transaction hash.
func (c *MovementClient) Submit(ctx context.Context, txn UnsignedTransaction, auth Authenticator) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	raw, ok := txn.(*rawTransaction)
	if !ok {
		return "", fmt.Errorf("transaction was not built by this client")
	}

	pubKey := &aptoscrypto.Ed25519PublicKey{}
	if err := pubKey.FromBytes(auth.PublicKey); err != nil {
		return "", fmt.Errorf("invalid public key: %w", err)
	}
	sig := &aptoscrypto.Ed25519Signature{}
	if err := sig.FromBytes(auth.Signature); err != nil {
		return "", fmt.Errorf("invalid signature: %w", err)
	}

	authenticator := &aptoscrypto.AccountAuthenticator{
		Variant: aptoscrypto.AccountAuthenticatorEd25519,
		Auth: &aptoscrypto.Ed25519Authenticator{
			PubKey: pubKey,
			Sig:    sig,
		},
	}

	signed, err := raw.raw.SignedTransactionWithAuthenticator(authenticator)
	if err != nil {
		return "", fmt.Errorf("failed to assemble signed transaction: %w", err)
	}

	resp, err := c.rpcClient.SubmitTransaction(signed)
	if err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}

	return resp.Hash, nil
}

// WaitForTransaction polls until hash is committed, timeout passes or ctx is
// done. The poll itself cannot be interrupted; it stops on its own once the
// timeout, capped by the ctx deadline, runs out.
func (c *MovementClient) WaitForTransaction(ctx context.Context, hash string, timeout time.Duration) (*Confirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	type outcome struct {
		conf *Confirmation
		err  error
	}
	done := make(chan outcome, 1)

	go func() {
		txn, err := c.rpcClient.WaitForTransaction(hash, aptos.PollTimeout(timeout))
		if err != nil {
			done <- outcome{err: fmt.Errorf("failed waiting for transaction %s: %w", hash, err)}
			return
		}
		done <- outcome{conf: &Confirmation{
			Hash:     txn.Hash,
			Success:  txn.Success,
			VMStatus: txn.VmStatus,
		}}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("stopped waiting for transaction %s: %w", hash, ctx.Err())
	case out := <-done:
		return out.conf, out.err
	}
}

// Balance returns the native coin balance of address in octas.
func (c *MovementClient) Balance(ctx context.Context, address string) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	addr, err := parseAddress(address)
	if err != nil {
		return 0, fmt.Errorf("invalid address: %w", err)
	}

	balance, err := c.rpcClient.AccountAPTBalance(addr)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return balance, nil
}

// Account returns on-chain metadata of address.
func (c *MovementClient) Account(ctx context.Context, address string) (*AccountInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	addr, err := parseAddress(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}

	info, err := c.rpcClient.Account(addr)
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}

	seq, err := info.SequenceNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to parse sequence number: %w", err)
	}

	return &AccountInfo{
		SequenceNumber:    seq,
		AuthenticationKey: info.AuthenticationKeyHex,
	}, nil
}

func parseAddress(s string) (aptos.AccountAddress, error) {
	var addr aptos.AccountAddress
	if err := addr.ParseStringRelaxed(s); err != nil {
		return aptos.AccountAddress{}, err
	}
	return addr, nil
}

// splitQualified splits "0x1::module::name".
func splitQualified(s string) (aptos.AccountAddress, string, string, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return aptos.AccountAddress{}, "", "", fmt.Errorf("expected address::module::name, got %q", s)
	}
	addr, err := parseAddress(parts[0])
	if err != nil {
		return aptos.AccountAddress{}, "", "", err
	}
	return addr, parts[1], parts[2], nil
}

// structTypeTag parses a non-generic struct type such as 0x1::aptos_coin::AptosCoin.
func structTypeTag(s string) (aptos.TypeTag, error) {
	addr, module, name, err := splitQualified(s)
	if err != nil {
		return aptos.TypeTag{}, err
	}
	return aptos.TypeTag{Value: &aptos.StructTag{
		Address: addr,
		Module:  module,
		Name:    name,
	}}, nil
}

// HexMessage renders a signing message the way signers expect it.
func HexMessage(msg []byte) string {
	return "0x" + hex.EncodeToString(msg)
}
