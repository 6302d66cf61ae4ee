package movement

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/common"
	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/metrics"
	"github.com/AlexZinkM/movement-wallet/internal/network"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
)

const (
	// DefaultWalletAmount is what a connected wallet sends when no amount is given (1 MOVE).
	DefaultWalletAmount = common.OctasPerMOVE
	// DefaultCustodialAmount is what a custodial wallet sends when no amount is given (0.01 MOVE).
	DefaultCustodialAmount = common.OctasPerMOVE / 100

	StatusConfirmed           = "confirmed"
	StatusFailed              = "failed"
	StatusConfirmationTimeout = "confirmation_timeout"

	confirmationWarning = "Transaction submitted but confirmation timed out. Check the explorer for status"
)

// ErrSigningFailed is returned when a signer produced no signature.
var ErrSigningFailed = errors.New("failed to get signature from custodial wallet")

// Stage is a step of the build, sign and submit pipeline.
type Stage string

const (
	StageUnsigned            Stage = "unsigned"
	StageSigningMessage      Stage = "signing-message-computed"
	StageSignature           Stage = "signature-obtained"
	StageAuthenticator       Stage = "authenticator-built"
	StageSubmitted           Stage = "submitted"
	StageConfirmed           Stage = "confirmed"
	StageConfirmationTimeout Stage = "confirmation-timeout"
)

// TransferError is a transfer that failed before it was submitted. Stage is the
// step that could not be completed. The message is the underlying error's.
type TransferError struct {
	Stage Stage
	Err   error
}

func (e *TransferError) Error() string {
	return e.Err.Error()
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

// Chain is the node access a transfer needs.
type Chain interface {
	BuildTransfer(ctx context.Context, sender string, t client.Transfer) (client.UnsignedTransaction, error)
	Submit(ctx context.Context, txn client.UnsignedTransaction, auth client.Authenticator) (string, error)
	WaitForTransaction(ctx context.Context, hash string, timeout time.Duration) (*client.Confirmation, error)
	Balance(ctx context.Context, address string) (uint64, error)
	Account(ctx context.Context, address string) (*client.AccountInfo, error)
}

// Signer produces an Ed25519 signature over a transaction signing message.
type Signer interface {
	Kind() string
	Sign(ctx context.Context, signingMessage []byte) ([]byte, error)
}

// Sender is the account a transfer is sent from.
type Sender struct {
	Address   string
	PublicKey string
}

// TransferResult is a submitted transfer.
type TransferResult struct {
	Hash        string
	Stage       Stage
	Status      string
	Warning     string
	ExplorerURL string
}

// Transferer builds, signs, submits and confirms transfers on one network.
type Transferer struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	chain   Chain
	network network.Network
	timeout time.Duration
}

// NewTransferer creates a transferer. timeout bounds the confirmation wait.
func NewTransferer(log zerolog.Logger, m *metrics.Metrics, chain Chain, n network.Network, timeout time.Duration) *Transferer {
	return &Transferer{
		log:     log.With().Str("component", "transferer").Uint64("chain_id", n.ChainID).Logger(),
		metrics: m,
		chain:   chain,
		network: n,
		timeout: timeout,
	}
}

// WalletTransfer is the transfer a connected wallet makes.
func WalletTransfer(recipient string, octas uint64) client.Transfer {
	return client.Transfer{
		Function:  client.FunctionAccountTransfer,
		Recipient: recipient,
		Amount:    octas,
	}
}

// CustodialTransfer is the transfer a custodial wallet makes.
func CustodialTransfer(recipient string, octas uint64) client.Transfer {
	return client.Transfer{
		Function:      client.FunctionCoinTransfer,
		TypeArguments: []string{client.AptosCoinType},
		Recipient:     recipient,
		Amount:        octas,
	}
}

// Transfer runs t from sender, signed by signer. Failures up to submission are
// returned as *TransferError. A confirmation that never arrives is not an
// error: the result then carries status confirmation_timeout and a warning.
func (t *Transferer) Transfer(ctx context.Context, sender Sender, signer Signer, tr client.Transfer) (*TransferResult, error) {
	log := t.log.With().Str("signer", signer.Kind()).Str("sender", sender.Address).Str("function", tr.Function).Logger()

	txn, err := t.chain.BuildTransfer(ctx, sender.Address, tr)
	if err != nil {
		return nil, t.fail(log, StageUnsigned, err)
	}

	msg, err := txn.SigningMessage()
	if err != nil {
		return nil, t.fail(log, StageSigningMessage, err)
	}

	sig, err := t.sign(ctx, signer, msg)
	t.metrics.Signature(signer.Kind(), err == nil)
	if err != nil {
		return nil, t.fail(log, StageSignature, err)
	}

	auth, err := NewAuthenticator(sender.PublicKey, sig)
	if err != nil {
		return nil, t.fail(log, StageAuthenticator, err)
	}

	hash, err := t.submit(ctx, txn, auth)
	t.metrics.Submission(signer.Kind(), err == nil)
	if err != nil {
		return nil, t.fail(log, StageSubmitted, err)
	}
	log.Info().Str("hash", hash).Msg("transaction submitted")

	result := &TransferResult{
		Hash:        hash,
		Stage:       StageSubmitted,
		ExplorerURL: t.network.TxURL(hash),
	}

	conf, err := t.wait(ctx, hash)
	t.metrics.Confirmation(err == nil)
	if err != nil {
		log.Warn().Str("hash", hash).Err(err).Msg("transaction confirmation timed out")
		result.Stage = StageConfirmationTimeout
		result.Status = StatusConfirmationTimeout
		result.Warning = confirmationWarning
		return result, nil
	}

	result.Stage = StageConfirmed
	if !conf.Success {
		log.Warn().Str("hash", hash).Str("vm_status", conf.VMStatus).Msg("transaction committed but failed")
		result.Status = StatusFailed
		result.Warning = "transaction failed: " + conf.VMStatus
		return result, nil
	}

	result.Status = StatusConfirmed
	log.Info().Str("hash", hash).Msg("transaction confirmed")
	return result, nil
}

func (t *Transferer) sign(ctx context.Context, signer Signer, msg []byte) ([]byte, error) {
	defer t.metrics.Track("sign")()
	return signer.Sign(ctx, msg)
}

func (t *Transferer) submit(ctx context.Context, txn client.UnsignedTransaction, auth client.Authenticator) (string, error) {
	defer t.metrics.Track("submit")()
	return t.chain.Submit(ctx, txn, auth)
}

func (t *Transferer) wait(ctx context.Context, hash string) (*client.Confirmation, error) {
	defer t.metrics.Track("confirm")()
	return t.chain.WaitForTransaction(ctx, hash, t.timeout)
}

func (t *Transferer) fail(log zerolog.Logger, stage Stage, err error) error {
	log.Error().Str("stage", string(stage)).Err(err).Msg("transfer failed")
	return &TransferError{Stage: stage, Err: err}
}

// NewAuthenticator pairs a normalized public key with a 64-byte signature.
func NewAuthenticator(publicKey string, sig []byte) (client.Authenticator, error) {
	pub, err := crypto.DecodePublicKey(publicKey)
	if err != nil {
		return client.Authenticator{}, err
	}
	if len(sig) != ed25519.SignatureSize {
		return client.Authenticator{}, fmt.Errorf("invalid signature length: expected %d bytes, got %d", ed25519.SignatureSize, len(sig))
	}
	return client.Authenticator{PublicKey: pub, Signature: sig}, nil
}

// WalletSigner signs with a connected wallet.
type WalletSigner struct {
	signer wallet.TransactionSigner
}

func NewWalletSigner(signer wallet.TransactionSigner) *WalletSigner {
	return &WalletSigner{signer: signer}
}

func (s *WalletSigner) Kind() string { return "wallet" }

func (s *WalletSigner) Sign(ctx context.Context, signingMessage []byte) ([]byte, error) {
	return s.signer.SignTransaction(ctx, signingMessage)
}

// RawSigner signs a hex-encoded hash with a custodial wallet.
type RawSigner interface {
	RawSign(ctx context.Context, walletID, hash string) (*client.RawSignResponse, error)
}

// CustodialSigner signs through the custodial provider's raw sign call.
type CustodialSigner struct {
	signer   RawSigner
	walletID string
}

func NewCustodialSigner(signer RawSigner, walletID string) *CustodialSigner {
	return &CustodialSigner{signer: signer, walletID: walletID}
}

func (s *CustodialSigner) Kind() string { return "custodial" }

// Sign sends the signing message as 0x hex and decodes the returned signature.
func (s *CustodialSigner) Sign(ctx context.Context, signingMessage []byte) ([]byte, error) {
	resp, err := s.signer.RawSign(ctx, s.walletID, client.HexMessage(signingMessage))
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.Data.Signature == "" {
		return nil, ErrSigningFailed
	}

	sig, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(resp.Data.Signature), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signature encoding: %w", err)
	}
	return sig, nil
}
