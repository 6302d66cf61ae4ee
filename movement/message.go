package movement

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/signature"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
)

const messagePrefix = "gmove "

var (
	// ErrEmptyName is returned when there is no name to put in the message.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrUnreadableSignature is returned for a wallet response no signature can be read from.
	ErrUnreadableSignature = errors.New("unreadable signature response")
)

// SignedMessage is a message together with its normalized signature.
type SignedMessage struct {
	Message   string
	Nonce     string
	Signature string
}

// MessageText builds the greeting signed for name.
func MessageText(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return messagePrefix + name, nil
}

// Nonce renders now as a Unix millisecond timestamp.
func Nonce(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// SignMessage asks signer to sign the greeting for name and normalizes the
// returned signature to 0x hex.
func SignMessage(ctx context.Context, signer wallet.MessageSigner, name string, now time.Time) (*SignedMessage, error) {
	text, err := MessageText(name)
	if err != nil {
		return nil, err
	}

	input := wallet.SignMessageInput{
		Message: text,
		Nonce:   Nonce(now),
	}

	resp, err := signer.SignMessage(ctx, input)
	if err != nil {
		return nil, err
	}

	sig, err := signature.Normalize(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read signature: %w", err)
	}

	return &SignedMessage{
		Message:   input.Message,
		Nonce:     input.Nonce,
		Signature: sig,
	}, nil
}

// ReadSignature decodes the JSON a wallet returned from a sign-message request
// and renders the signature as 0x hex.
func ReadSignature(raw []byte) (string, error) {
	resp, err := signature.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableSignature, err)
	}
	sig, err := signature.Normalize(resp)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreadableSignature, err)
	}
	return sig, nil
}

// VerifyMessage reports whether sig is publicKey's signature over the full
// wallet message text for input.
func VerifyMessage(publicKey string, input wallet.SignMessageInput, sig string) (bool, error) {
	pub, err := crypto.DecodePublicKey(publicKey)
	if err != nil {
		return false, err
	}
	raw, err := hex.DecodeString(strings.TrimPrefix(sig, "0x"))
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnreadableSignature, err)
	}
	return ed25519.Verify(pub, []byte(wallet.FullMessage(input)), raw), nil
}
