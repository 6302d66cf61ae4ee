package movement_test

import (
	"context"
	"crypto/ed25519"
	"errors"
	"time"

	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/signature"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
)

var testSeed = make([]byte, ed25519.SeedSize)

// mustAddress derives the account address of a key known to be well formed.
func mustAddress(pub ed25519.PublicKey) string {
	addr, err := crypto.AddressFromPublicKey(pub)
	if err != nil {
		panic(err)
	}
	return addr
}

func testKey() (ed25519.PrivateKey, ed25519.PublicKey) {
	key := ed25519.NewKeyFromSeed(testSeed)
	return key, key.Public().(ed25519.PublicKey)
}

func testSender() (ed25519.PrivateKey, string, string) {
	key, pub := testKey()
	return key, mustAddress(pub), crypto.PublicKeyHex(pub)
}

type fakeTxn struct {
	sender   string
	function string
	msg      []byte
	msgErr   error
}

func (t *fakeTxn) Sender() string   { return t.sender }
func (t *fakeTxn) Function() string { return t.function }

func (t *fakeTxn) SigningMessage() ([]byte, error) {
	return t.msg, t.msgErr
}

type fakeChain struct {
	buildErr  error
	msgErr    error
	submitErr error
	waitErr   error
	conf      *client.Confirmation

	balance    uint64
	account    *client.AccountInfo
	readErr    error
	transfers  []client.Transfer
	submitted  []client.Authenticator
	waitedFor  []string
	waitLimits []time.Duration
}

func (c *fakeChain) BuildTransfer(_ context.Context, sender string, t client.Transfer) (client.UnsignedTransaction, error) {
	c.transfers = append(c.transfers, t)
	if c.buildErr != nil {
		return nil, c.buildErr
	}
	return &fakeTxn{sender: sender, function: t.Function, msg: []byte("signing message"), msgErr: c.msgErr}, nil
}

func (c *fakeChain) Submit(_ context.Context, _ client.UnsignedTransaction, auth client.Authenticator) (string, error) {
	if c.submitErr != nil {
		return "", c.submitErr
	}
	c.submitted = append(c.submitted, auth)
	return "0xhash", nil
}

func (c *fakeChain) WaitForTransaction(_ context.Context, hash string, timeout time.Duration) (*client.Confirmation, error) {
	c.waitedFor = append(c.waitedFor, hash)
	c.waitLimits = append(c.waitLimits, timeout)
	if c.waitErr != nil {
		return nil, c.waitErr
	}
	if c.conf != nil {
		return c.conf, nil
	}
	return &client.Confirmation{Hash: hash, Success: true}, nil
}

func (c *fakeChain) Balance(context.Context, string) (uint64, error) {
	return c.balance, c.readErr
}

func (c *fakeChain) Account(context.Context, string) (*client.AccountInfo, error) {
	return c.account, c.readErr
}

// keySigner signs with an in-memory key.
type keySigner struct {
	key   ed25519.PrivateKey
	err   error
	calls int
}

func (s *keySigner) Kind() string { return "test" }

func (s *keySigner) Sign(_ context.Context, msg []byte) ([]byte, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return ed25519.Sign(s.key, msg), nil
}

type fakeRawSigner struct {
	resp     *client.RawSignResponse
	err      error
	walletID string
	hash     string
}

func (s *fakeRawSigner) RawSign(_ context.Context, walletID, hash string) (*client.RawSignResponse, error) {
	s.walletID = walletID
	s.hash = hash
	return s.resp, s.err
}

// shapeWallet answers message signing with a fixed response shape.
type shapeWallet struct {
	name   string
	resp   signature.Response
	err    error
	inputs []wallet.SignMessageInput
}

func (w *shapeWallet) Name() string { return w.name }
func (w *shapeWallet) Icon() string { return "" }

func (w *shapeWallet) Connect(context.Context) (wallet.Account, error) {
	return wallet.Account{}, nil
}

func (w *shapeWallet) SignMessage(_ context.Context, input wallet.SignMessageInput) (signature.Response, error) {
	w.inputs = append(w.inputs, input)
	return w.resp, w.err
}

// switchWallet records network changes.
type switchWallet struct {
	name     string
	err      error
	switched []uint64
	names    []string
}

func (w *switchWallet) Name() string { return w.name }
func (w *switchWallet) Icon() string { return "" }

func (w *switchWallet) Connect(context.Context) (wallet.Account, error) {
	return wallet.Account{}, nil
}

func (w *switchWallet) ChangeNetwork(_ context.Context, chainID uint64, name string) error {
	if w.err != nil {
		return w.err
	}
	w.switched = append(w.switched, chainID)
	w.names = append(w.names, name)
	return nil
}

// plainWallet has no optional capability.
type plainWallet struct {
	name string
}

func (w *plainWallet) Name() string { return w.name }
func (w *plainWallet) Icon() string { return "" }

func (w *plainWallet) Connect(context.Context) (wallet.Account, error) {
	return wallet.Account{}, errors.New("not used")
}
