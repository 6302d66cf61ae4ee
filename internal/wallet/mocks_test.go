package wallet_test

import (
	"context"
	"errors"

	"github.com/AlexZinkM/movement-wallet/internal/signature"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
)

// basicWallet only supports the generic connect.
type basicWallet struct {
	name     string
	account  wallet.Account
	connErr  error
	connects int
}

func (w *basicWallet) Name() string { return w.name }
func (w *basicWallet) Icon() string { return "" }

func (w *basicWallet) Connect(context.Context) (wallet.Account, error) {
	w.connects++
	if w.connErr != nil {
		return wallet.Account{}, w.connErr
	}
	return w.account, nil
}

// hintWallet also supports connecting with a network hint.
type hintWallet struct {
	basicWallet
	status  wallet.ConnectStatus
	hintErr error
	hints   []wallet.NetworkHint
	silent  []bool
}

func (w *hintWallet) ConnectWithNetwork(_ context.Context, silent bool, hint wallet.NetworkHint) (wallet.ConnectStatus, error) {
	w.hints = append(w.hints, hint)
	w.silent = append(w.silent, silent)
	if w.hintErr != nil {
		return "", w.hintErr
	}
	return w.status, nil
}

// fullWallet exposes every optional capability.
type fullWallet struct {
	hintWallet
}

func (w *fullWallet) SignMessage(context.Context, wallet.SignMessageInput) (signature.Response, error) {
	return signature.RawString("0x00"), nil
}

func (w *fullWallet) ChangeNetwork(context.Context, uint64, string) error {
	return errors.New("not implemented")
}
