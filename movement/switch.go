package movement

import (
	"context"
	"errors"
	"time"

	"github.com/AlexZinkM/movement-wallet/internal/network"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
)

// DefaultSwitchDelay is how long a switch is given to settle.
const DefaultSwitchDelay = time.Second

// ErrSwitchUnsupported is returned for wallets that cannot switch networks.
var ErrSwitchUnsupported = errors.New("network switching not supported: use Nightly wallet for network switching")

// ManualSwitchInstructions tells users of other wallets how to switch.
const ManualSwitchInstructions = "Please manually switch to a Movement network in your wallet: " +
	"Movement Mainnet is Chain ID 126, Movement Testnet is Chain ID 250. " +
	"Automatic network switching is only available with Nightly wallet."

// CanSwitch reports whether w supports switching networks.
func CanSwitch(w wallet.Wallet) bool {
	if !wallet.IsPreferred(w.Name()) {
		return false
	}
	_, ok := w.(wallet.NetworkSwitcher)
	return ok
}

// SwitchNetwork asks w to change to target and waits delay before returning.
// Whether the wallet actually switched is not checked.
func SwitchNetwork(ctx context.Context, w wallet.Wallet, target network.Network, delay time.Duration) error {
	if !CanSwitch(w) {
		return ErrSwitchUnsupported
	}

	switcher := w.(wallet.NetworkSwitcher)
	if err := switcher.ChangeNetwork(ctx, target.ChainID, "custom"); err != nil {
		return err
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
