package wallet

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Adapter keeps the single active wallet connection of the process.
type Adapter struct {
	log      zerolog.Logger
	registry *Registry

	mu        sync.RWMutex
	connected Wallet
	account   Account
}

// NewAdapter creates an adapter that connects to wallets found in registry.
func NewAdapter(log zerolog.Logger, registry *Registry) *Adapter {
	return &Adapter{
		log:      log.With().Str("component", "wallet_adapter").Logger(),
		registry: registry,
	}
}

// Connect connects to the named wallet and makes it the active one. Errors are
// logged here, the adapter being the place connection failures are reported.
func (a *Adapter) Connect(ctx context.Context, name string) (Account, error) {
	w, err := a.registry.Lookup(name)
	if err != nil {
		a.log.Warn().Str("wallet", name).Err(err).Msg("could not find wallet")
		return Account{}, err
	}

	account, err := w.Connect(ctx)
	if err != nil {
		a.log.Error().Str("wallet", name).Err(err).Msg("could not connect wallet")
		return Account{}, fmt.Errorf("failed to connect %s: %w", name, err)
	}

	a.mu.Lock()
	a.connected = w
	a.account = account
	a.mu.Unlock()

	a.log.Info().Str("wallet", name).Str("address", account.Address).Uint64("chain_id", account.ChainID).Msg("wallet connected")
	return account, nil
}

// Disconnect drops the active connection, if any.
func (a *Adapter) Disconnect() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.connected = nil
	a.account = Account{}
}

// Connected returns the active wallet and its account.
func (a *Adapter) Connected() (Wallet, Account, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.connected == nil {
		return nil, Account{}, ErrNotConnected
	}
	return a.connected, a.account, nil
}

// SetChainID records the network the active wallet now targets.
func (a *Adapter) SetChainID(chainID uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.account.ChainID = chainID
}
