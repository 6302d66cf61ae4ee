package wallet

import (
	"fmt"
	"sync"
)

// Registry holds the wallets available to this process.
type Registry struct {
	mu      sync.RWMutex
	wallets []Wallet
}

// NewRegistry creates a registry with the given wallets, in order.
func NewRegistry(wallets ...Wallet) *Registry {
	return &Registry{wallets: wallets}
}

// Register appends w.
func (r *Registry) Register(w Wallet) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wallets = append(r.wallets, w)
}

// Lookup finds a wallet by exact name.
func (r *Registry) Lookup(name string) (Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wallets {
		if w.Name() == name {
			return w, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrWalletNotFound, name)
}

// Descriptors enumerates every registered wallet, unfiltered.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(r.wallets))
	for _, w := range r.wallets {
		out = append(out, Describe(w))
	}
	return out
}
