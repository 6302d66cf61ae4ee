package movement

import (
	"fmt"
	"sync"

	"github.com/AlexZinkM/movement-wallet/internal/network"
)

// DialFunc creates a node client for a network.
type DialFunc func(n network.Network) (Chain, error)

// Chains hands out one node client per network, created on first use.
type Chains struct {
	dial        DialFunc
	rpcOverride string
	overrideFor uint64

	mu      sync.Mutex
	clients map[uint64]Chain
}

// NewChains creates the client set. rpcOverride, when set, replaces the RPC
// endpoint of the network with chain id overrideFor.
func NewChains(dial DialFunc, rpcOverride string, overrideFor uint64) *Chains {
	return &Chains{
		dial:        dial,
		rpcOverride: rpcOverride,
		overrideFor: overrideFor,
		clients:     make(map[uint64]Chain),
	}
}

// For returns the client and network for chainID. Unrecognized ids use testnet.
func (c *Chains) For(chainID uint64) (Chain, network.Network, error) {
	n := network.ForClient(chainID)
	if n.ChainID == c.overrideFor {
		n = n.WithRPC(c.rpcOverride)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if chain, ok := c.clients[n.ChainID]; ok {
		return chain, n, nil
	}

	chain, err := c.dial(n)
	if err != nil {
		return nil, network.Network{}, fmt.Errorf("failed to connect to %s: %w", n.Name, err)
	}
	c.clients[n.ChainID] = chain
	return chain, n, nil
}
