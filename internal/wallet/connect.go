package wallet

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/AlexZinkM/movement-wallet/internal/metrics"
)

// ProbeOutcome records what happened when connecting with a network hint.
type ProbeOutcome string

const (
	ProbeUnsupported ProbeOutcome = "unsupported"
	ProbeFailed      ProbeOutcome = "failed"
	ProbeRejected    ProbeOutcome = "rejected"
	ProbeApproved    ProbeOutcome = "approved"
)

// Lookuper finds a wallet by exact name.
type Lookuper interface {
	Lookup(name string) (Wallet, error)
}

// AccountConnector is the generic connect every wallet supports.
type AccountConnector interface {
	Connect(ctx context.Context, name string) (Account, error)
}

// ConnectResult is a successful connection.
type ConnectResult struct {
	Account Account
	Probe   ProbeOutcome
}

// Connector connects wallets, preferring to pre-declare the target network.
type Connector struct {
	log      zerolog.Logger
	metrics  *metrics.Metrics
	registry Lookuper // nil when no wallet registry is available
	adapter  AccountConnector
	hint     NetworkHint
}

// NewConnector creates a connector. registry may be nil, in which case only the
// generic connect is tried.
func NewConnector(log zerolog.Logger, m *metrics.Metrics, registry Lookuper, adapter AccountConnector, hint NetworkHint) *Connector {
	return &Connector{
		log:      log.With().Str("component", "wallet_connector").Logger(),
		metrics:  m,
		registry: registry,
		adapter:  adapter,
		hint:     hint,
	}
}

// Connect attempts a network-hint connect first and falls back to the generic
// adapter connect. Probe failures never reach the caller; only the error of the
// final attempt is returned.
func (c *Connector) Connect(ctx context.Context, name string) (ConnectResult, error) {
	outcome := c.probe(ctx, name)
	c.metrics.ConnectProbe(string(outcome))

	if outcome == ProbeApproved {
		account, err := c.adapter.Connect(ctx, name)
		if err == nil {
			return ConnectResult{Account: account, Probe: outcome}, nil
		}
		c.log.Debug().Str("wallet", name).Err(err).Msg("adapter connect after approved probe failed, retrying through fallback")
	}

	account, err := c.adapter.Connect(ctx, name)
	if err != nil {
		return ConnectResult{Probe: outcome}, err
	}
	return ConnectResult{Account: account, Probe: outcome}, nil
}

func (c *Connector) probe(ctx context.Context, name string) ProbeOutcome {
	log := c.log.With().Str("wallet", name).Logger()

	if c.registry == nil {
		log.Debug().Msg("no wallet registry, skipping network hint")
		return ProbeUnsupported
	}

	w, err := c.registry.Lookup(name)
	if err != nil {
		log.Debug().Err(err).Msg("wallet not in registry, skipping network hint")
		return ProbeUnsupported
	}

	nc, ok := w.(NetworkConnector)
	if !ok {
		log.Debug().Msg("wallet cannot connect with a network hint")
		return ProbeUnsupported
	}

	status, err := nc.ConnectWithNetwork(ctx, false, c.hint)
	if err != nil {
		log.Warn().Err(err).Uint64("chain_id", c.hint.ChainID).Msg("network hint connect failed, falling back")
		return ProbeFailed
	}
	if status != StatusApproved {
		log.Info().Str("status", string(status)).Msg("network hint connect not approved, falling back")
		return ProbeRejected
	}

	return ProbeApproved
}
