package movement

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/metrics"
	"github.com/AlexZinkM/movement-wallet/internal/model"
)

const (
	linkedWalletType = "wallet"
	// Existing wallets are listed under the aptos chain type while new ones
	// are requested as movement.
	lookupChainType = "aptos"
	createChainType = "movement"
)

// Identity is an authenticated custodial-provider user.
type Identity struct {
	UserID         string
	LinkedAccounts []model.LinkedAccount
}

// WalletCreator creates a custodial wallet for a user.
type WalletCreator interface {
	CreateWallet(ctx context.Context, userID, chainType string) (*model.CustodialWallet, error)
}

// CreatorFunc is a WalletCreator backed by a plain function.
type CreatorFunc func(ctx context.Context, userID, chainType string) (*model.CustodialWallet, error)

func (f CreatorFunc) CreateWallet(ctx context.Context, userID, chainType string) (*model.CustodialWallet, error) {
	return f(ctx, userID, chainType)
}

// UserSource reads a user's current linked accounts.
type UserSource interface {
	GetUser(ctx context.Context, userID string) (*client.PrivyUser, error)
}

// Provisioner makes sure a user owns exactly one custodial Movement wallet.
type Provisioner struct {
	log     zerolog.Logger
	metrics *metrics.Metrics
	users   UserSource
	creator WalletCreator
}

func NewProvisioner(log zerolog.Logger, m *metrics.Metrics, users UserSource, creator WalletCreator) *Provisioner {
	return &Provisioner{
		log:     log.With().Str("component", "provisioner").Logger(),
		metrics: m,
		users:   users,
		creator: creator,
	}
}

// Provision loads the user's identity and ensures it has a wallet.
func (p *Provisioner) Provision(ctx context.Context, userID string) (*model.CustodialWallet, bool, error) {
	if userID == "" {
		return nil, false, errors.New("user id not set")
	}

	user, err := p.loadUser(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load identity: %w", err)
	}

	return p.EnsureWallet(ctx, Identity{UserID: user.ID, LinkedAccounts: user.LinkedAccounts})
}

// EnsureWallet returns the identity's existing wallet, or creates one. The
// bool reports whether a wallet was created. Nothing is retried.
func (p *Provisioner) EnsureWallet(ctx context.Context, id Identity) (*model.CustodialWallet, bool, error) {
	log := p.log.With().Str("user", id.UserID).Logger()

	if existing, ok := FindWallet(id.LinkedAccounts); ok {
		log.Debug().Str("address", existing.Address).Msg("user already has a wallet")
		return existing, false, nil
	}

	created, err := p.create(ctx, id.UserID)
	if err != nil {
		log.Error().Err(err).Msg("could not create wallet")
		return nil, false, err
	}
	p.metrics.WalletCreated()

	log.Info().Str("wallet_id", created.ID).Str("address", created.Address).Msg("wallet created")
	return created, true, nil
}

func (p *Provisioner) loadUser(ctx context.Context, userID string) (*client.PrivyUser, error) {
	defer p.metrics.Track("identity")()
	return p.users.GetUser(ctx, userID)
}

func (p *Provisioner) create(ctx context.Context, userID string) (*model.CustodialWallet, error) {
	defer p.metrics.Track("provision")()
	return p.creator.CreateWallet(ctx, userID, createChainType)
}

// FindWallet returns the first linked wallet account on the aptos chain type.
func FindWallet(accounts []model.LinkedAccount) (*model.CustodialWallet, bool) {
	for _, a := range accounts {
		if a.Type == linkedWalletType && a.ChainType == lookupChainType {
			return &model.CustodialWallet{
				ID:        a.ID,
				Address:   a.Address,
				PublicKey: a.PublicKey,
				ChainType: a.ChainType,
			}, true
		}
	}
	return nil, false
}
