package movement

import (
	"context"
	"fmt"

	"github.com/AlexZinkM/movement-wallet/internal/common"
	"github.com/AlexZinkM/movement-wallet/internal/model"
	"github.com/AlexZinkM/movement-wallet/internal/network"
)

// GetBalance reads the native coin balance of address. Testnet results carry
// the faucet link.
func GetBalance(ctx context.Context, chain Chain, n network.Network, address string) (*model.BalanceResponse, error) {
	octas, err := chain.Balance(ctx, address)
	if err != nil {
		return nil, err
	}

	resp := &model.BalanceResponse{
		Address:     address,
		Octas:       octas,
		MOVE:        common.OctasToMOVE(octas),
		Network:     n.Name,
		ExplorerURL: n.AccountURL(address),
	}
	if n.ChainID == network.TestnetChainID {
		resp.FaucetURL = network.FaucetURL
	}
	return resp, nil
}

// GetAccount reads the on-chain account of address.
func GetAccount(ctx context.Context, chain Chain, n network.Network, address string) (*model.AccountResponse, error) {
	info, err := chain.Account(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to read account: %w", err)
	}

	return &model.AccountResponse{
		Address:           address,
		SequenceNumber:    info.SequenceNumber,
		AuthenticationKey: info.AuthenticationKey,
		Network:           n.Name,
	}, nil
}
