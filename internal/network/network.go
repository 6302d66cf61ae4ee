// Package network describes the two Movement networks the service talks to.
package network

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	MainnetChainID uint64 = 126
	TestnetChainID uint64 = 250

	UnknownName = "Unknown Network"

	explorerBaseURL = "https://explorer.movementnetwork.xyz"
	FaucetURL       = "https://faucet.movementnetwork.xyz/"
)

// Network is a fixed Movement network identity.
type Network struct {
	ChainID  uint64 `json:"chainId"`
	Name     string `json:"name"`
	RPCURL   string `json:"rpcUrl"`
	Explorer string `json:"explorer"` // explorer ?network= segment
}

var (
	Mainnet = Network{
		ChainID:  MainnetChainID,
		Name:     "Movement Mainnet",
		RPCURL:   "https://full.mainnet.movementinfra.xyz/v1",
		Explorer: "mainnet",
	}
	Testnet = Network{
		ChainID:  TestnetChainID,
		Name:     "Movement Testnet",
		RPCURL:   "https://full.testnet.movementinfra.xyz/v1",
		Explorer: "testnet",
	}
)

// Lookup returns the network for a chain id and whether it is recognized.
func Lookup(chainID uint64) (Network, bool) {
	switch chainID {
	case MainnetChainID:
		return Mainnet, true
	case TestnetChainID:
		return Testnet, true
	default:
		return Network{}, false
	}
}

// Name returns the display name of a chain id, "Unknown Network" if unrecognized.
func Name(chainID uint64) string {
	if n, ok := Lookup(chainID); ok {
		return n.Name
	}
	return UnknownName
}

// ForClient returns the network to build a node client for. Unrecognized chain
// ids fall back to testnet.
func ForClient(chainID uint64) Network {
	if n, ok := Lookup(chainID); ok {
		return n
	}
	return Testnet
}

// ByName resolves "mainnet" or "testnet".
func ByName(name string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mainnet":
		return Mainnet, nil
	case "testnet":
		return Testnet, nil
	default:
		return Network{}, fmt.Errorf("unknown network %q: use mainnet or testnet", name)
	}
}

// WithRPC returns a copy of n using rpcURL, or n itself when rpcURL is empty.
func (n Network) WithRPC(rpcURL string) Network {
	if rpcURL != "" {
		n.RPCURL = rpcURL
	}
	return n
}

// TxURL links a transaction hash in the block explorer.
func (n Network) TxURL(hash string) string {
	return fmt.Sprintf("%s/txn/%s?network=%s", explorerBaseURL, url.PathEscape(hash), n.Explorer)
}

// AccountURL links an account in the block explorer.
func (n Network) AccountURL(address string) string {
	return fmt.Sprintf("%s/account/%s?network=%s", explorerBaseURL, url.PathEscape(address), n.Explorer)
}
