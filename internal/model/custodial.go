package model

// LinkedAccount is an identity-provider account attached to a user
type LinkedAccount struct {
	Type      string `json:"type"`
	ID        string `json:"id,omitempty"`
	ChainType string `json:"chain_type,omitempty"`
	Address   string `json:"address,omitempty"`
	PublicKey string `json:"public_key,omitempty"`
}

// CustodialWallet is a chain-scoped wallet held by the custodial provider
type CustodialWallet struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	ChainType string `json:"chain_type"`
}

// ProvisionResponse represents response for POST /movement/custodial/provision
type ProvisionResponse struct {
	Wallet       CustodialWallet `json:"wallet"`
	Created      bool            `json:"created"`
	ShortAddress string          `json:"shortAddress"`
	ExplorerURL  string          `json:"explorerUrl"`
}
