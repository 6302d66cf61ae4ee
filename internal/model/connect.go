package model

// ConnectRequest represents request for POST /movement/connect
type ConnectRequest struct {
	Wallet string `json:"wallet" validate:"required"`
}

// ConnectResponse represents response for POST /movement/connect
type ConnectResponse struct {
	Wallet       string `json:"wallet"`
	Address      string `json:"address"`
	ShortAddress string `json:"shortAddress"`
	Probe        string `json:"probe"` // outcome of the network-hint connect attempt
}

// NetworkResponse represents response for GET /movement/network
type NetworkResponse struct {
	ChainID    uint64 `json:"chainId"`
	Name       string `json:"name"`
	Recognized bool   `json:"recognized"`
}

// SwitchNetworkRequest represents request for POST /movement/network/switch
type SwitchNetworkRequest struct {
	Network string `json:"network" validate:"required,oneof=mainnet testnet"`
}

// SwitchNetworkResponse represents response for POST /movement/network/switch
type SwitchNetworkResponse struct {
	ChainID uint64 `json:"chainId"`
	Message string `json:"message"`
}
