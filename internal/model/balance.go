package model

// BalanceResponse represents response for GET /movement/balance
type BalanceResponse struct {
	Address     string `json:"address"`
	Octas       uint64 `json:"octas"`
	MOVE        string `json:"move"`
	Network     string `json:"network"`
	ExplorerURL string `json:"explorerUrl"`
	FaucetURL   string `json:"faucetUrl,omitempty"`
}

// AccountResponse represents response for GET /movement/account
type AccountResponse struct {
	Address           string `json:"address"`
	SequenceNumber    uint64 `json:"sequenceNumber"`
	AuthenticationKey string `json:"authenticationKey"`
	Network           string `json:"network"`
}
