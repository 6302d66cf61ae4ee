package model

// CWTFile represents .cwt keystore file structure
type CWTFile struct {
	Network    string `json:"network"`
	Address    string `json:"address"`
	PublicKey  string `json:"publicKey"`
	QR         string `json:"QR"`
	ScryptN    int    `json:"scryptN,omitempty"` // zero means the default cost
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// WalletData represents decrypted wallet data
type WalletData struct {
	Seed      []byte `json:"seed"` // 32 bytes Ed25519 seed (stored as base64 in JSON)
	CreatedAt string `json:"createdAt"`
}

// WalletDescriptor represents one browser-style wallet entry
type WalletDescriptor struct {
	Name          string `json:"name" validate:"required"`
	Icon          string `json:"icon,omitempty"`
	Connect       bool   `json:"connect"`
	SignMessage   bool   `json:"signMessage"`
	SwitchNetwork bool   `json:"switchNetwork"`
}

// WalletListResponse represents response for GET /movement/wallets
type WalletListResponse struct {
	Wallets []WalletDescriptor `json:"wallets"`
	Message string             `json:"message,omitempty"`
}

// WalletSelectRequest represents request for POST /movement/wallets/select
type WalletSelectRequest struct {
	Wallets []WalletDescriptor `json:"wallets" validate:"dive"`
}

// GenerateResponse represents response for POST .../generate
type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Address string `json:"address,omitempty"`
}
