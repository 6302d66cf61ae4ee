package model

import "encoding/json"

// TransferRequest represents request for POST .../transfer
type TransferRequest struct {
	Recipient string `json:"recipient" validate:"required,startswith=0x"`
	Amount    string `json:"amount,omitempty" validate:"omitempty,numeric"` // MOVE, defaults per flow
	ChainID   uint64 `json:"chainId,omitempty"`
}

// TransferResponse represents response for POST .../transfer
type TransferResponse struct {
	TxHash      string `json:"txHash"`
	Status      string `json:"status"`
	Stage       string `json:"stage"`
	Warning     string `json:"warning,omitempty"`
	ExplorerURL string `json:"explorerUrl"`
}

// SignMessageRequest represents request for POST /movement/sign-message
type SignMessageRequest struct {
	Name string `json:"name" validate:"required"`
}

// SignMessageResponse represents response for POST /movement/sign-message
type SignMessageResponse struct {
	Message   string `json:"message"`
	Nonce     string `json:"nonce"`
	Signature string `json:"signature"`
}

// SignatureRequest represents request for POST /movement/signature
type SignatureRequest struct {
	Response  json.RawMessage `json:"response" validate:"required"` // raw wallet sign-message response
	PublicKey string          `json:"publicKey,omitempty"`
	Message   string          `json:"message,omitempty" validate:"required_with=PublicKey"`
	Nonce     string          `json:"nonce,omitempty" validate:"required_with=PublicKey"`
}

// SignatureResponse represents response for POST /movement/signature
type SignatureResponse struct {
	Signature string `json:"signature"`
	Verified  *bool  `json:"verified,omitempty"` // set only when a public key was given
}
