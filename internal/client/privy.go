package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AlexZinkM/movement-wallet/internal/model"
)

const (
	privyAPI = "https://api.privy.io"

	maxErrorBody = 4 << 10
)

// CredentialsFunc returns the Privy app id and secret.
type CredentialsFunc func() (appID, appSecret string, err error)

// APIError is a non-2xx answer from the Privy API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("privy API error: %s - %s", e.Status, e.Body)
}

// PrivyClient client for the Privy wallet API
type PrivyClient struct {
	baseURL     string
	client      *http.Client
	credentials CredentialsFunc
}

// NewPrivyClient creates a new Privy client. An empty baseURL means the public API.
func NewPrivyClient(baseURL string, credentials CredentialsFunc) *PrivyClient {
	if baseURL == "" {
		baseURL = privyAPI
	}
	return &PrivyClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// PrivyUser is the subset of a Privy user this service reads.
type PrivyUser struct {
	ID             string                `json:"id"`
	LinkedAccounts []model.LinkedAccount `json:"linked_accounts"`
}

type createWalletRequest struct {
	ChainType string `json:"chain_type"`
	Owner     struct {
		UserID string `json:"user_id"`
	} `json:"owner"`
}

// RawSignResponse response from the raw_sign endpoint
type RawSignResponse struct {
	Data struct {
		Signature string `json:"signature"`
		Encoding  string `json:"encoding,omitempty"`
	} `json:"data"`
}

type rawSignRequest struct {
	Params struct {
		Hash string `json:"hash"`
	} `json:"params"`
}

// CreateWallet creates a chainType wallet owned by userID.
func (c *PrivyClient) CreateWallet(ctx context.Context, userID, chainType string) (*model.CustodialWallet, error) {
	var body createWalletRequest
	body.ChainType = chainType
	body.Owner.UserID = userID

	var wallet model.CustodialWallet
	headers := map[string]string{"privy-idempotency-key": walletIdempotencyKey(userID, chainType)}
	if err := c.do(ctx, http.MethodPost, "/v1/wallets", body, headers, &wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return &wallet, nil
}

// walletIdempotencyKey is stable per owner and chain so concurrent creations
// for the same user collapse into one wallet on the provider side.
func walletIdempotencyKey(userID, chainType string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("privy:wallet:"+chainType+":"+userID)).String()
}

// RawSign signs hash with the given wallet.
func (c *PrivyClient) RawSign(ctx context.Context, walletID, hash string) (*RawSignResponse, error) {
	var body rawSignRequest
	body.Params.Hash = hash

	var resp RawSignResponse
	path := "/v1/wallets/" + url.PathEscape(walletID) + "/raw_sign"
	if err := c.do(ctx, http.MethodPost, path, body, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to sign: %w", err)
	}
	return &resp, nil
}

// GetUser fetches a user and their linked accounts.
func (c *PrivyClient) GetUser(ctx context.Context, userID string) (*PrivyUser, error) {
	var user PrivyUser
	path := "/v1/users/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (c *PrivyClient) do(ctx context.Context, method, path string, in any, headers map[string]string, out any) error {
	appID, appSecret, err := c.credentials()
	if err != nil {
		return err
	}

	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	auth := base64.StdEncoding.EncodeToString([]byte(appID + ":" + appSecret))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("privy-app-id", appID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
