package handler_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/movement-wallet/internal/api"
	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/config"
	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/handler"
	"github.com/AlexZinkM/movement-wallet/internal/identity"
	"github.com/AlexZinkM/movement-wallet/internal/metrics"
	"github.com/AlexZinkM/movement-wallet/internal/model"
	"github.com/AlexZinkM/movement-wallet/internal/network"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
	"github.com/AlexZinkM/movement-wallet/movement"
)

func TestMain(m *testing.M) {
	crypto.ScryptN = 1 << 10
	os.Exit(m.Run())
}

// mustAddress derives the account address of a key known to be well formed.
func mustAddress(pub ed25519.PublicKey) string {
	addr, err := crypto.AddressFromPublicKey(pub)
	if err != nil {
		panic(err)
	}
	return addr
}

type fakeTxn struct{ sender string }

func (t *fakeTxn) Sender() string                  { return t.sender }
func (t *fakeTxn) Function() string                { return client.FunctionAccountTransfer }
func (t *fakeTxn) SigningMessage() ([]byte, error) { return []byte("signing message"), nil }

type fakeChain struct {
	transfers []client.Transfer
	submitted []client.Authenticator
	balance   uint64
}

func (c *fakeChain) BuildTransfer(_ context.Context, sender string, t client.Transfer) (client.UnsignedTransaction, error) {
	c.transfers = append(c.transfers, t)
	return &fakeTxn{sender: sender}, nil
}

func (c *fakeChain) Submit(_ context.Context, _ client.UnsignedTransaction, auth client.Authenticator) (string, error) {
	c.submitted = append(c.submitted, auth)
	return "0xfeed", nil
}

func (c *fakeChain) WaitForTransaction(_ context.Context, hash string, _ time.Duration) (*client.Confirmation, error) {
	return &client.Confirmation{Hash: hash, Success: true}, nil
}

func (c *fakeChain) Balance(context.Context, string) (uint64, error) {
	return c.balance, nil
}

func (c *fakeChain) Account(context.Context, string) (*client.AccountInfo, error) {
	return &client.AccountInfo{SequenceNumber: 3, AuthenticationKey: "0xauth"}, nil
}

type staticVerifier struct {
	userID string
}

func (v staticVerifier) Verify(token string) (string, error) {
	if token != "good" {
		return "", identity.ErrInvalidToken
	}
	return v.userID, nil
}

type harness struct {
	server *httptest.Server
	chain  *fakeChain
	pub    ed25519.PublicKey
	path   string
}

func newHarness(t *testing.T, switchable bool, custodial *handler.Services) *harness {
	t.Helper()

	seed := bytes.Repeat([]byte{7}, ed25519.SeedSize)
	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)

	dir := t.TempDir()
	path := filepath.Join(dir, "wallet.cwt")
	header := model.CWTFile{
		Network:   "movement",
		Address:   mustAddress(pub),
		PublicKey: crypto.PublicKeyHex(pub),
	}
	require.NoError(t, crypto.EncryptWallet(path, header, &model.WalletData{Seed: seed}, []byte("dev")))

	config.Set(&config.Config{
		Port:                  "8080",
		DefaultChainID:        network.MainnetChainID,
		ConfirmTimeoutSeconds: 1,
		SwitchDelayMS:         0,
		LocalWalletPath:       filepath.Join(dir, "generated.cwt"),
	})
	config.SetPassword([]byte("dev"))

	password := func() ([]byte, error) { return []byte("dev"), nil }
	keystore, err := wallet.NewKeystore("Nightly Keystore", path, network.MainnetChainID, password, switchable)
	require.NoError(t, err)

	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	registry := wallet.NewRegistry(keystore)
	adapter := wallet.NewAdapter(log, registry)
	hint := wallet.NetworkHint{ChainID: network.MainnetChainID, Name: "custom", URL: network.Mainnet.RPCURL}

	chain := &fakeChain{balance: 250_000_000}
	chains := movement.NewChains(func(network.Network) (movement.Chain, error) { return chain, nil }, "", network.MainnetChainID)

	svc := handler.Services{
		Registry:  registry,
		Adapter:   adapter,
		Connector: wallet.NewConnector(log, m, registry, adapter, hint),
		Chains:    chains,
	}
	if custodial != nil {
		svc.Provisioner = custodial.Provisioner
		svc.Signer = custodial.Signer
		svc.Verifier = custodial.Verifier
	}

	h, err := handler.NewMovementHandler(log, m, svc)
	require.NoError(t, err)

	server := httptest.NewServer(api.SetupRouter(h, reg))
	t.Cleanup(server.Close)

	return &harness{server: server, chain: chain, pub: pub, path: path}
}

func (h *harness) do(t *testing.T, method, path string, body any, headers ...string) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, h.server.URL+path, reader)
	require.NoError(t, err)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func decodeInto[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v))
	return v
}

func TestWallets(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, body := h.do(t, http.MethodGet, "/movement/wallets", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeInto[model.WalletListResponse](t, body)
	require.Len(t, list.Wallets, 1)
	assert.Equal(t, "Nightly Keystore", list.Wallets[0].Name)
	assert.True(t, list.Wallets[0].SignMessage)
	assert.True(t, list.Wallets[0].SwitchNetwork)

	req := model.WalletSelectRequest{Wallets: []model.WalletDescriptor{
		{Name: "Petra"},
		{Name: "Razor"},
		{Name: "Nightly"},
		{Name: "Razor", Icon: "second"},
		{Name: "Continue with Google"},
	}}
	resp, body = h.do(t, http.MethodPost, "/movement/wallets/select", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeInto[model.WalletListResponse](t, body)
	require.Len(t, list.Wallets, 2)
	assert.Equal(t, "Nightly", list.Wallets[0].Name)
	assert.Equal(t, "Razor", list.Wallets[1].Name)
	assert.Empty(t, list.Wallets[1].Icon)

	resp, body = h.do(t, http.MethodPost, "/movement/wallets/select", model.WalletSelectRequest{Wallets: []model.WalletDescriptor{{Name: "Petra"}}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeInto[model.WalletListResponse](t, body)
	assert.Empty(t, list.Wallets)
	assert.NotEmpty(t, list.Message)

	resp, _ = h.do(t, http.MethodPost, "/movement/wallets", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestConnectFlow(t *testing.T) {
	h := newHarness(t, true, nil)

	resp, _ := h.do(t, http.MethodGet, "/movement/network", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/connect", model.ConnectRequest{Wallet: "Unknown"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/connect", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := h.do(t, http.MethodPost, "/movement/connect", model.ConnectRequest{Wallet: "Nightly Keystore"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	connected := decodeInto[model.ConnectResponse](t, body)
	assert.Equal(t, mustAddress(h.pub), connected.Address)
	assert.Equal(t, "approved", connected.Probe)
	assert.Equal(t, 13, len(connected.ShortAddress))

	resp, body = h.do(t, http.MethodGet, "/movement/network", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	net := decodeInto[model.NetworkResponse](t, body)
	assert.Equal(t, network.MainnetChainID, net.ChainID)
	assert.Equal(t, "Movement Mainnet", net.Name)
	assert.True(t, net.Recognized)

	resp, body = h.do(t, http.MethodPost, "/movement/network/switch", model.SwitchNetworkRequest{Network: "testnet"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	switched := decodeInto[model.SwitchNetworkResponse](t, body)
	assert.Equal(t, network.TestnetChainID, switched.ChainID)

	resp, body = h.do(t, http.MethodGet, "/movement/network", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, network.TestnetChainID, decodeInto[model.NetworkResponse](t, body).ChainID)

	resp, _ = h.do(t, http.MethodPost, "/movement/network/switch", model.SwitchNetworkRequest{Network: "devnet"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/disconnect", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/movement/network", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestSwitchNetwork_Unsupported(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, _ := h.do(t, http.MethodPost, "/movement/connect", model.ConnectRequest{Wallet: "Nightly Keystore"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := h.do(t, http.MethodPost, "/movement/network/switch", model.SwitchNetworkRequest{Network: "testnet"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errResp := decodeInto[model.ErrorResponse](t, body)
	assert.Equal(t, "switch_unsupported", errResp.Code)
	assert.Equal(t, movement.ManualSwitchInstructions, errResp.Error)
}

func TestSignMessage(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, _ := h.do(t, http.MethodPost, "/movement/sign-message", model.SignMessageRequest{Name: "alice"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/connect", model.ConnectRequest{Wallet: "Nightly Keystore"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/sign-message", model.SignMessageRequest{Name: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := h.do(t, http.MethodPost, "/movement/sign-message", model.SignMessageRequest{Name: " alice "})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	signed := decodeInto[model.SignMessageResponse](t, body)
	assert.Equal(t, "gmove alice", signed.Message)
	assert.NotEmpty(t, signed.Nonce)

	sig, err := hex.DecodeString(strings.TrimPrefix(signed.Signature, "0x"))
	require.NoError(t, err)
	full := wallet.FullMessage(wallet.SignMessageInput{Message: signed.Message, Nonce: signed.Nonce})
	assert.True(t, ed25519.Verify(h.pub, []byte(full), sig))
}

func TestTransfer(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, _ := h.do(t, http.MethodPost, "/movement/transfer", model.TransferRequest{Recipient: "0x2"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/connect", model.ConnectRequest{Wallet: "Nightly Keystore"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/transfer", model.TransferRequest{Recipient: "2"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := h.do(t, http.MethodPost, "/movement/transfer", model.TransferRequest{Recipient: "0x2"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeInto[model.TransferResponse](t, body)
	assert.Equal(t, "0xfeed", result.TxHash)
	assert.Equal(t, movement.StatusConfirmed, result.Status)
	assert.Equal(t, "https://explorer.movementnetwork.xyz/txn/0xfeed?network=mainnet", result.ExplorerURL)

	require.Len(t, h.chain.transfers, 1)
	assert.Equal(t, uint64(100_000_000), h.chain.transfers[0].Amount)
	require.Len(t, h.chain.submitted, 1)
	assert.True(t, ed25519.Verify(h.pub, []byte("signing message"), h.chain.submitted[0].Signature))

	resp, _ = h.do(t, http.MethodPost, "/movement/transfer", model.TransferRequest{Recipient: "0x2", Amount: "0.5"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint64(50_000_000), h.chain.transfers[1].Amount)
}

func TestCustodial_Disabled(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, body := h.do(t, http.MethodPost, "/movement/custodial/provision", nil, "Authorization", "Bearer good")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "custodial_disabled", decodeInto[model.ErrorResponse](t, body).Code)
}

func TestCustodial(t *testing.T) {
	seed := bytes.Repeat([]byte{9}, ed25519.SeedSize)
	key := ed25519.NewKeyFromSeed(seed)
	pub := key.Public().(ed25519.PublicKey)

	created := 0
	var account *model.LinkedAccount
	privySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/users/"):
			user := client.PrivyUser{ID: "did:privy:u1"}
			if account != nil {
				user.LinkedAccounts = []model.LinkedAccount{*account}
			}
			json.NewEncoder(w).Encode(user)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/wallets":
			created++
			account = &model.LinkedAccount{
				Type:      "wallet",
				ID:        "w1",
				ChainType: "aptos",
				Address:   mustAddress(pub),
				PublicKey: "00" + hex.EncodeToString(pub),
			}
			json.NewEncoder(w).Encode(model.CustodialWallet{ID: "w1", Address: account.Address, PublicKey: account.PublicKey, ChainType: "movement"})
		case r.Method == http.MethodPost && r.URL.Path == "/v1/wallets/w1/raw_sign":
			var req struct {
				Params struct {
					Hash string `json:"hash"`
				} `json:"params"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			msg, err := hex.DecodeString(strings.TrimPrefix(req.Params.Hash, "0x"))
			require.NoError(t, err)
			var resp client.RawSignResponse
			resp.Data.Signature = "0x" + hex.EncodeToString(ed25519.Sign(key, msg))
			resp.Data.Encoding = "hex"
			json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	}))
	defer privySrv.Close()

	privy := client.NewPrivyClient(privySrv.URL, func() (string, string, error) { return "app", "secret", nil })
	h := newHarness(t, false, &handler.Services{
		Provisioner: movement.NewProvisioner(zerolog.Nop(), metrics.Noop(), privy, privy),
		Signer:      privy,
		Verifier:    staticVerifier{userID: "did:privy:u1"},
	})

	resp, _ := h.do(t, http.MethodPost, "/movement/custodial/provision", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/custodial/provision", nil, "Authorization", "Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := h.do(t, http.MethodPost, "/movement/custodial/provision", nil, "Authorization", "Bearer good")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	provisioned := decodeInto[model.ProvisionResponse](t, body)
	assert.True(t, provisioned.Created)
	assert.Equal(t, "w1", provisioned.Wallet.ID)

	resp, body = h.do(t, http.MethodPost, "/movement/custodial/provision", nil, "Authorization", "Bearer good")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, decodeInto[model.ProvisionResponse](t, body).Created)
	assert.Equal(t, 1, created)

	resp, body = h.do(t, http.MethodPost, "/movement/custodial/transfer", model.TransferRequest{Recipient: "0x2"}, "Authorization", "Bearer good")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := decodeInto[model.TransferResponse](t, body)
	assert.Equal(t, movement.StatusConfirmed, result.Status)
	assert.Equal(t, 1, created)

	require.Len(t, h.chain.transfers, 1)
	assert.Equal(t, client.FunctionCoinTransfer, h.chain.transfers[0].Function)
	assert.Equal(t, uint64(1_000_000), h.chain.transfers[0].Amount)
	require.Len(t, h.chain.submitted, 1)
	assert.Equal(t, pub, h.chain.submitted[0].PublicKey)
}

func TestReads(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, body := h.do(t, http.MethodGet, "/movement/balance?address=0x1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	balance := decodeInto[model.BalanceResponse](t, body)
	assert.Equal(t, "2.50000000", balance.MOVE)
	assert.Equal(t, "Movement Mainnet", balance.Network)
	assert.Empty(t, balance.FaucetURL)

	resp, body = h.do(t, http.MethodGet, "/movement/balance?address=0x1&chainId=250", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, network.FaucetURL, decodeInto[model.BalanceResponse](t, body).FaucetURL)

	resp, _ = h.do(t, http.MethodGet, "/movement/balance?address=alice", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/movement/balance?address=0x1&chainId=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = h.do(t, http.MethodGet, "/movement/account?address=0x1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	account := decodeInto[model.AccountResponse](t, body)
	assert.Equal(t, uint64(3), account.SequenceNumber)
	assert.Equal(t, "0xauth", account.AuthenticationKey)
}

func TestGenerate(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, body := h.do(t, http.MethodPost, "/movement/generate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	generated := decodeInto[model.GenerateResponse](t, body)
	assert.True(t, generated.Success)
	assert.True(t, strings.HasPrefix(generated.Address, "0x"))

	resp, _ = h.do(t, http.MethodPost, "/movement/generate", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHarness(t, false, nil)

	resp, _ := h.do(t, http.MethodPost, "/movement/connect", model.ConnectRequest{Wallet: "Nightly Keystore"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := h.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `movement_wallet_connect_probes_total{outcome="approved"} 1`)
}

func TestNewMovementHandler_RequiresServices(t *testing.T) {
	_, err := handler.NewMovementHandler(zerolog.Nop(), metrics.Noop(), handler.Services{})
	assert.Error(t, err)
}

func TestReadSignature(t *testing.T) {
	h := newHarness(t, false, nil)

	key := ed25519.NewKeyFromSeed(bytes.Repeat([]byte{7}, ed25519.SeedSize))
	input := wallet.SignMessageInput{Message: "gmove alice", Nonce: "1700000000000"}
	sig := ed25519.Sign(key, []byte(wallet.FullMessage(input)))

	indexed := make(map[string]int, len(sig))
	for i, b := range sig {
		indexed[strconv.Itoa(i)] = int(b)
	}
	walletResp, err := json.Marshal(map[string]any{"signature": map[string]any{"data": map[string]any{"data": indexed}}})
	require.NoError(t, err)

	resp, body := h.do(t, http.MethodPost, "/movement/signature", model.SignatureRequest{Response: walletResp})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	read := decodeInto[model.SignatureResponse](t, body)
	assert.Equal(t, "0x"+hex.EncodeToString(sig), read.Signature)
	assert.Nil(t, read.Verified)

	resp, body = h.do(t, http.MethodPost, "/movement/signature", model.SignatureRequest{
		Response:  walletResp,
		PublicKey: crypto.PublicKeyHex(h.pub),
		Message:   input.Message,
		Nonce:     input.Nonce,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	read = decodeInto[model.SignatureResponse](t, body)
	require.NotNil(t, read.Verified)
	assert.True(t, *read.Verified)

	resp, body = h.do(t, http.MethodPost, "/movement/signature", model.SignatureRequest{
		Response:  json.RawMessage(`"` + hex.EncodeToString(sig) + `"`),
		PublicKey: crypto.PublicKeyHex(h.pub),
		Message:   "gmove mallory",
		Nonce:     input.Nonce,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	read = decodeInto[model.SignatureResponse](t, body)
	require.NotNil(t, read.Verified)
	assert.False(t, *read.Verified)

	resp, _ = h.do(t, http.MethodPost, "/movement/signature", model.SignatureRequest{Response: json.RawMessage(`{"sig":"abcd"}`)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/signature", model.SignatureRequest{Response: walletResp, PublicKey: crypto.PublicKeyHex(h.pub)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodPost, "/movement/signature", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = h.do(t, http.MethodGet, "/movement/signature", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
