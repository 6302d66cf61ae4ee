package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/common"
	"github.com/AlexZinkM/movement-wallet/internal/config"
	"github.com/AlexZinkM/movement-wallet/internal/identity"
	"github.com/AlexZinkM/movement-wallet/internal/metrics"
	"github.com/AlexZinkM/movement-wallet/internal/model"
	"github.com/AlexZinkM/movement-wallet/internal/network"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
	"github.com/AlexZinkM/movement-wallet/movement"
)

const noWalletsMessage = "No compatible wallets detected. Please install a supported wallet."

// TokenVerifier resolves an access token to a user id.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Services are the collaborators MovementHandler dispatches to. Provisioner,
// Signer and Verifier are nil when custodial wallets are not configured.
type Services struct {
	Registry    *wallet.Registry
	Adapter     *wallet.Adapter
	Connector   *wallet.Connector
	Chains      *movement.Chains
	Provisioner *movement.Provisioner
	Signer      movement.RawSigner
	Verifier    TokenVerifier
}

// MovementHandler holds configuration for Movement operations
type MovementHandler struct {
	log      zerolog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	svc      Services

	filePath       string
	defaultChainID uint64
	confirmTimeout time.Duration
	switchDelay    time.Duration
	now            func() time.Time
}

// NewMovementHandler creates a new MovementHandler with config values
func NewMovementHandler(log zerolog.Logger, m *metrics.Metrics, svc Services) (*MovementHandler, error) {
	if svc.Registry == nil || svc.Adapter == nil || svc.Connector == nil || svc.Chains == nil {
		return nil, errors.New("wallet registry, adapter, connector and chains are required")
	}

	return &MovementHandler{
		log:            log.With().Str("component", "movement_handler").Logger(),
		metrics:        m,
		validate:       validator.New(),
		svc:            svc,
		filePath:       config.GetLocalWalletPath(),
		defaultChainID: config.GetDefaultChainID(),
		confirmTimeout: config.GetConfirmTimeout(),
		switchDelay:    config.GetSwitchDelay(),
		now:            time.Now,
	}, nil
}

// Generate handles POST /movement/generate
// @Summary      Generate new wallet
// @Description  Generates a new Movement Ed25519 account and saves it to the .cwt keystore
// @Tags         movement
// @Produce      json
// @Success      200  {object}  model.GenerateResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /movement/generate [post]
func (h *MovementHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}
	if h.filePath == "" {
		writeError(w, http.StatusBadRequest, errors.New("LOCAL_WALLET_PATH not set"), "invalid_request")
		return
	}

	// Get password as []byte, use it, then zero it immediately
	passwordBytes, err := config.GetWalletPasswordBytes()
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "invalid_request")
		return
	}
	defer clear(passwordBytes) // Always clear password from memory

	address, err := movement.GenerateWallet(h.filePath, passwordBytes)
	if err != nil {
		if movement.IsFileExistsError(err) {
			writeError(w, http.StatusConflict, err, "file_exists")
			return
		}
		writeError(w, http.StatusInternalServerError, err, "")
		return
	}

	h.log.Info().Str("address", address).Msg("keystore wallet generated")
	writeJSON(w, http.StatusOK, model.GenerateResponse{
		Success: true,
		Message: "Wallet generated successfully",
		Address: address,
	})
}

// ListWallets handles GET /movement/wallets
// @Summary      List wallets
// @Description  Lists the available wallets, filtered, deduplicated and with Nightly first
// @Tags         wallets
// @Produce      json
// @Success      200  {object}  model.WalletListResponse
// @Router       /movement/wallets [get]
func (h *MovementHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, listResponse(wallet.Select(h.svc.Registry.Descriptors())))
}

// SelectWallets handles POST /movement/wallets/select
// @Summary      Order a wallet list
// @Description  Applies wallet selection rules to a client-supplied list
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.WalletSelectRequest  true  "Wallets"
// @Success      200      {object}  model.WalletListResponse
// @Router       /movement/wallets/select [post]
func (h *MovementHandler) SelectWallets(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.WalletSelectRequest
	if !h.decode(w, r, &req) {
		return
	}

	in := make([]wallet.Descriptor, 0, len(req.Wallets))
	for _, d := range req.Wallets {
		in = append(in, wallet.Descriptor{
			Name: d.Name,
			Icon: d.Icon,
			Capabilities: wallet.Capabilities{
				Connect:       d.Connect,
				SignMessage:   d.SignMessage,
				SwitchNetwork: d.SwitchNetwork,
			},
		})
	}

	writeJSON(w, http.StatusOK, listResponse(wallet.Select(in)))
}

// Connect handles POST /movement/connect
// @Summary      Connect wallet
// @Description  Connects a wallet, pre-declaring Movement Mainnet when the wallet supports it
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  true  "Wallet name"
// @Success      200      {object}  model.ConnectResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /movement/connect [post]
func (h *MovementHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.ConnectRequest
	if !h.decode(w, r, &req) {
		return
	}

	done := h.metrics.Track("connect")
	result, err := h.svc.Connector.Connect(r.Context(), req.Wallet)
	done()
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Wallet:       req.Wallet,
		Address:      result.Account.Address,
		ShortAddress: common.ShortAddress(result.Account.Address),
		Probe:        string(result.Probe),
	})
}

// Disconnect handles POST /movement/disconnect
// @Summary      Disconnect wallet
// @Tags         wallets
// @Success      204
// @Router       /movement/disconnect [post]
func (h *MovementHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}
	h.svc.Adapter.Disconnect()
	w.WriteHeader(http.StatusNoContent)
}

// Network handles GET /movement/network
// @Summary      Current network
// @Description  Reports the network the connected wallet targets
// @Tags         network
// @Produce      json
// @Success      200  {object}  model.NetworkResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /movement/network [get]
func (h *MovementHandler) Network(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}

	_, account, err := h.svc.Adapter.Connected()
	if err != nil {
		writeFailure(w, err)
		return
	}

	_, recognized := network.Lookup(account.ChainID)
	writeJSON(w, http.StatusOK, model.NetworkResponse{
		ChainID:    account.ChainID,
		Name:       network.Name(account.ChainID),
		Recognized: recognized,
	})
}

// SwitchNetwork handles POST /movement/network/switch
// @Summary      Switch network
// @Description  Switches the connected wallet to Movement Mainnet or Testnet. Only Nightly supports this.
// @Tags         network
// @Accept       json
// @Produce      json
// @Param        request  body      model.SwitchNetworkRequest  true  "Target network"
// @Success      200      {object}  model.SwitchNetworkResponse
// @Failure      422      {object}  model.ErrorResponse
// @Router       /movement/network/switch [post]
func (h *MovementHandler) SwitchNetwork(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.SwitchNetworkRequest
	if !h.decode(w, r, &req) {
		return
	}
	target, err := network.ByName(req.Network)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "invalid_request")
		return
	}

	connected, _, err := h.svc.Adapter.Connected()
	if err != nil {
		writeFailure(w, err)
		return
	}

	done := h.metrics.Track("switch_network")
	err = movement.SwitchNetwork(r.Context(), connected, target, h.switchDelay)
	done()
	if errors.Is(err, movement.ErrSwitchUnsupported) {
		writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{
			Error: movement.ManualSwitchInstructions,
			Code:  "switch_unsupported",
		})
		return
	}
	if err != nil {
		h.log.Error().Str("wallet", connected.Name()).Err(err).Msg("network switch failed")
		writeError(w, http.StatusBadGateway, fmt.Errorf("failed to switch to %s: %w", target.Name, err), "switch_failed")
		return
	}

	h.svc.Adapter.SetChainID(target.ChainID)
	writeJSON(w, http.StatusOK, model.SwitchNetworkResponse{
		ChainID: target.ChainID,
		Message: "Switched to " + target.Name,
	})
}

// SignMessage handles POST /movement/sign-message
// @Summary      Sign message
// @Description  Signs "gmove <name>" with the connected wallet
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignMessageRequest  true  "Name"
// @Success      200      {object}  model.SignMessageResponse
// @Router       /movement/sign-message [post]
func (h *MovementHandler) SignMessage(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.SignMessageRequest
	if !h.decode(w, r, &req) {
		return
	}

	connected, _, err := h.svc.Adapter.Connected()
	if err != nil {
		writeFailure(w, err)
		return
	}
	signer, ok := connected.(wallet.MessageSigner)
	if !ok {
		writeFailure(w, fmt.Errorf("%s: %w", connected.Name(), wallet.ErrUnsupported))
		return
	}

	done := h.metrics.Track("sign_message")
	signed, err := movement.SignMessage(r.Context(), signer, req.Name, h.now())
	done()
	h.metrics.Signature("message", err == nil)
	if err != nil {
		h.log.Warn().Str("wallet", connected.Name()).Err(err).Msg("message signing failed")
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.SignMessageResponse{
		Message:   signed.Message,
		Nonce:     signed.Nonce,
		Signature: signed.Signature,
	})
}

// ReadSignature handles POST /movement/signature
// @Summary      Read wallet signature
// @Description  Normalizes a raw sign-message response from a browser wallet to 0x hex, verifying it when a public key is given
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignatureRequest  true  "Wallet response"
// @Success      200      {object}  model.SignatureResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /movement/signature [post]
func (h *MovementHandler) ReadSignature(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.SignatureRequest
	if !h.decode(w, r, &req) {
		return
	}

	sig, err := movement.ReadSignature(req.Response)
	if err != nil {
		writeFailure(w, err)
		return
	}

	resp := model.SignatureResponse{Signature: sig}
	if req.PublicKey != "" {
		input := wallet.SignMessageInput{Message: req.Message, Nonce: req.Nonce}
		ok, err := movement.VerifyMessage(req.PublicKey, input, sig)
		if err != nil {
			writeFailure(w, err)
			return
		}
		resp.Verified = &ok
	}

	writeJSON(w, http.StatusOK, resp)
}

// Transfer handles POST /movement/transfer
// @Summary      Send MOVE
// @Description  Sends MOVE from the connected wallet (1 MOVE by default)
// @Tags         movement
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer"
// @Success      200      {object}  model.TransferResponse
// @Failure      502      {object}  model.ErrorResponse
// @Router       /movement/transfer [post]
func (h *MovementHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.TransferRequest
	if !h.decode(w, r, &req) {
		return
	}
	octas, err := amountOrDefault(req.Amount, movement.DefaultWalletAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "invalid_request")
		return
	}

	connected, account, err := h.svc.Adapter.Connected()
	if err != nil {
		writeFailure(w, err)
		return
	}
	signer, ok := connected.(wallet.TransactionSigner)
	if !ok {
		writeFailure(w, fmt.Errorf("%s: %w", connected.Name(), wallet.ErrUnsupported))
		return
	}

	chainID := account.ChainID
	if req.ChainID != 0 {
		chainID = req.ChainID
	}

	h.transfer(w, r, chainID,
		movement.Sender{Address: account.Address, PublicKey: account.PublicKey},
		movement.NewWalletSigner(signer),
		movement.WalletTransfer(req.Recipient, octas),
	)
}

// Provision handles POST /movement/custodial/provision
// @Summary      Ensure custodial wallet
// @Description  Returns the caller's custodial Movement wallet, creating it on first use
// @Tags         custodial
// @Produce      json
// @Param        Authorization  header    string  true  "Bearer access token"
// @Success      200            {object}  model.ProvisionResponse
// @Failure      401            {object}  model.ErrorResponse
// @Router       /movement/custodial/provision [post]
func (h *MovementHandler) Provision(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	cw, created, ok := h.provision(w, r)
	if !ok {
		return
	}

	n := network.ForClient(h.defaultChainID)
	writeJSON(w, http.StatusOK, model.ProvisionResponse{
		Wallet:       *cw,
		Created:      created,
		ShortAddress: common.ShortAddress(cw.Address),
		ExplorerURL:  n.AccountURL(cw.Address),
	})
}

// CustodialTransfer handles POST /movement/custodial/transfer
// @Summary      Send MOVE from custodial wallet
// @Description  Sends MOVE from the caller's custodial wallet (0.01 MOVE by default)
// @Tags         custodial
// @Accept       json
// @Produce      json
// @Param        Authorization  header    string                 true  "Bearer access token"
// @Param        request        body      model.TransferRequest  true  "Transfer"
// @Success      200            {object}  model.TransferResponse
// @Failure      502            {object}  model.ErrorResponse
// @Router       /movement/custodial/transfer [post]
func (h *MovementHandler) CustodialTransfer(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodPost) {
		return
	}

	var req model.TransferRequest
	if !h.decode(w, r, &req) {
		return
	}
	octas, err := amountOrDefault(req.Amount, movement.DefaultCustodialAmount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "invalid_request")
		return
	}

	cw, _, ok := h.provision(w, r)
	if !ok {
		return
	}

	chainID := h.defaultChainID
	if req.ChainID != 0 {
		chainID = req.ChainID
	}

	h.transfer(w, r, chainID,
		movement.Sender{Address: cw.Address, PublicKey: cw.PublicKey},
		movement.NewCustodialSigner(h.svc.Signer, cw.ID),
		movement.CustodialTransfer(req.Recipient, octas),
	)
}

// GetBalance handles GET /movement/balance
// @Summary      Get balance
// @Description  Gets the MOVE balance of an address
// @Tags         movement
// @Produce      json
// @Param        address  query     string  true   "Account address"
// @Param        chainId  query     int     false  "Chain id, defaults to the configured chain"
// @Success      200      {object}  model.BalanceResponse
// @Router       /movement/balance [get]
func (h *MovementHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}

	address, chain, n, ok := h.readTarget(w, r)
	if !ok {
		return
	}

	balance, err := movement.GetBalance(r.Context(), chain, n, address)
	if err != nil {
		writeError(w, http.StatusBadGateway, err, "node_error")
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// GetAccount handles GET /movement/account
// @Summary      Get account
// @Description  Gets sequence number and authentication key of an address
// @Tags         movement
// @Produce      json
// @Param        address  query     string  true   "Account address"
// @Param        chainId  query     int     false  "Chain id, defaults to the configured chain"
// @Success      200      {object}  model.AccountResponse
// @Router       /movement/account [get]
func (h *MovementHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	if methodNotAllowed(w, r, http.MethodGet) {
		return
	}

	address, chain, n, ok := h.readTarget(w, r)
	if !ok {
		return
	}

	account, err := movement.GetAccount(r.Context(), chain, n, address)
	if err != nil {
		writeError(w, http.StatusBadGateway, err, "node_error")
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (h *MovementHandler) transfer(w http.ResponseWriter, r *http.Request, chainID uint64, sender movement.Sender, signer movement.Signer, tr client.Transfer) {
	chain, n, err := h.svc.Chains.For(chainID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err, "node_error")
		return
	}

	defer h.metrics.Track("transfer")()
	result, err := movement.NewTransferer(h.log, h.metrics, chain, n, h.confirmTimeout).
		Transfer(r.Context(), sender, signer, tr)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, model.TransferResponse{
		TxHash:      result.Hash,
		Status:      result.Status,
		Stage:       string(result.Stage),
		Warning:     result.Warning,
		ExplorerURL: result.ExplorerURL,
	})
}

func (h *MovementHandler) provision(w http.ResponseWriter, r *http.Request) (*model.CustodialWallet, bool, bool) {
	if h.svc.Verifier == nil || h.svc.Provisioner == nil || h.svc.Signer == nil {
		writeFailure(w, errCustodialDisabled)
		return nil, false, false
	}

	token, err := identity.BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		writeFailure(w, err)
		return nil, false, false
	}
	userID, err := h.svc.Verifier.Verify(token)
	if err != nil {
		h.log.Debug().Err(err).Msg("access token rejected")
		writeFailure(w, err)
		return nil, false, false
	}

	cw, created, err := h.svc.Provisioner.Provision(r.Context(), userID)
	if err != nil {
		writeFailure(w, err)
		return nil, false, false
	}
	return cw, created, true
}

func (h *MovementHandler) readTarget(w http.ResponseWriter, r *http.Request) (string, movement.Chain, network.Network, bool) {
	q := r.URL.Query()

	address := q.Get("address")
	if err := h.validate.Var(address, "required,startswith=0x,hexadecimal"); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("address must be a 0x-prefixed hex string"), "invalid_request")
		return "", nil, network.Network{}, false
	}

	chainID := h.defaultChainID
	if s := q.Get("chainId"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid chainId: %w", err), "invalid_request")
			return "", nil, network.Network{}, false
		}
		chainID = id
	}

	chain, n, err := h.svc.Chains.For(chainID)
	if err != nil {
		writeError(w, http.StatusBadGateway, err, "node_error")
		return "", nil, network.Network{}, false
	}
	return address, chain, n, true
}

func (h *MovementHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err, "invalid_request")
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		writeFailure(w, err)
		return false
	}
	return true
}

func listResponse(descriptors []wallet.Descriptor) model.WalletListResponse {
	resp := model.WalletListResponse{Wallets: make([]model.WalletDescriptor, 0, len(descriptors))}
	for _, d := range descriptors {
		resp.Wallets = append(resp.Wallets, model.WalletDescriptor{
			Name:          d.Name,
			Icon:          d.Icon,
			Connect:       d.Capabilities.Connect,
			SignMessage:   d.Capabilities.SignMessage,
			SwitchNetwork: d.Capabilities.SwitchNetwork,
		})
	}
	if len(resp.Wallets) == 0 {
		resp.Message = noWalletsMessage
	}
	return resp
}

func amountOrDefault(amount string, def uint64) (uint64, error) {
	if amount == "" {
		return def, nil
	}
	octas, err := common.MOVEToOctas(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if octas == 0 {
		return 0, errors.New("invalid amount: must be greater than zero")
	}
	return octas, nil
}
