package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/config"
	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/identity"
	"github.com/AlexZinkM/movement-wallet/internal/model"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
	"github.com/AlexZinkM/movement-wallet/movement"
)

var errCustodialDisabled = errors.New("custodial wallets not configured: set PRIVY_APP_ID and PRIVY_VERIFICATION_KEY")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error, code string) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: code})
}

// writeFailure maps err to a status code and writes it.
func writeFailure(w http.ResponseWriter, err error) {
	var (
		apiErr      *client.APIError
		transferErr *movement.TransferError
		validation  validator.ValidationErrors
	)

	switch {
	case errors.As(err, &validation), errors.Is(err, movement.ErrEmptyName),
		errors.Is(err, movement.ErrUnreadableSignature), errors.Is(err, crypto.ErrInvalidPublicKey):
		writeError(w, http.StatusBadRequest, err, "invalid_request")
	case errors.Is(err, identity.ErrMissingToken), errors.Is(err, identity.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err, "unauthorized")
	case errors.Is(err, wallet.ErrWalletNotFound):
		writeError(w, http.StatusNotFound, err, "wallet_not_found")
	case errors.Is(err, wallet.ErrNotConnected):
		writeError(w, http.StatusConflict, err, "not_connected")
	case errors.Is(err, movement.ErrSwitchUnsupported):
		writeError(w, http.StatusUnprocessableEntity, err, "switch_unsupported")
	case errors.Is(err, wallet.ErrUnsupported):
		writeError(w, http.StatusUnprocessableEntity, err, "unsupported")
	case errors.Is(err, config.ErrMissingCredentials), errors.Is(err, errCustodialDisabled):
		writeError(w, http.StatusServiceUnavailable, err, "custodial_disabled")
	case errors.As(err, &transferErr):
		writeError(w, http.StatusBadGateway, err, string(transferErr.Stage))
	case errors.As(err, &apiErr):
		writeError(w, http.StatusBadGateway, err, "provider_error")
	default:
		writeError(w, http.StatusInternalServerError, err, "")
	}
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, want string) bool {
	if r.Method != want {
		http.Error(w, "Method not allowed. Should be "+want, http.StatusMethodNotAllowed)
		return true
	}
	return false
}
