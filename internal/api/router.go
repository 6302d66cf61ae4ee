package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/AlexZinkM/movement-wallet/docs"
	"github.com/AlexZinkM/movement-wallet/internal/handler"
)

// SetupRouter sets up router with handlers
func SetupRouter(movementHandler *handler.MovementHandler, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Prometheus
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Keystore wallet
	mux.HandleFunc("/movement/generate", movementHandler.Generate)

	// Wallet discovery and connection
	mux.HandleFunc("/movement/wallets", movementHandler.ListWallets)
	mux.HandleFunc("/movement/wallets/select", movementHandler.SelectWallets)
	mux.HandleFunc("/movement/connect", movementHandler.Connect)
	mux.HandleFunc("/movement/disconnect", movementHandler.Disconnect)

	// Network
	mux.HandleFunc("/movement/network", movementHandler.Network)
	mux.HandleFunc("/movement/network/switch", movementHandler.SwitchNetwork)

	// Signing
	mux.HandleFunc("/movement/sign-message", movementHandler.SignMessage)
	mux.HandleFunc("/movement/signature", movementHandler.ReadSignature)
	mux.HandleFunc("/movement/transfer", movementHandler.Transfer)

	// Custodial wallets
	mux.HandleFunc("/movement/custodial/provision", movementHandler.Provision)
	mux.HandleFunc("/movement/custodial/transfer", movementHandler.CustodialTransfer)

	// Reads
	mux.HandleFunc("/movement/balance", movementHandler.GetBalance)
	mux.HandleFunc("/movement/account", movementHandler.GetAccount)

	return mux
}
