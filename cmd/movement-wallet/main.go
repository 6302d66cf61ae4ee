package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/AlexZinkM/movement-wallet/internal/api"
	"github.com/AlexZinkM/movement-wallet/internal/client"
	"github.com/AlexZinkM/movement-wallet/internal/config"
	"github.com/AlexZinkM/movement-wallet/internal/handler"
	"github.com/AlexZinkM/movement-wallet/internal/identity"
	"github.com/AlexZinkM/movement-wallet/internal/metrics"
	"github.com/AlexZinkM/movement-wallet/internal/network"
	"github.com/AlexZinkM/movement-wallet/internal/wallet"
	"github.com/AlexZinkM/movement-wallet/movement"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagLevel    string
		flagPort     string
		flagPassword bool
	)

	pflag.StringVarP(&flagLevel, "level", "l", "", "log output level, overrides LOG_LEVEL")
	pflag.StringVarP(&flagPort, "port", "p", "", "port to serve the API on, overrides PORT")
	pflag.BoolVar(&flagPassword, "prompt-password", true, "prompt for the keystore password when LOCAL_WALLET_PATH is set")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)

	err := config.Init()
	if err != nil {
		log.Error().Err(err).Msg("could not load configuration")
		return failure
	}
	cfg := config.Get()
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagLevel == "" {
		flagLevel = cfg.LogLevel
	}

	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// Metrics initialization.
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Local keystore wallet, if configured.
	registry := wallet.NewRegistry()
	if cfg.LocalWalletPath != "" {
		if flagPassword {
			err = config.PromptForPassword()
			if err != nil {
				log.Error().Err(err).Msg("could not read wallet password")
				return failure
			}
		}
		keystore, err := wallet.NewKeystore(cfg.LocalWalletName, cfg.LocalWalletPath, cfg.DefaultChainID, config.GetWalletPasswordBytes, cfg.LocalWalletSwitchable)
		if err != nil {
			log.Error().Err(err).Msg("could not open keystore wallet")
			return failure
		}
		registry.Register(keystore)
		log.Info().Str("wallet", cfg.LocalWalletName).Str("path", cfg.LocalWalletPath).Msg("keystore wallet registered")
	}

	adapter := wallet.NewAdapter(log, registry)
	hint := wallet.NetworkHint{
		ChainID: network.MainnetChainID,
		Name:    "custom",
		URL:     network.Mainnet.RPCURL,
	}
	connector := wallet.NewConnector(log, m, registry, adapter, hint)

	chains := movement.NewChains(func(n network.Network) (movement.Chain, error) {
		c, err := client.NewMovementClient(n)
		if err != nil {
			return nil, err
		}
		return c, nil
	}, config.GetMovementRPCURL(), config.GetDefaultChainID())

	svc := handler.Services{
		Registry:  registry,
		Adapter:   adapter,
		Connector: connector,
		Chains:    chains,
	}

	// Custodial wallets need the app id and the token verification key.
	// The app secret is only checked when the custodial API is called.
	if cfg.PrivyAppID != "" && cfg.PrivyVerificationKey != "" {
		verifier, err := identity.NewVerifier(cfg.PrivyAppID, cfg.PrivyVerificationKey)
		if err != nil {
			log.Error().Err(err).Msg("could not initialize token verifier")
			return failure
		}
		privy := client.NewPrivyClient(cfg.PrivyAPIURL, config.PrivyCredentials)
		svc.Verifier = verifier
		svc.Signer = privy
		svc.Provisioner = movement.NewProvisioner(log, m, privy, privy)
	} else {
		log.Warn().Msg("custodial wallets disabled: PRIVY_APP_ID or PRIVY_VERIFICATION_KEY not set")
	}

	movementHandler, err := handler.NewMovementHandler(log, m, svc)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize handler")
		return failure
	}

	server := &http.Server{
		Addr:              ":" + config.GetPort(),
		Handler:           api.SetupRouter(movementHandler, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// This section launches the server in its own goroutine. Afterwards, we
	// wait for an interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Str("port", config.GetPort()).Msg("Movement wallet server starting")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Movement wallet server failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("Movement wallet server stopped")
	}()

	select {
	case <-sig:
		log.Info().Msg("Movement wallet server stopping")
	case <-done:
		log.Info().Msg("Movement wallet server done")
	case <-failed:
		log.Warn().Msg("Movement wallet server aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	err = server.Shutdown(ctx)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down server")
		return failure
	}

	return success
}
