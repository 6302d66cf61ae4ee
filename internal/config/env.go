package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// ErrMissingCredentials is returned when Privy credentials are needed but not configured.
var ErrMissingCredentials = errors.New("privy app credentials not configured: set PRIVY_APP_ID and PRIVY_APP_SECRET")

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetWalletPasswordBytes()
type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	PrivyAppID           string `envconfig:"PRIVY_APP_ID"`
	PrivyAppSecret       string `envconfig:"PRIVY_APP_SECRET"`
	PrivyAPIURL          string `envconfig:"PRIVY_API_URL" default:"https://api.privy.io"`
	PrivyVerificationKey string `envconfig:"PRIVY_VERIFICATION_KEY"`

	MovementRPCURL        string `envconfig:"MOVEMENT_RPC_URL"`
	DefaultChainID        uint64 `envconfig:"DEFAULT_CHAIN_ID" default:"126"`
	ConfirmTimeoutSeconds int    `envconfig:"CONFIRM_TIMEOUT_SECONDS" default:"30"`
	SwitchDelayMS         int    `envconfig:"SWITCH_DELAY_MS" default:"1000"`

	LocalWalletPath       string `envconfig:"LOCAL_WALLET_PATH"`
	LocalWalletName       string `envconfig:"LOCAL_WALLET_NAME" default:"Local Keystore"`
	LocalWalletSwitchable bool   `envconfig:"LOCAL_WALLET_SWITCHABLE" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables and validates it.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

// Set replaces the global configuration. Used by tests and tools.
func Set(c *Config) {
	cfg = c
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// Validate reports every invalid setting at once. Missing Privy credentials are
// not an error here; they only matter once a custodial wallet is requested.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if c.Port == "" {
		errs = multierror.Append(errs, errors.New("PORT must not be empty"))
	}
	if c.PrivyAPIURL != "" {
		if _, err := url.ParseRequestURI(c.PrivyAPIURL); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid PRIVY_API_URL: %w", err))
		}
	}
	if c.MovementRPCURL != "" {
		if _, err := url.ParseRequestURI(c.MovementRPCURL); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid MOVEMENT_RPC_URL: %w", err))
		}
	}
	if c.ConfirmTimeoutSeconds <= 0 {
		errs = multierror.Append(errs, errors.New("CONFIRM_TIMEOUT_SECONDS must be positive"))
	}
	if c.SwitchDelayMS < 0 {
		errs = multierror.Append(errs, errors.New("SWITCH_DELAY_MS must not be negative"))
	}
	if c.LocalWalletPath != "" && filepath.Ext(c.LocalWalletPath) != ".cwt" {
		errs = multierror.Append(errs, errors.New("LOCAL_WALLET_PATH must have .cwt extension"))
	}

	return errs.ErrorOrNil()
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetDefaultChainID returns the chain id used when a request does not name one
func GetDefaultChainID() uint64 {
	return Get().DefaultChainID
}

// GetMovementRPCURL returns the RPC override, empty when the network default applies
func GetMovementRPCURL() string {
	return Get().MovementRPCURL
}

// GetConfirmTimeout returns how long to wait for a transaction to be confirmed
func GetConfirmTimeout() time.Duration {
	return time.Duration(Get().ConfirmTimeoutSeconds) * time.Second
}

// GetSwitchDelay returns the pause before a network switch is reported as done
func GetSwitchDelay() time.Duration {
	return time.Duration(Get().SwitchDelayMS) * time.Millisecond
}

// GetLocalWalletPath returns path to the .cwt keystore, empty when disabled
func GetLocalWalletPath() string {
	return Get().LocalWalletPath
}

// PrivyCredentials returns the app id and secret used for Basic auth against Privy.
func PrivyCredentials() (appID, appSecret string, err error) {
	c := Get()
	if c.PrivyAppID == "" || c.PrivyAppSecret == "" {
		return "", "", ErrMissingCredentials
	}
	return c.PrivyAppID, c.PrivyAppSecret, nil
}

var passwordBytes []byte

// PromptForPassword prompts the user for the keystore password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	passwordBytes = raw
	return nil
}

// ReadPassword reads one hidden line from the terminal.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}

	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}

// SetPassword stores a password without prompting.
func SetPassword(p []byte) {
	passwordBytes = make([]byte, len(p))
	copy(passwordBytes, p)
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
