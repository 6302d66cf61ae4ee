// Re-encrypts a .cwt keystore under a new password with a fresh salt and nonce.
// Usage: go run ./cmd/rekey --file wallet.cwt
package main

import (
	"bytes"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/AlexZinkM/movement-wallet/internal/config"
	"github.com/AlexZinkM/movement-wallet/internal/crypto"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	var (
		flagFile    string
		flagLevel   string
		flagScryptN int
	)

	pflag.StringVarP(&flagFile, "file", "f", "", "path to the .cwt keystore")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.IntVar(&flagScryptN, "scrypt-n", crypto.DefaultScryptN, "scrypt cost for the re-encrypted file")

	pflag.Parse()

	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	if flagFile == "" {
		log.Error().Msg("keystore file is required (--file)")
		return failure
	}
	if flagScryptN < 1<<14 || flagScryptN&(flagScryptN-1) != 0 {
		log.Error().Int("scrypt_n", flagScryptN).Msg("scrypt cost must be a power of two of at least 16384")
		return failure
	}

	oldPassword, err := config.ReadPassword("Current password: ")
	if err != nil {
		log.Error().Err(err).Msg("could not read current password")
		return failure
	}
	defer clear(oldPassword)

	header, data, err := crypto.DecryptWallet(flagFile, oldPassword)
	if err != nil {
		log.Error().Str("file", flagFile).Err(err).Msg("could not decrypt keystore")
		return failure
	}
	defer clear(data.Seed)

	newPassword, err := config.ReadPassword("New password: ")
	if err != nil {
		log.Error().Err(err).Msg("could not read new password")
		return failure
	}
	defer clear(newPassword)

	confirm, err := config.ReadPassword("Repeat new password: ")
	if err != nil {
		log.Error().Err(err).Msg("could not read new password")
		return failure
	}
	defer clear(confirm)

	if !bytes.Equal(newPassword, confirm) {
		log.Error().Msg("new passwords do not match")
		return failure
	}

	crypto.ScryptN = flagScryptN
	err = crypto.ReencryptWallet(flagFile, *header, data, newPassword)
	if err != nil {
		log.Error().Str("file", flagFile).Err(err).Msg("could not write keystore")
		return failure
	}

	log.Info().Str("file", flagFile).Str("address", header.Address).Msg("keystore re-encrypted")
	return success
}
