package movement

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/AlexZinkM/movement-wallet/internal/crypto"
	"github.com/AlexZinkM/movement-wallet/internal/model"
)

const (
	networkMovement = "movement"
)

// FileExistsError is an error when file already exists and is not empty
type FileExistsError struct {
	Message string
}

func (e *FileExistsError) Error() string {
	return e.Message
}

// IsFileExistsError checks if error is FileExistsError
func IsFileExistsError(err error) bool {
	var target *FileExistsError
	return errors.As(err, &target)
}

// GenerateWallet generates a new Ed25519 Movement account and saves it to a .cwt file.
// Returns the account address on success.
// password must be []byte for security (caller should zero it after use)
func GenerateWallet(filePath string, password []byte) (address string, err error) {
	if filepath.Ext(filePath) != ".cwt" {
		return "", fmt.Errorf("file must have .cwt extension")
	}

	if fileInfo, err := os.Stat(filePath); err == nil && fileInfo.Size() > 0 {
		return "", &FileExistsError{Message: "file is not empty"}
	}

	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return "", fmt.Errorf("failed to generate seed: %w", err)
	}
	defer clear(seed)

	key := ed25519.NewKeyFromSeed(seed)
	defer clear(key)
	pub := key.Public().(ed25519.PublicKey)

	address, err = crypto.AddressFromPublicKey(pub)
	if err != nil {
		return "", err
	}

	qrCode, err := generateQRCode(address)
	if err != nil {
		return "", fmt.Errorf("failed to generate QR code: %w", err)
	}

	header := model.CWTFile{
		Network:   networkMovement,
		Address:   address,
		PublicKey: crypto.PublicKeyHex(pub),
		QR:        qrCode,
	}
	walletData := &model.WalletData{
		Seed:      seed,
		CreatedAt: time.Now().Format(time.RFC3339),
	}

	if err := crypto.EncryptWallet(filePath, header, walletData, password); err != nil {
		return "", fmt.Errorf("failed to encrypt wallet: %w", err)
	}

	return address, nil
}

// generateQRCode generates QR code of address in base64
func generateQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
