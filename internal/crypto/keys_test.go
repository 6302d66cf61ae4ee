package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func TestNormalizePublicKey(t *testing.T) {
	key := strings.Repeat("ab", 32)

	tests := []struct {
		desc    string
		in      string
		want    string
		wantErr error
	}{
		{desc: "plain 64 chars", in: key, want: key},
		{desc: "0x prefix", in: "0x" + key, want: key},
		{desc: "redundant zero byte", in: "0x00" + key, want: key},
		{desc: "zero byte without prefix", in: "00" + key, want: key},
		{desc: "uppercase", in: "0x" + strings.ToUpper(key), want: key},
		{desc: "63 chars", in: key[:63], wantErr: ErrInvalidPublicKey},
		{desc: "66 chars without zero byte", in: "ff" + key, wantErr: ErrInvalidPublicKey},
		{desc: "not hex", in: strings.Repeat("zz", 32), wantErr: ErrInvalidPublicKey},
		{desc: "empty", in: "", wantErr: ErrInvalidPublicKey},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizePublicKey(test.in)
			if test.wantErr != nil {
				assert.ErrorIs(t, err, test.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestAddressFromPublicKey(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	addr, err := AddressFromPublicKey(pub)
	require.NoError(t, err)
	assert.Len(t, addr, 66)
	assert.True(t, strings.HasPrefix(addr, "0x"))

	// single-key Ed25519 auth key: sha3-256(public key || 0x00)
	h := sha3.New256()
	h.Write(pub)
	h.Write([]byte{0x00})
	assert.Equal(t, "0x"+hex.EncodeToString(h.Sum(nil)), addr)

	_, err = AddressFromPublicKey(pub[:31])
	assert.ErrorIs(t, err, ErrInvalidPublicKey)

	decoded, err := DecodePublicKey("0x00" + hex.EncodeToString(pub))
	require.NoError(t, err)
	assert.Equal(t, pub, decoded)
}
