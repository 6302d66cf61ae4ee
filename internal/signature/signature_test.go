package signature_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexZinkM/movement-wallet/internal/signature"
)

func TestNormalize_SameBytesSameHex(t *testing.T) {
	const want = "0x0aff10"

	tests := []struct {
		desc string
		raw  string
		want signature.Response
	}{
		{desc: "plain string", raw: `"0x0AFF10"`, want: signature.RawString("0x0AFF10")},
		{desc: "plain string without prefix", raw: `"0aff10"`, want: signature.RawString("0aff10")},
		{desc: "byte array", raw: `{"signature":{"data":{"data":[10,255,16]}}}`, want: signature.ByteArray{10, 255, 16}},
		{desc: "indexed byte object", raw: `{"signature":{"data":{"data":{"1":255,"0":10,"2":16}}}}`, want: signature.ByteArray{10, 255, 16}},
		{desc: "string field", raw: `{"signature":"0x0aff10"}`, want: signature.StringField("0x0aff10")},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			resp, err := signature.Parse([]byte(test.raw))
			require.NoError(t, err)
			assert.Equal(t, test.want, resp)

			got, err := signature.Normalize(resp)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParse_Unrecognized(t *testing.T) {
	inputs := []string{
		``,
		`42`,
		`[1,2,3]`,
		`{"sig":"0x00"}`,
		`{"signature":12}`,
		`{"signature":{"data":{}}}`,
		`{"signature":{"data":{"data":{"0":1,"2":3}}}}`,
		`{"signature":{"data":{"data":"abc"}}}`,
	}

	for _, in := range inputs {
		_, err := signature.Parse([]byte(in))
		assert.ErrorIs(t, err, signature.ErrUnrecognizedShape, "input %q", in)
	}
}

func TestNormalize_Errors(t *testing.T) {
	_, err := signature.Normalize(signature.RawString("not-hex"))
	assert.Error(t, err)

	_, err = signature.Normalize(signature.ByteArray{})
	assert.Error(t, err)

	_, err = signature.Normalize(nil)
	assert.ErrorIs(t, err, signature.ErrUnrecognizedShape)
}

func TestNormalize_Ed25519Length(t *testing.T) {
	sig := make(signature.ByteArray, 64)
	got, err := signature.Normalize(sig)
	require.NoError(t, err)
	assert.Len(t, got, 130)
	assert.Equal(t, "0x"+strings.Repeat("00", 64), got)
}
