// Package signature turns the shapes wallets return from message signing into
// one canonical hex form.
package signature

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnrecognizedShape is returned for a signing response that matches none of
// the known variants.
var ErrUnrecognizedShape = errors.New("unrecognized signature response shape")

// Response is one of RawString, ByteArray or StringField.
type Response interface {
	isResponse()
}

// RawString is a signing response that is the signature itself.
type RawString string

// ByteArray is a signature delivered as {signature:{data:{data:[...]}}}.
type ByteArray []byte

// StringField is a signature delivered as {signature:"..."}.
type StringField string

func (RawString) isResponse()   {}
func (ByteArray) isResponse()   {}
func (StringField) isResponse() {}

// Normalize maps a response to a lowercase 0x-prefixed hex string.
func Normalize(r Response) (string, error) {
	switch v := r.(type) {
	case RawString:
		return normalizeHex(string(v))
	case StringField:
		return normalizeHex(string(v))
	case ByteArray:
		if len(v) == 0 {
			return "", errors.New("empty signature")
		}
		return "0x" + hex.EncodeToString(v), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnrecognizedShape, r)
	}
}

func normalizeHex(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return "", errors.New("empty signature")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("signature is not hex: %w", err)
	}
	return "0x" + s, nil
}

type envelope struct {
	Signature json.RawMessage `json:"signature"`
}

type byteEnvelope struct {
	Data struct {
		Data json.RawMessage `json:"data"`
	} `json:"data"`
}

// Parse decodes a JSON signing response into its variant.
func Parse(raw []byte) (Response, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, ErrUnrecognizedShape
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return RawString(s), nil
	case '{':
	default:
		return nil, ErrUnrecognizedShape
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || len(env.Signature) == 0 {
		return nil, ErrUnrecognizedShape
	}

	sig := bytes.TrimSpace(env.Signature)
	switch {
	case len(sig) > 0 && sig[0] == '"':
		var s string
		if err := json.Unmarshal(sig, &s); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return StringField(s), nil
	case len(sig) > 0 && sig[0] == '{':
		var be byteEnvelope
		if err := json.Unmarshal(sig, &be); err != nil || len(be.Data.Data) == 0 {
			return nil, ErrUnrecognizedShape
		}
		b, err := parseBytes(be.Data.Data)
		if err != nil {
			return nil, err
		}
		return ByteArray(b), nil
	default:
		return nil, ErrUnrecognizedShape
	}
}

// parseBytes accepts a JSON array of bytes or an index-keyed object such as
// {"0":12,"1":250}.
func parseBytes(raw json.RawMessage) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if raw[0] == '[' {
		var list []uint8
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return list, nil
	}

	var indexed map[string]uint8
	if raw[0] != '{' {
		return nil, fmt.Errorf("%w: byte data is neither a list nor an indexed object", ErrUnrecognizedShape)
	}
	if err := json.Unmarshal(raw, &indexed); err != nil {
		return nil, fmt.Errorf("%w: byte data is neither a list nor an indexed object", ErrUnrecognizedShape)
	}

	byIndex := make(map[int]uint8, len(indexed))
	keys := make([]int, 0, len(indexed))
	for k, v := range indexed {
		i, err := strconv.Atoi(k)
		if err != nil || i < 0 {
			return nil, fmt.Errorf("%w: bad byte index %q", ErrUnrecognizedShape, k)
		}
		byIndex[i] = v
		keys = append(keys, i)
	}
	sort.Ints(keys)

	out := make([]byte, len(keys))
	for pos, i := range keys {
		if i != pos {
			return nil, fmt.Errorf("%w: byte index %d missing", ErrUnrecognizedShape, pos)
		}
		out[pos] = byIndex[i]
	}
	return out, nil
}
