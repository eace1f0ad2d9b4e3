package packet

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

// Token is a 32-bit authentication token: the first 8 lowercase hex
// characters of SHA-256(secret), reinterpreted as a big-endian integer.
// The derivation is one way; authentication is token equality.
type Token struct {
	Value uint32
	Bytes [4]byte
	Hex   string
}

// DeriveToken derives the token for a secret. Deterministic, no state.
func DeriveToken(secret string) Token {
	digest := sha256.Sum256([]byte(secret))
	h := hex.EncodeToString(digest[:])[:8]
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		panic(err) // 8 hex digits always parse
	}
	return tokenFromValue(uint32(v))
}

func tokenFromValue(v uint32) Token {
	t := Token{Value: v}
	binary.BigEndian.PutUint32(t.Bytes[:], v)
	t.Hex = hex.EncodeToString(t.Bytes[:])
	return t
}
