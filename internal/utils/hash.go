package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Hasher provides keyed HMAC-SHA256 signing for short messages such as the
// OAuth state parameter. The key is stored as a byte slice to avoid repeated
// conversions.
type Hasher struct {
	hashKey []byte
}

// NewHasher constructs a Hasher with the given secret key.
func NewHasher(hashKey string) *Hasher {
	return &Hasher{hashKey: []byte(hashKey)}
}

// Sign computes the hex-encoded HMAC-SHA256 signature of message.
func (h *Hasher) Sign(message string) string {
	mac := hmac.New(sha256.New, h.hashKey)
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify reports whether signature is a valid signature of message.
// Comparison is constant-time.
func (h *Hasher) Verify(message, signature string) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, h.hashKey)
	mac.Write([]byte(message))

	return hmac.Equal(mac.Sum(nil), provided)
}
