package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer produces the HMAC-SHA256 signature Binance requires on signed
// endpoints. Keys are held as []byte so they can be wiped from memory
// on shutdown.
type Signer struct {
	apiKey    []byte
	secretKey []byte
}

// NewSigner creates a signer from the configured credentials.
func NewSigner(apiKey, secretKey string) *Signer {
	return &Signer{
		apiKey:    []byte(apiKey),
		secretKey: []byte(secretKey),
	}
}

// APIKey returns the key sent in the X-MBX-APIKEY header.
func (s *Signer) APIKey() string {
	return string(s.apiKey)
}

// Sign returns the lowercase hex HMAC-SHA256 of the query string.
func (s *Signer) Sign(query string) string {
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// Wipe zeroes the key material.
func (s *Signer) Wipe() {
	if s == nil {
		return
	}
	wipeSlice(s.apiKey)
	wipeSlice(s.secretKey)
}

func wipeSlice(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
