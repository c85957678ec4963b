package cart

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Store persists the cart's serialized snapshot. Load never fails: an absent
// or unparsable snapshot yields an empty cart.
type Store interface {
	Load() *Cart
	Save(*Cart)
}

// Codec signs and encodes a cart for cookie transport. The payload is the
// bare JSON line-item array; the signature keeps browser-held state honest.
type Codec struct {
	key []byte
}

// NewCodec builds a codec with the given signing key.
func NewCodec(key []byte) Codec {
	return Codec{key: key}
}

// Encode serializes the cart to "base64(json).base64(hmac)".
func (c Codec) Encode(cart *Cart) string {
	var items []LineItem
	if cart != nil {
		items = cart.Items()
	}
	if items == nil {
		items = []LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	payload := base64.RawURLEncoding.EncodeToString(b)
	mac := hmac.New(sha256.New, c.key)
	mac.Write(b)
	sig := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	return payload + "." + sig
}

// Decode verifies and parses an encoded cart. Any failure -- missing value,
// bad signature, garbage JSON -- is silent and yields an empty cart.
func (c Codec) Decode(val string) *Cart {
	parts := strings.Split(val, ".")
	if len(parts) != 2 {
		return New()
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return New()
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return New()
	}
	mac := hmac.New(sha256.New, c.key)
	mac.Write(payload)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return New()
	}
	var items []LineItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return New()
	}
	return New(items...)
}

// MemStore keeps the serialized snapshot in memory. It exists for tests and
// exercises the same encode/decode path as the cookie-backed store.
type MemStore struct {
	codec Codec
	value string
	set   bool
}

// NewMemStore builds an in-memory store signed with key.
func NewMemStore(key []byte) *MemStore {
	return &MemStore{codec: NewCodec(key)}
}

func (s *MemStore) Load() *Cart {
	if !s.set {
		return New()
	}
	return s.codec.Decode(s.value)
}

func (s *MemStore) Save(c *Cart) {
	s.value = s.codec.Encode(c)
	s.set = true
}
