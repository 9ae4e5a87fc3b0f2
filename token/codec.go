package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Delimiters: '|' separates the two payload fields, ':' separates payload
// from tag. Neither produces a '/' so a token is always one URL path segment.
const (
	payloadSep = "|"
	tagSep     = ":"
)

var (
	// ErrInvalidSignature covers malformed tokens and tag mismatches alike:
	// callers must not be able to distinguish a forged tag from a mangled one.
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrInvalidPayload means the tag verified but the authenticated payload
	// does not parse into (imageID, expiresAt).
	ErrInvalidPayload = errors.New("token payload is invalid")
)

// Codec mints and verifies tamper-evident tokens binding an image id to an
// expiry timestamp. It performs no expiry judgement; that belongs to the
// access gate.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode returns "<imageID>|<expiresAt>:<hex hmac-sha256 tag>". Deterministic
// for a given secret, and URL-safe.
func (c *Codec) Encode(imageID uint64, expiresAt int64) string {
	payload := fmt.Sprintf("%d%s%d", imageID, payloadSep, expiresAt)
	return payload + tagSep + c.sign(payload)
}

// Decode verifies the tag over the payload and returns the embedded fields.
func (c *Codec) Decode(tok string) (imageID uint64, expiresAt int64, err error) {
	parts := strings.Split(tok, tagSep)
	if len(parts) != 2 {
		return 0, 0, ErrInvalidSignature
	}
	payload, tag := parts[0], parts[1]
	if !secureCompare(c.sign(payload), tag) {
		return 0, 0, ErrInvalidSignature
	}

	fields := strings.Split(payload, payloadSep)
	if len(fields) != 2 {
		return 0, 0, ErrInvalidPayload
	}
	imageID, err = strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidPayload
	}
	expiresAt, err = strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return 0, 0, ErrInvalidPayload
	}
	return imageID, expiresAt, nil
}

func (c *Codec) sign(payload string) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write([]byte(payload))
	return hex.EncodeToString(h.Sum(nil))
}

// secureCompare performs constant-time comparison to prevent timing attacks
// on the signature check.
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
