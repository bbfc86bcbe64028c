// Package totp derives time-based one-time codes (RFC 6238) from stored
// authenticator secrets.
//
// A secret can be a bare base32 string, a full otpauth:// URI carrying
// period/digits/algorithm parameters, or a steam:// URI using Steam Guard's
// 5-character alphabet.
package totp

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"hash"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/vaultview/internal/common"
)

// DefaultPeriod is the interval length (seconds) used when the secret does
// not specify one.
const DefaultPeriod = 30

const defaultDigits = 6

const steamAlphabet = "23456789BCDFGHJKMNPQRTVWXY"

// Key is a parsed authenticator secret.
type Key struct {
	Secret    []byte
	Period    int
	Digits    int
	Algorithm func() hash.Hash
	Steam     bool
}

// Parse interprets a stored secret string. Unknown parameters are ignored,
// missing ones fall back to RFC defaults (SHA1, 6 digits, 30 seconds).
func Parse(raw string) (*Key, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, common.ErrInvalidSecret
	}

	key := &Key{Period: DefaultPeriod, Digits: defaultDigits, Algorithm: sha1.New}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "steam://"):
		key.Steam = true
		key.Digits = 5
		secret, err := decodeSecret(raw[len("steam://"):])
		if err != nil {
			return nil, err
		}
		key.Secret = secret
		return key, nil

	case strings.HasPrefix(lower, "otpauth://"):
		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidSecret, err)
		}
		params := u.Query()

		secret, err := decodeSecret(params.Get("secret"))
		if err != nil {
			return nil, err
		}
		key.Secret = secret

		if v := params.Get("period"); v != "" {
			if p, err := strconv.Atoi(v); err == nil && p > 0 {
				key.Period = p
			}
		}
		if v := params.Get("digits"); v != "" {
			if d, err := strconv.Atoi(v); err == nil && d > 0 && d <= 10 {
				key.Digits = d
			}
		}
		switch strings.ToUpper(params.Get("algorithm")) {
		case "SHA256":
			key.Algorithm = sha256.New
		case "SHA512":
			key.Algorithm = sha512.New
		}
		return key, nil

	default:
		secret, err := decodeSecret(raw)
		if err != nil {
			return nil, err
		}
		key.Secret = secret
		return key, nil
	}
}

// Interval reports the interval length in seconds for the given secret.
// Unparseable secrets report the default so the caller's countdown still
// behaves sanely.
func Interval(raw string) int {
	key, err := Parse(raw)
	if err != nil {
		return DefaultPeriod
	}
	return key.Period
}

// GenerateCode derives the code for the interval window containing t.
func GenerateCode(raw string, t time.Time) (string, error) {
	key, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return key.Generate(t), nil
}

// Generate derives the code for the interval window containing t.
func (k *Key) Generate(t time.Time) string {
	counter := uint64(t.Unix()) / uint64(k.Period)

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(k.Algorithm, k.Secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation per RFC 4226 §5.3.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	if k.Steam {
		var b strings.Builder
		for i := 0; i < k.Digits; i++ {
			b.WriteByte(steamAlphabet[code%uint32(len(steamAlphabet))])
			code /= uint32(len(steamAlphabet))
		}
		return b.String()
	}

	mod := uint32(1)
	for i := 0; i < k.Digits; i++ {
		mod *= 10
	}
	return fmt.Sprintf("%0*d", k.Digits, code%mod)
}

// decodeSecret tolerates the formatting users paste in: spaces, dashes,
// lowercase, and trailing padding.
func decodeSecret(s string) ([]byte, error) {
	s = strings.ToUpper(strings.NewReplacer(" ", "", "-", "", "=", "").Replace(strings.TrimSpace(s)))
	if s == "" {
		return nil, common.ErrInvalidSecret
	}
	b, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidSecret, err)
	}
	return b, nil
}
