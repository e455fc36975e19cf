package security

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
)

// Argon2Params tunes Argon2id. Zero fields fall back to defaults.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

var DefaultArgon2Params = Argon2Params{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
}

// Argon2Hasher derives a deterministic Argon2id hash. The salt is taken from
// the normalized email, so the same (email, password) always yields the same
// encoded string.
type Argon2Hasher struct {
	p Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	if p.Time == 0 {
		p.Time = DefaultArgon2Params.Time
	}
	if p.Memory == 0 {
		p.Memory = DefaultArgon2Params.Memory
	}
	if p.Threads == 0 {
		p.Threads = DefaultArgon2Params.Threads
	}
	if p.KeyLen == 0 {
		p.KeyLen = DefaultArgon2Params.KeyLen
	}
	return &Argon2Hasher{p: p}
}

func (h *Argon2Hasher) Hash(email, password string) (string, error) {
	if email == "" {
		return "", domain.ErrHashFailed(fmt.Errorf("empty email"))
	}
	salt := emailSalt(email)
	key := argon2.IDKey([]byte(password), salt, h.p.Time, h.p.Memory, h.p.Threads, h.p.KeyLen)

	enc := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.p.Memory, h.p.Time, h.p.Threads,
		enc.EncodeToString(salt), enc.EncodeToString(key)), nil
}

// SHA256Hasher produces hex(sha256(email + password)), the format found in
// sheets populated before Argon2 was introduced.
type SHA256Hasher struct{}

func NewSHA256Hasher() SHA256Hasher { return SHA256Hasher{} }

func (SHA256Hasher) Hash(email, password string) (string, error) {
	sum := sha256.Sum256([]byte(normalizeEmail(email) + password))
	return hex.EncodeToString(sum[:]), nil
}

// NewHasher picks an implementation by algorithm name.
func NewHasher(algorithm string) (credentials.Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", "argon2id":
		return NewArgon2Hasher(DefaultArgon2Params), nil
	case "sha256":
		return NewSHA256Hasher(), nil
	default:
		return nil, fmt.Errorf("unknown hash algorithm %q", algorithm)
	}
}

func emailSalt(email string) []byte {
	sum := sha256.Sum256([]byte(normalizeEmail(email)))
	return sum[:16]
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
