package password

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/matthewhartstonge/argon2"
	"golang.org/x/crypto/bcrypt"
)

var ErrUnknownHashFormat = errors.New("unknown password hash format")

// bcryptSHA256Prefix marks bcrypt hashes computed over a SHA-256 digest of the
// password. bcrypt only reads 72 bytes of input.
const bcryptSHA256Prefix = "$bcrypt-sha256$"

type Hasher interface {
	Hash(plain string) (string, error)
	Verify(encoded, plain string) (bool, error)
}

// MultiHasher hashes with one algorithm and verifies any supported encoding,
// so stored hashes keep working when the configured algorithm changes.
type MultiHasher struct {
	primary string
	bcrypt  BcryptHasher
	argon   Argon2Hasher
}

func New(algorithm string, bcryptCost int) *MultiHasher {
	return &MultiHasher{
		primary: strings.ToLower(strings.TrimSpace(algorithm)),
		bcrypt:  NewBcryptHasher(bcryptCost),
		argon:   NewArgon2Hasher(argon2.DefaultConfig()),
	}
}

func (h *MultiHasher) Hash(plain string) (string, error) {
	if h.primary == "argon2" {
		return h.argon.Hash(plain)
	}
	return h.bcrypt.Hash(plain)
}

func (h *MultiHasher) Verify(encoded, plain string) (bool, error) {
	switch {
	case strings.HasPrefix(encoded, bcryptSHA256Prefix):
		return h.bcrypt.Verify(encoded, plain)
	case strings.HasPrefix(encoded, "$argon2"):
		return h.argon.Verify(encoded, plain)
	case strings.HasPrefix(encoded, "$2a$"), strings.HasPrefix(encoded, "$2b$"), strings.HasPrefix(encoded, "$2y$"):
		return h.bcrypt.Verify(encoded, plain)
	default:
		return false, ErrUnknownHashFormat
	}
}

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{cost: cost}
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(prehash(plain), h.cost)
	if err != nil {
		return "", err
	}
	return bcryptSHA256Prefix + string(b), nil
}

// Verify accepts both prehashed and plain bcrypt encodings.
func (h BcryptHasher) Verify(encoded, plain string) (bool, error) {
	input := []byte(plain)
	if rest, ok := strings.CutPrefix(encoded, bcryptSHA256Prefix); ok {
		encoded, input = rest, prehash(plain)
	} else if len(input) > 72 {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(encoded), input)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}

func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

type Argon2Hasher struct {
	cfg argon2.Config
}

func NewArgon2Hasher(cfg argon2.Config) Argon2Hasher {
	return Argon2Hasher{cfg: cfg}
}

func (h Argon2Hasher) Hash(plain string) (string, error) {
	encoded, err := h.cfg.HashEncoded([]byte(plain))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h Argon2Hasher) Verify(encoded, plain string) (bool, error) {
	return argon2.VerifyEncoded([]byte(plain), []byte(encoded))
}
