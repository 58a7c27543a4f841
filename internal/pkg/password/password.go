package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("password hashing failed")
	ErrMismatch      = errors.New("password does not match")
	ErrEmpty         = errors.New("password is empty")
)

// Hasher wraps bcrypt at a fixed cost. Tests use bcrypt.MinCost to stay fast.
type Hasher struct {
	cost      int
	dummyHash []byte
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("unused-placeholder"), cost)
	return &Hasher{cost: cost, dummyHash: dummy}
}

func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(hashed), nil
}

func (h *Hasher) Compare(hashed, plain string) error {
	if hashed == "" || plain == "" {
		return ErrMismatch
	}
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return err
}

// CompareDummy spends the same time as a real comparison so unknown emails
// cannot be told apart from wrong passwords by latency.
func (h *Hasher) CompareDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.dummyHash, []byte(plain))
}
