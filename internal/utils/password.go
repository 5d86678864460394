package utils

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns the bcrypt hash of plain for OPERATOR_PASSWORD_HASH.
// cost must lie within bcrypt.MinCost and bcrypt.MaxCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", errors.Newf("bcrypt cost %d outside %d..%d", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the operator hash. An empty
// or malformed hash never matches.
func VerifyPassword(hash, plain string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
