package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PlaintextMatcher stores secrets as given and compares them for exact
// equality. It is the default so that records written by earlier releases
// keep authenticating.
//
// Known weakness: anyone who can read the durable store can read every
// secret. Deployments that start from an empty store should use
// BcryptMatcher.
type PlaintextMatcher struct{}

func (PlaintextMatcher) Seal(secret string) (string, error) { return secret, nil }

func (PlaintextMatcher) Match(stored, given string) bool { return stored == given }

// BcryptMatcher stores bcrypt hashes of secrets.
type BcryptMatcher struct {
	Cost int
}

func (m BcryptMatcher) Seal(secret string) (string, error) {
	cost := m.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptMatcher) Match(stored, given string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
}
