// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package web

import "golang.org/x/crypto/bcrypt"

// tokenChecker holds the bcrypt hash of the single bearer token the
// diagnostics viewer accepts. There are no user accounts and no
// sessions — this is a debugging convenience, not a multi-user service.
type tokenChecker struct {
	hash []byte
}

func newTokenChecker(token string) (*tokenChecker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &tokenChecker{hash: hash}, nil
}

func (c *tokenChecker) check(candidate string) bool {
	return bcrypt.CompareHashAndPassword(c.hash, []byte(candidate)) == nil
}
