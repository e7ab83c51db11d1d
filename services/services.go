// Package services holds the identity, team and project components. Each one
// checks the caller against the access policy before touching storage.
package services

import (
	"codecrew/token"
	"codecrew/uploads"
)

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Generate(userID uint) (string, error)
	Validate(token string) (*token.Claims, error)
}

// FileSaver persists a validated upload and returns its stored name.
type FileSaver interface {
	Save(f *uploads.File) (string, error)
}
