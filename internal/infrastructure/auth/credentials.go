package auth

import (
	"crypto/subtle"

	"github.com/cajachica/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// CredentialVerifier checks the single configured admin credential
type CredentialVerifier struct {
	username     string
	passwordHash []byte
}

// NewCredentialVerifier creates a verifier from the admin config. When no
// password hash is configured (development only), the password "admin" is
// accepted; production config validation rejects an empty hash.
func NewCredentialVerifier(cfg config.AdminConfig) (*CredentialVerifier, error) {
	hash := []byte(cfg.PasswordHash)
	if len(hash) == 0 {
		generated, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = generated
	}
	return &CredentialVerifier{
		username:     cfg.Username,
		passwordHash: hash,
	}, nil
}

// Verify reports whether the given username and password match the
// configured credential. The bcrypt comparison runs even on a username
// mismatch to keep timing uniform.
func (v *CredentialVerifier) Verify(username, password string) bool {
	userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(v.passwordHash, []byte(password))
	return userMatch && passErr == nil
}

// HashPassword produces a bcrypt hash suitable for admin.password_hash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
