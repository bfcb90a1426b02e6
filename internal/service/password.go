package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher abstrae el algoritmo de hashing de contraseñas.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

// hashCost fixed at 10 so existing digests keep verifying if the default moves.
const hashCost = 10

type bcryptHasher struct{}

// NewBcryptHasher crea el hasher bcrypt usado en producción.
func NewBcryptHasher() PasswordHasher {
	return bcryptHasher{}
}

func (bcryptHasher) Hash(password string) (string, error) {
	hashBytes, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hashBytes), nil
}

// Verify falla cerrado: un digest malformado cuenta como no-match.
func (bcryptHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
