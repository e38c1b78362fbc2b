package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash with a fresh random salt, so two
// hashes of the same password never match byte for byte.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword reports whether plain matches the stored hash. A
// malformed stored hash is a verification failure, never a panic.
func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
