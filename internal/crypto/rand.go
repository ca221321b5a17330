package crypto

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

func RandomBytes(size int) ([]byte, error) {
	data := make([]byte, size)

	if _, err := rand.Read(data); err != nil {
		return nil, errors.WithStack(err)
	}

	return data, nil
}

// GenerateSecureToken returns 256 random bits, encoded as unpadded url safe
// base64.
func GenerateSecureToken() (string, error) {
	data, err := RandomBytes(32)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}
