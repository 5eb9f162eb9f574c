// Package tokens génère les secrets porteurs des liens de partage et d'admin.
// Capability tokens, pas des sessions: celui qui a le lien a l'accès.
package tokens

import (
	"crypto/rand"
	"math/big"
)

const (
	// Alphabet lisible sans caractères ambigus (pas de 0/1/i/l/o)
	shareAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"
	shareLength   = 10

	adminAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	adminLength   = 32
)

// NewShareToken retourne un token court destiné à être partagé (lecture)
func NewShareToken() (string, error) {
	return randomString(shareAlphabet, shareLength)
}

// NewAdminToken retourne un token long difficile à deviner (mutations admin)
func NewAdminToken() (string, error) {
	return randomString(adminAlphabet, adminLength)
}

func randomString(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
