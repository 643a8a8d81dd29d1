// Package cryptox implements salted one-way password hashing for account
// credentials. Plaintext passwords are never stored.
package cryptox

import (
	"crypto/subtle"

	"github.com/dmitrijs2005/postguard/internal/common"
	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// Params are the argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// DefaultParams follows the OWASP argon2id baseline (19 MiB, 2 passes).
var DefaultParams = Params{Time: 2, Memory: 19 * 1024, Threads: 1, KeyLen: 32}

// Credential is the stored form of a password.
type Credential struct {
	Salt []byte
	Hash []byte
}

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
}

// HashPassword hashes password under a fresh random salt.
func HashPassword(password []byte) Credential {
	salt := common.GenerateRandByteArray(saltSize)
	return Credential{Salt: salt, Hash: DeriveKey(password, salt, DefaultParams)}
}

// VerifyPassword reports whether password matches the stored credential.
// The comparison is constant-time.
func VerifyPassword(password []byte, c Credential) bool {
	if len(c.Hash) == 0 {
		return false
	}
	p := DefaultParams
	p.KeyLen = uint32(len(c.Hash))
	candidate := DeriveKey(password, c.Salt, p)
	defer common.WipeByteArray(candidate)
	return subtle.ConstantTimeCompare(c.Hash, candidate) == 1
}
