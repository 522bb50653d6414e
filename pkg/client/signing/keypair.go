// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package signing provides the signer capability used to sign transaction
// hashes. A KeyPair holds an ed25519 key and implements [protocol.Signer].
package signing

import (
	"crypto/ed25519"
	"crypto/rand"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/address"
)

// KeyPair is an ed25519 signing key. A KeyPair constructed from a public key
// alone can verify but not sign.
type KeyPair struct {
	public  ed25519.PublicKey
	private ed25519.PrivateKey
}

// Random generates a new key pair from the system entropy source.
func Random() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return &KeyPair{public: pub, private: priv}, nil
}

// FromSecretSeed constructs a key pair from an 'S...' strkey seed.
func FromSecretSeed(seed string) (*KeyPair, error) {
	raw, err := address.DecodeSeed(seed)
	if err != nil {
		return nil, err
	}
	priv := ed25519.NewKeyFromSeed(raw)
	return &KeyPair{
		public:  priv.Public().(ed25519.PublicKey),
		private: priv,
	}, nil
}

// FromPublicKey constructs a verify-only key pair from a 'G...' account
// address.
func FromPublicKey(addr string) (*KeyPair, error) {
	raw, err := address.DecodeAccountID(addr)
	if err != nil {
		return nil, err
	}
	return &KeyPair{public: ed25519.PublicKey(raw)}, nil
}

// Address returns the 'G...' account address for the public key.
func (kp *KeyPair) Address() string {
	addr, err := address.EncodeAccountID(kp.public)
	if err != nil {
		// The public key is always 32 bytes, so this cannot fail
		panic(err)
	}
	return addr
}

// Seed returns the 'S...' strkey seed, or an error if the key pair cannot
// sign.
func (kp *KeyPair) Seed() (string, error) {
	if kp.private == nil {
		return "", errors.SigningError.With("key pair has no private key")
	}
	return address.EncodeSeed(kp.private.Seed())
}

// PublicKey returns the raw public key.
func (kp *KeyPair) PublicKey() []byte {
	out := make([]byte, len(kp.public))
	copy(out, kp.public)
	return out
}

// Hint returns the last four bytes of the public key, used to identify which
// key produced a signature.
func (kp *KeyPair) Hint() [4]byte {
	var hint [4]byte
	copy(hint[:], kp.public[len(kp.public)-4:])
	return hint
}

// Sign signs the given hash. It fails with SigningError if the key pair was
// constructed from a public key alone.
func (kp *KeyPair) Sign(hash []byte) ([]byte, error) {
	if kp.private == nil {
		return nil, errors.SigningError.With("key pair has no private key")
	}
	return ed25519.Sign(kp.private, hash), nil
}

// Verify reports whether sig is a valid signature of hash by this key.
func (kp *KeyPair) Verify(hash, sig []byte) bool {
	return ed25519.Verify(kp.public, hash, sig)
}
