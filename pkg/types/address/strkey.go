// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package address implements the strkey text encoding for ledger addresses
// and signing seeds: a version byte and a 32-byte payload, protected by a
// CRC16-XModem checksum and rendered as unpadded base32.
package address

import (
	"encoding/base32"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
)

// VersionByte selects the kind of strkey.
type VersionByte byte

const (
	// VersionAccountID is the version byte for account addresses ('G...').
	VersionAccountID VersionByte = 6 << 3

	// VersionSeed is the version byte for signing seeds ('S...').
	VersionSeed VersionByte = 18 << 3
)

// payloadLen is the length of every strkey payload.
const payloadLen = 32

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Encode renders a 32-byte payload as a strkey with the given version byte.
func Encode(version VersionByte, payload []byte) (string, error) {
	if len(payload) != payloadLen {
		return "", errors.InvalidAddress.WithFormat("invalid payload length: want %d, got %d", payloadLen, len(payload))
	}

	raw := make([]byte, 0, 1+payloadLen+2)
	raw = append(raw, byte(version))
	raw = append(raw, payload...)
	crc := checksum(raw)
	raw = append(raw, byte(crc), byte(crc>>8))
	return b32.EncodeToString(raw), nil
}

// Decode parses a strkey, verifying the version byte and checksum, and
// returns the payload.
func Decode(version VersionByte, key string) ([]byte, error) {
	raw, err := b32.DecodeString(key)
	if err != nil {
		return nil, errors.InvalidAddress.WithFormat("invalid address %q: %w", key, err)
	}
	if len(raw) != 1+payloadLen+2 {
		return nil, errors.InvalidAddress.WithFormat("invalid address %q: wrong length", key)
	}
	if VersionByte(raw[0]) != version {
		return nil, errors.InvalidAddress.WithFormat("invalid address %q: wrong version byte", key)
	}

	data, check := raw[:1+payloadLen], raw[1+payloadLen:]
	crc := checksum(data)
	if check[0] != byte(crc) || check[1] != byte(crc>>8) {
		return nil, errors.InvalidAddress.WithFormat("invalid address %q: checksum mismatch", key)
	}
	return data[1:], nil
}

// EncodeAccountID renders an ed25519 public key as a 'G...' account address.
func EncodeAccountID(publicKey []byte) (string, error) {
	return Encode(VersionAccountID, publicKey)
}

// DecodeAccountID parses a 'G...' account address into the raw public key.
func DecodeAccountID(address string) ([]byte, error) {
	return Decode(VersionAccountID, address)
}

// IsValidAccountID returns true if the address is a well-formed account
// strkey.
func IsValidAccountID(address string) bool {
	_, err := DecodeAccountID(address)
	return err == nil
}

// EncodeSeed renders an ed25519 private seed as an 'S...' seed string.
func EncodeSeed(seed []byte) (string, error) {
	return Encode(VersionSeed, seed)
}

// DecodeSeed parses an 'S...' seed string into the raw private seed.
func DecodeSeed(seed string) ([]byte, error) {
	return Decode(VersionSeed, seed)
}

// checksum computes CRC16-XModem over the given bytes.
func checksum(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
