// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import "crypto/sha256"

// Network passphrases identify the target ledger instance. The passphrase
// salts every transaction hash, so a transaction signed for one network is
// invalid on every other.
const (
	PublicNetworkPassphrase     = "Public Global Stellar Network ; September 2015"
	TestNetworkPassphrase       = "Test SDF Network ; September 2015"
	FutureNetworkPassphrase     = "Test SDF Future Network ; October 2022"
	StandaloneNetworkPassphrase = "Standalone Network ; February 2017"
)

const (
	// MinBaseFee is the minimum per-operation base fee accepted by the
	// network, in stroops.
	MinBaseFee = 100

	// MaxOperationsPerTransaction is the network's per-transaction operation
	// limit.
	MaxOperationsPerTransaction = 100

	// DefaultTimeoutSeconds is the default transaction validity window
	// applied when the caller sets neither a timeout nor absolute time
	// bounds.
	DefaultTimeoutSeconds = 300
)

// NetworkID returns the hash salt for the given network passphrase.
func NetworkID(passphrase string) [32]byte {
	return sha256.Sum256([]byte(passphrase))
}
