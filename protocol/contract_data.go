// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"encoding/base64"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/encoding"
)

// Durability selects the storage class of a contract data entry. Temporary
// entries expire and cannot be restored; persistent entries can be archived
// and restored.
type Durability uint32

const (
	DurabilityTemporary Durability = iota
	DurabilityPersistent
)

func (d Durability) String() string {
	switch d {
	case DurabilityTemporary:
		return "temporary"
	case DurabilityPersistent:
		return "persistent"
	}
	return "unknown"
}

// Valid returns true for a known durability value.
func (d Durability) Valid() bool {
	return d == DurabilityTemporary || d == DurabilityPersistent
}

// ContractDataLedgerKey returns the base64 ledger key for a contract data
// entry, suitable for a getLedgerEntries request. The contract identifies the
// owning contract and the key is the entry's canonical key encoding, carried
// through opaquely.
func ContractDataLedgerKey(contract string, key []byte, durability Durability) (string, error) {
	if contract == "" {
		return "", errors.BadRequest.With("missing contract")
	}
	if len(key) == 0 {
		return "", errors.BadRequest.With("missing contract data key")
	}
	if !durability.Valid() {
		return "", errors.BadRequest.WithFormat("invalid durability %d", durability)
	}

	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	w.WriteUint(ledgerEntryTypeContractData)
	w.WriteString(contract)
	w.WriteBytes(key)
	w.WriteUint(uint32(durability))
	if _, err := w.Done(); err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
