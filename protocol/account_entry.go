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
	"gitlab.com/sorobanclient/soroban-go/pkg/types/address"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/encoding"
)

// Ledger entry type tags.
const (
	ledgerEntryTypeAccount      = 0
	ledgerEntryTypeContractData = 1
)

// AccountLedgerKey returns the base64 ledger key for the given account
// address, suitable for a getLedgerEntries request.
func AccountLedgerKey(addr string) (string, error) {
	if !address.IsValidAccountID(addr) {
		return "", errors.InvalidAddress.WithFormat("%q is not a valid account address", addr)
	}

	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	w.WriteUint(ledgerEntryTypeAccount)
	w.WriteString(addr)
	if _, err := w.Done(); err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// AccountEntry is the ledger's record of an account: its address, the
// sequence number of the last transaction it sourced, and its balance in
// stroops.
type AccountEntry struct {
	Address        string `json:"address"`
	SequenceNumber int64  `json:"sequenceNumber"`
	Balance        int64  `json:"balance"`
}

// MarshalBase64 encodes the entry in its base64 wire form.
func (e *AccountEntry) MarshalBase64() (string, error) {
	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	w.WriteUint(ledgerEntryTypeAccount)
	w.WriteString(e.Address)
	w.WriteInt64(e.SequenceNumber)
	w.WriteInt64(e.Balance)
	if _, err := w.Done(); err != nil {
		return "", errors.UnknownError.Wrap(err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeAccountEntry decodes an account entry from its base64 wire form.
func DecodeAccountEntry(s string) (*AccountEntry, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("invalid base64: %w", err)
	}

	r := encoding.NewReader(bytes.NewReader(b))
	if typ := r.ReadUint(); typ != ledgerEntryTypeAccount {
		if _, err := r.Done(); err != nil {
			return nil, errors.UnknownError.Wrap(err)
		}
		return nil, errors.EncodingError.WithFormat("not an account entry: type %d", typ)
	}

	e := new(AccountEntry)
	e.Address = r.ReadString()
	e.SequenceNumber = r.ReadInt64()
	e.Balance = r.ReadInt64()
	if _, err := r.Done(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return e, nil
}
