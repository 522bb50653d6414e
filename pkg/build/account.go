// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build

import (
	"sync"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/address"
)

// Account is the unit of authorization and ordering: an immutable address
// plus a strictly increasing sequence number. The sequence advances only when
// a transaction builder holding the account completes a successful Build, and
// it advances exactly once per build.
//
// An Account tracks the client's view of the sequence. The ledger remains the
// source of truth; after a mutation-invalidating event such as a rejected
// transaction, fetch a fresh Account from the server.
type Account struct {
	addr string

	mu       sync.Mutex
	sequence int64
	held     bool
}

// NewAccount creates an account with the given address and
// ledger-confirmed sequence number. It fails with InvalidAddress if the
// address is not a well-formed strkey.
func NewAccount(addr string, sequence int64) (*Account, error) {
	if !address.IsValidAccountID(addr) {
		return nil, errors.InvalidAddress.WithFormat("%q is not a valid account address", addr)
	}
	return &Account{addr: addr, sequence: sequence}, nil
}

// Address returns the account's network address.
func (a *Account) Address() string { return a.addr }

// Sequence returns the current sequence number without mutating it.
func (a *Account) Sequence() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sequence
}

// acquire takes the exclusive build lease. While held, no other builder can
// be constructed over this account.
func (a *Account) acquire() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.held {
		return errors.Conflict.WithFormat("account %s is already held by a builder", a.addr)
	}
	a.held = true
	return nil
}

// release returns the lease, incrementing the sequence if the build
// succeeded. Returns the new sequence value.
func (a *Account) release(consume bool) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.held = false
	if consume {
		a.sequence++
	}
	return a.sequence
}
