// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package build

import (
	"math"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/protocol"
)

// TransactionBuilder assembles operations into an unsigned transaction. The
// builder holds the exclusive build lease on its account from construction
// until Build or Discard, and a successful Build consumes exactly one
// sequence increment. A builder finalizes into exactly one transaction; after
// Build or Discard every call fails with Conflict.
//
// Setters record errors instead of returning them; Build reports the first
// recorded error and leaves the account's sequence untouched when any are
// present.
type TransactionBuilder struct {
	recorder
	account  *Account
	network  string
	baseFee  uint32
	memo     string
	ops      []*protocol.Operation
	bounds   *protocol.TimeBounds
	timedOut bool // SetTimeout was applied
	soroban  *protocol.SorobanData
	done     bool
}

// NewTransactionBuilder constructs a builder over the account for the given
// network. It takes the account's exclusive build lease; constructing a
// second builder over the same account fails with Conflict until the first
// calls Build or Discard. Callers sharing one Account across goroutines must
// serialize around the builder's whole lifetime.
func NewTransactionBuilder(account *Account, networkPassphrase string) (*TransactionBuilder, error) {
	if account == nil {
		return nil, errors.BadRequest.With("missing account")
	}
	if networkPassphrase == "" {
		return nil, errors.BadRequest.With("missing network passphrase")
	}
	if err := account.acquire(); err != nil {
		return nil, err
	}
	return &TransactionBuilder{
		account: account,
		network: networkPassphrase,
		baseFee: protocol.MinBaseFee,
	}, nil
}

// AddOperation appends an operation. Adding past the network's
// per-transaction limit records TooManyOperations and leaves the operation
// list unmodified.
func (b *TransactionBuilder) AddOperation(op *protocol.Operation) *TransactionBuilder {
	if b.done {
		b.errorf(errors.Conflict, "builder already consumed")
		return b
	}
	if op == nil {
		b.errorf(errors.BadRequest, "missing operation")
		return b
	}
	if len(b.ops) >= protocol.MaxOperationsPerTransaction {
		b.errorf(errors.TooManyOperations, "transaction cannot have more than %d operations", protocol.MaxOperationsPerTransaction)
		return b
	}
	b.ops = append(b.ops, op)
	return b
}

// SetBaseFee sets the per-operation base fee in stroops. Fees below the
// network minimum are recorded as errors.
func (b *TransactionBuilder) SetBaseFee(fee uint32) *TransactionBuilder {
	if fee < protocol.MinBaseFee {
		b.errorf(errors.BadRequest, "base fee %d is below the network minimum %d", fee, protocol.MinBaseFee)
		return b
	}
	b.baseFee = fee
	return b
}

// SetTimeout sets the transaction's validity window to now plus the given
// number of seconds. Mutually exclusive with SetTimebounds; calling both
// records InvalidTimebounds.
func (b *TransactionBuilder) SetTimeout(seconds uint64) *TransactionBuilder {
	if b.bounds != nil {
		b.errorf(errors.InvalidTimebounds, "cannot set a timeout after explicit time bounds")
		return b
	}
	b.bounds = protocol.TimeoutBounds(seconds)
	b.timedOut = true
	return b
}

// SetTimebounds sets absolute minimum and maximum valid ledger close times.
// Mutually exclusive with SetTimeout. A max of zero means no upper bound.
func (b *TransactionBuilder) SetTimebounds(min, max uint64) *TransactionBuilder {
	if b.timedOut {
		b.errorf(errors.InvalidTimebounds, "cannot set explicit time bounds after a timeout")
		return b
	}
	if max != 0 && min > max {
		b.errorf(errors.InvalidTimebounds, "minimum time %d exceeds maximum time %d", min, max)
		return b
	}
	b.bounds = &protocol.TimeBounds{MinTime: min, MaxTime: max}
	return b
}

// AddFootprint attaches a precomputed resource footprint, skipping
// server-side simulation later.
func (b *TransactionBuilder) AddFootprint(data *protocol.SorobanData) *TransactionBuilder {
	if data == nil {
		b.errorf(errors.BadRequest, "missing soroban data")
		return b
	}
	b.soroban = data
	return b
}

// SetMemo attaches a memo to the transaction.
func (b *TransactionBuilder) SetMemo(memo string) *TransactionBuilder {
	b.memo = memo
	return b
}

// Build validates the accumulated state and finalizes the unsigned
// transaction. On success the account's sequence is incremented exactly once
// and the transaction carries the incremented value. On failure the sequence
// is untouched. Build consumes the builder and releases the account lease
// either way.
func (b *TransactionBuilder) Build() (*protocol.Transaction, error) {
	if b.done {
		return nil, errors.Conflict.With("builder already consumed")
	}
	b.done = true

	if len(b.ops) == 0 {
		b.errorf(errors.EmptyTransaction, "transaction has no operations")
	}

	totalFee := uint64(b.baseFee) * uint64(len(b.ops))
	if totalFee > math.MaxUint32 {
		b.errorf(errors.BadRequest, "total fee %d exceeds the maximum representable fee", totalFee)
	}

	if !b.ok() {
		b.account.release(false)
		return nil, b.err()
	}

	bounds := b.bounds
	if bounds == nil {
		bounds = protocol.TimeoutBounds(protocol.DefaultTimeoutSeconds)
	}

	tx := &protocol.Transaction{
		SourceAccount:     b.account.Address(),
		Fee:               uint32(totalFee),
		Memo:              b.memo,
		TimeBounds:        bounds,
		Operations:        b.ops,
		SorobanData:       b.soroban,
		NetworkPassphrase: b.network,
	}
	tx.SequenceNumber = b.account.release(true)
	return tx, nil
}

// Discard releases the account lease without consuming a sequence number.
// The builder is consumed.
func (b *TransactionBuilder) Discard() {
	if b.done {
		return
	}
	b.done = true
	b.account.release(false)
}
