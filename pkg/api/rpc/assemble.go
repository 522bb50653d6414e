// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"math"
	"strconv"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/protocol"
)

// AssembleTransaction merges a simulation result into a transaction,
// producing a submission-ready copy: the simulated resource footprint is
// attached and the minimum resource fee is added to the classic fee. The
// input transaction is not modified, and any signatures it carried are
// dropped since the assembled transaction hashes differently.
func AssembleTransaction(tx *protocol.Transaction, sim *SimulateTransactionResponse) (*protocol.Transaction, error) {
	if !tx.IsSoroban() {
		return nil, errors.BadRequest.With("unsupported transaction: must contain exactly one invokeHostFunction, extendFootprintTTL, or restoreFootprint operation")
	}

	if sim.Error != "" {
		return nil, errors.SimulationFailed.WithFormat("simulation failed: %s", sim.Error)
	}
	if sim.RestorePreamble != nil {
		return nil, errors.RestorationRequired.With("archived ledger entries must be restored before this transaction can succeed")
	}
	if sim.TransactionData == "" {
		return nil, errors.EncodingError.With("simulation response carries no transaction data")
	}

	data, err := protocol.SorobanDataFromBase64(sim.TransactionData)
	if err != nil {
		return nil, err
	}

	var minFee uint64
	if sim.MinResourceFee != "" {
		minFee, err = strconv.ParseUint(sim.MinResourceFee, 10, 32)
		if err != nil {
			return nil, errors.EncodingError.WithFormat("invalid minimum resource fee %q: %w", sim.MinResourceFee, err)
		}
	}
	totalFee := uint64(tx.Fee) + minFee
	if totalFee > math.MaxUint32 {
		return nil, errors.EncodingError.WithFormat("total fee %d exceeds the maximum representable fee", totalFee)
	}

	out := *tx
	out.Fee = uint32(totalFee)
	out.SorobanData = data
	out.Signatures = nil
	return &out, nil
}
