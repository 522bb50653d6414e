// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
)

// Default polling intervals for WaitForTransaction.
const (
	DefaultWaitInitialInterval = 500 * time.Millisecond
	DefaultWaitMaxInterval     = 3500 * time.Millisecond
)

// WaitOptions configures WaitForTransactionWithOptions.
type WaitOptions struct {
	// InitialInterval is the delay before the first re-poll. Zero means
	// DefaultWaitInitialInterval.
	InitialInterval time.Duration

	// MaxInterval caps the backoff between polls. Zero means
	// DefaultWaitMaxInterval.
	MaxInterval time.Duration
}

// WaitForTransaction polls GetTransaction with exponential backoff until the
// transaction reaches a terminal status or the context ends. It is an opt-in
// convenience over the caller's own polling loop; the core protocol methods
// never poll on their own.
//
// The last response is returned even when the status is FAILED; both SUCCESS
// and FAILED are terminal states that return without error.
func (c *Client) WaitForTransaction(ctx context.Context, hash string) (*GetTransactionResponse, error) {
	return c.WaitForTransactionWithOptions(ctx, hash, WaitOptions{})
}

// WaitForTransactionWithOptions is WaitForTransaction with explicit polling
// intervals.
func (c *Client) WaitForTransactionWithOptions(ctx context.Context, hash string, opts WaitOptions) (*GetTransactionResponse, error) {
	if opts.InitialInterval == 0 {
		opts.InitialInterval = DefaultWaitInitialInterval
	}
	if opts.MaxInterval == 0 {
		opts.MaxInterval = DefaultWaitMaxInterval
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = opts.InitialInterval
	b.MaxInterval = opts.MaxInterval
	b.MaxElapsedTime = 0 // the context bounds the overall wait

	var result *GetTransactionResponse
	err := backoff.Retry(func() error {
		var err error
		result, err = c.GetTransaction(ctx, hash)
		if err != nil {
			return backoff.Permanent(err)
		}
		if !result.Status.Terminal() {
			return errors.SubmissionUnknown.WithFormat("transaction %s not yet finalized: %s", hash, result.Status)
		}
		return nil
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}
	return result, nil
}
