// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package rpc implements the JSON-RPC client for a Soroban RPC server:
// account lookup, transaction simulation and preparation, submission, and
// status queries.
package rpc

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/AccumulateNetwork/jsonrpc2/v15"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"gitlab.com/sorobanclient/soroban-go/pkg/build"
	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/protocol"
)

// DefaultTimeout is the HTTP timeout applied when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Options configures a Client. All configuration is supplied at
// construction; the client never reads the environment.
type Options struct {
	// Timeout bounds each HTTP request. Zero means DefaultTimeout.
	Timeout time.Duration

	// Headers are added to every request.
	Headers map[string]string

	// AllowHTTP permits connecting to a non-HTTPS endpoint.
	AllowHTTP bool

	// Logger receives per-request debug logs. Nil disables logging.
	Logger *zerolog.Logger

	// Registerer receives the client's request metrics. Nil disables
	// metrics.
	Registerer Registerer
}

// Client is a JSON-RPC client for a Soroban RPC server. It is safe for
// concurrent use. Network calls suspend on the context and perform no
// internal retries; retry and polling policy belongs to the caller.
type Client struct {
	server    string
	jc        jsonrpc2.Client
	log       zerolog.Logger
	telemetry *telemetry

	flight     singleflight.Group
	mu         sync.Mutex
	passphrase string
}

// New creates a client for the given RPC endpoint. It fails with BadRequest
// if the endpoint is not a valid URL, or if it is not HTTPS and AllowHTTP is
// unset.
func New(server string, opts Options) (*Client, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("invalid server URL %q: %w", server, err)
	}
	switch u.Scheme {
	case "https":
		// ok
	case "http":
		if !opts.AllowHTTP {
			return nil, errors.BadRequest.With("refusing insecure endpoint without AllowHTTP")
		}
	default:
		return nil, errors.BadRequest.WithFormat("invalid server URL %q: scheme must be http or https", server)
	}

	c := new(Client)
	c.server = server
	c.jc.Timeout = opts.Timeout
	if c.jc.Timeout == 0 {
		c.jc.Timeout = DefaultTimeout
	}
	if len(opts.Headers) > 0 {
		c.jc.Transport = &headerRoundTripper{
			headers: opts.Headers,
			next:    http.DefaultTransport,
		}
	}
	if opts.Logger != nil {
		c.log = opts.Logger.With().Str("module", "rpc").Logger()
	} else {
		c.log = zerolog.Nop()
	}
	c.telemetry = newTelemetry(opts.Registerer)
	return c, nil
}

// headerRoundTripper adds fixed headers to every request.
type headerRoundTripper struct {
	headers map[string]string
	next    http.RoundTripper
}

func (t *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.next.RoundTrip(req)
}

// call sends a JSON-RPC request. Server-reported errors map to RPCError;
// anything else, connectivity included, maps to TransportError and is safe
// for the caller to retry.
func (c *Client) call(ctx context.Context, method string, params, result interface{}) error {
	start := time.Now()
	err := c.jc.Request(ctx, c.server, method, params, result)
	elapsed := time.Since(start)
	c.telemetry.observe(method, elapsed, err)
	c.log.Debug().
		Str("method", method).
		Dur("elapsed", elapsed).
		Err(err).
		Msg("rpc request")

	if err == nil {
		return nil
	}
	var jerr jsonrpc2.Error
	if errors.As(err, &jerr) {
		return errors.RPCError.WithFormat("%s: %v: %s", method, jerr.Code, jerr.Message)
	}
	return errors.TransportError.WithFormat("%s: %w", method, err)
}

// GetHealth checks the health of the RPC server.
func (c *Client) GetHealth(ctx context.Context) (*GetHealthResponse, error) {
	resp := new(GetHealthResponse)
	if err := c.call(ctx, getHealthMethod, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetNetwork returns the network the server is connected to.
func (c *Client) GetNetwork(ctx context.Context) (*GetNetworkResponse, error) {
	resp := new(GetNetworkResponse)
	if err := c.call(ctx, getNetworkMethod, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// NetworkPassphrase returns the server's network passphrase, fetching it at
// most once. Concurrent callers share a single getNetwork request.
func (c *Client) NetworkPassphrase(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.passphrase
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	v, err, _ := c.flight.Do(getNetworkMethod, func() (interface{}, error) {
		resp, err := c.GetNetwork(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.passphrase = resp.Passphrase
		c.mu.Unlock()
		return resp.Passphrase, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// GetLatestLedger describes the most recently closed ledger.
func (c *Client) GetLatestLedger(ctx context.Context) (*GetLatestLedgerResponse, error) {
	resp := new(GetLatestLedgerResponse)
	if err := c.call(ctx, getLatestLedgerMethod, nil, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLedgerEntries fetches ledger entries by their base64 keys.
func (c *Client) GetLedgerEntries(ctx context.Context, req GetLedgerEntriesRequest) (*GetLedgerEntriesResponse, error) {
	resp := new(GetLedgerEntriesResponse)
	if err := c.call(ctx, getLedgerEntriesMethod, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetAccount fetches the ledger-confirmed state of an address and seeds an
// account from it. It fails with NotFound if the address has no ledger
// entry. The returned account is the seed for new transaction builders.
func (c *Client) GetAccount(ctx context.Context, addr string) (*build.Account, error) {
	key, err := protocol.AccountLedgerKey(addr)
	if err != nil {
		return nil, err
	}

	resp, err := c.GetLedgerEntries(ctx, GetLedgerEntriesRequest{Keys: []string{key}})
	if err != nil {
		return nil, err
	}
	if len(resp.Entries) == 0 {
		return nil, errors.NotFound.WithFormat("account %s not found", addr)
	}

	entry, err := protocol.DecodeAccountEntry(resp.Entries[0].XDR)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("decode account entry: %w", err)
	}
	return build.NewAccount(addr, entry.SequenceNumber)
}

// GetContractData fetches a single contract data entry by contract, key, and
// durability. It fails with NotFound if no such entry exists on the ledger.
func (c *Client) GetContractData(ctx context.Context, contract string, key []byte, durability protocol.Durability) (*LedgerEntryResult, error) {
	ledgerKey, err := protocol.ContractDataLedgerKey(contract, key, durability)
	if err != nil {
		return nil, err
	}

	resp, err := c.GetLedgerEntries(ctx, GetLedgerEntriesRequest{Keys: []string{ledgerKey}})
	if err != nil {
		return nil, err
	}
	if len(resp.Entries) == 0 {
		return nil, errors.NotFound.WithFormat("contract data not found: contract %s, %s", contract, durability)
	}
	return &resp.Entries[0], nil
}

// SimulateTransaction sends the transaction to the server for a dry run and
// returns the raw simulation result. The transaction state is unchanged; a
// TransportError is safe to retry.
func (c *Client) SimulateTransaction(ctx context.Context, tx *protocol.Transaction) (*SimulateTransactionResponse, error) {
	env, err := tx.EnvelopeBase64()
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}

	resp := new(SimulateTransactionResponse)
	if err := c.call(ctx, simulateTransactionMethod, SimulateTransactionRequest{Transaction: env}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// PrepareTransaction simulates the transaction and assembles the result into
// a submission-ready copy carrying the computed footprint and effective fee.
// The input transaction is not modified. A SimulationFailed error carries the
// server's diagnostic; retrying an unchanged transaction will fail
// identically.
func (c *Client) PrepareTransaction(ctx context.Context, tx *protocol.Transaction) (*protocol.Transaction, error) {
	sim, err := c.SimulateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	return AssembleTransaction(tx, sim)
}

// SendTransaction submits a signed transaction. It fails locally, without
// issuing a request, with NotSigned if the signature list is empty or
// MissingFootprint if a Soroban transaction carries no resource data. A
// PENDING status acknowledges acceptance only; inclusion must be confirmed
// via GetTransaction. Cancelling the context after the server accepts the
// submission does not undo it.
func (c *Client) SendTransaction(ctx context.Context, tx *protocol.Transaction) (*SendTransactionResponse, error) {
	if len(tx.Signatures) == 0 {
		return nil, errors.NotSigned.With("transaction has no signatures")
	}
	if tx.IsSoroban() && tx.SorobanData == nil {
		return nil, errors.MissingFootprint.With("soroban transaction has no resource footprint; prepare it or supply one")
	}

	env, err := tx.EnvelopeBase64()
	if err != nil {
		return nil, errors.EncodingError.Wrap(err)
	}

	resp := new(SendTransactionResponse)
	if err := c.call(ctx, sendTransactionMethod, SendTransactionRequest{Transaction: env}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTransaction looks up a transaction's ledger-confirmed outcome by hash.
// NOT_FOUND covers transactions that are still pending as well as those the
// server never saw; the caller decides when to stop polling.
func (c *Client) GetTransaction(ctx context.Context, hash string) (*GetTransactionResponse, error) {
	resp := new(GetTransactionResponse)
	if err := c.call(ctx, getTransactionMethod, GetTransactionRequest{Hash: hash}, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetTransactionStatus returns just the status of a transaction.
func (c *Client) GetTransactionStatus(ctx context.Context, hash string) (TransactionStatus, error) {
	resp, err := c.GetTransaction(ctx, hash)
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}
