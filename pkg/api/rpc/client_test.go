// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/sorobanclient/soroban-go/pkg/build"
	"gitlab.com/sorobanclient/soroban-go/pkg/client/signing"
	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/protocol"
)

// stubServer is a minimal JSON-RPC 2.0 endpoint for exercising the client.
// Handlers are registered per method; unregistered methods answer with a
// method-not-found error.
type stubServer struct {
	t *testing.T

	mu      sync.Mutex
	calls   map[string]int
	methods map[string]stubHandler
}

type stubHandler func(params json.RawMessage) (interface{}, *stubError)

type stubError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *stubServer) handle(method string, h stubHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[method] = h
}

func (s *stubServer) count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *stubServer) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *stubServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params"`
	}
	if !assert.NoError(s.t, json.NewDecoder(r.Body).Decode(&req)) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.calls[req.Method]++
	h := s.methods[req.Method]
	s.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if h == nil {
		resp["error"] = &stubError{Code: -32601, Message: "method not found"}
	} else if result, herr := h(req.Params); herr != nil {
		resp["error"] = herr
	} else {
		resp["result"] = result
	}

	w.Header().Set("Content-Type", "application/json")
	assert.NoError(s.t, json.NewEncoder(w).Encode(resp))
}

func newStubClient(t *testing.T, opts Options) (*stubServer, *Client) {
	t.Helper()
	stub := &stubServer{
		t:       t,
		calls:   map[string]int{},
		methods: map[string]stubHandler{},
	}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	opts.AllowHTTP = true
	c, err := New(srv.URL, opts)
	require.NoError(t, err)
	return stub, c
}

// signedTransaction builds and signs a transaction over a fresh account.
func signedTransaction(t *testing.T, ops ...*protocol.Operation) *protocol.Transaction {
	t.Helper()
	kp, err := signing.Random()
	require.NoError(t, err)
	acct, err := build.NewAccount(kp.Address(), 41)
	require.NoError(t, err)

	b, err := build.NewTransactionBuilder(acct, protocol.TestNetworkPassphrase)
	require.NoError(t, err)
	for _, op := range ops {
		b.AddOperation(op)
	}
	tx, err := b.Build()
	require.NoError(t, err)
	require.NoError(t, tx.Sign(kp))
	return tx
}

func invokeOp() *protocol.Operation {
	return &protocol.Operation{Type: protocol.OperationTypeInvokeHostFunction, Body: []byte("invoke")}
}

func TestNewValidatesEndpoint(t *testing.T) {
	t.Run("https ok", func(t *testing.T) {
		_, err := New("https://soroban.example.com", Options{})
		require.NoError(t, err)
	})

	t.Run("http rejected by default", func(t *testing.T) {
		_, err := New("http://soroban.example.com", Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.BadRequest))
	})

	t.Run("http allowed when opted in", func(t *testing.T) {
		_, err := New("http://soroban.example.com", Options{AllowHTTP: true})
		require.NoError(t, err)
	})

	t.Run("bad scheme", func(t *testing.T) {
		_, err := New("ftp://soroban.example.com", Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.BadRequest))
	})
}

func TestGetHealth(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getHealthMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &GetHealthResponse{Status: "healthy", LatestLedger: 500}, nil
	})

	resp, err := c.GetHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, uint32(500), resp.LatestLedger)
}

func TestNetworkPassphraseIsCached(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getNetworkMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &GetNetworkResponse{Passphrase: protocol.TestNetworkPassphrase}, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		got, err := c.NetworkPassphrase(ctx)
		require.NoError(t, err)
		assert.Equal(t, protocol.TestNetworkPassphrase, got)
	}
	assert.Equal(t, 1, stub.count(getNetworkMethod))
}

func TestGetAccount(t *testing.T) {
	kp, err := signing.Random()
	require.NoError(t, err)
	addr := kp.Address()

	entry := &protocol.AccountEntry{Address: addr, SequenceNumber: 1234, Balance: 10_000_000}
	entryB64, err := entry.MarshalBase64()
	require.NoError(t, err)
	wantKey, err := protocol.AccountLedgerKey(addr)
	require.NoError(t, err)

	stub, c := newStubClient(t, Options{})
	stub.handle(getLedgerEntriesMethod, func(params json.RawMessage) (interface{}, *stubError) {
		var req GetLedgerEntriesRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, &stubError{Code: -32602, Message: err.Error()}
		}
		assert.Equal(t, []string{wantKey}, req.Keys)
		return &GetLedgerEntriesResponse{
			Entries:      []LedgerEntryResult{{Key: wantKey, XDR: entryB64, LastModifiedLedger: 99}},
			LatestLedger: 100,
		}, nil
	})

	acct, err := c.GetAccount(context.Background(), addr)
	require.NoError(t, err)
	assert.Equal(t, addr, acct.Address())
	assert.Equal(t, int64(1234), acct.Sequence())
}

func TestGetAccountNotFound(t *testing.T) {
	kp, err := signing.Random()
	require.NoError(t, err)

	stub, c := newStubClient(t, Options{})
	stub.handle(getLedgerEntriesMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &GetLedgerEntriesResponse{LatestLedger: 100}, nil
	})

	_, err = c.GetAccount(context.Background(), kp.Address())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestGetAccountRejectsBadAddressLocally(t *testing.T) {
	stub, c := newStubClient(t, Options{})

	_, err := c.GetAccount(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.InvalidAddress))
	assert.Zero(t, stub.total(), "an invalid address must not reach the server")
}

func TestGetContractData(t *testing.T) {
	const contract = "CCJZ5DGASBWQXR5MPFCJXMBI333XE5U3FSJTNQU7RIKE3P5GN2K2WYYA"
	key := []byte("counter")

	wantKey, err := protocol.ContractDataLedgerKey(contract, key, protocol.DurabilityPersistent)
	require.NoError(t, err)

	stub, c := newStubClient(t, Options{})
	stub.handle(getLedgerEntriesMethod, func(params json.RawMessage) (interface{}, *stubError) {
		var req GetLedgerEntriesRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, &stubError{Code: -32602, Message: err.Error()}
		}
		assert.Equal(t, []string{wantKey}, req.Keys)
		return &GetLedgerEntriesResponse{
			Entries:      []LedgerEntryResult{{Key: wantKey, XDR: "AAAABAAAAAE=", LastModifiedLedger: 99}},
			LatestLedger: 100,
		}, nil
	})

	entry, err := c.GetContractData(context.Background(), contract, key, protocol.DurabilityPersistent)
	require.NoError(t, err)
	assert.Equal(t, wantKey, entry.Key)
	assert.Equal(t, "AAAABAAAAAE=", entry.XDR)
	assert.Equal(t, uint32(99), entry.LastModifiedLedger)
}

func TestGetContractDataNotFound(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getLedgerEntriesMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &GetLedgerEntriesResponse{LatestLedger: 100}, nil
	})

	_, err := c.GetContractData(context.Background(), "some-contract", []byte("counter"), protocol.DurabilityTemporary)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.NotFound))
}

func TestGetContractDataRejectsBadArgumentsLocally(t *testing.T) {
	stub, c := newStubClient(t, Options{})

	_, err := c.GetContractData(context.Background(), "", []byte("counter"), protocol.DurabilityPersistent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.BadRequest))

	_, err = c.GetContractData(context.Background(), "some-contract", nil, protocol.DurabilityPersistent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.BadRequest))

	_, err = c.GetContractData(context.Background(), "some-contract", []byte("counter"), protocol.Durability(7))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.BadRequest))

	assert.Zero(t, stub.total(), "invalid arguments must not reach the server")
}

func TestPrepareTransaction(t *testing.T) {
	simData := &protocol.SorobanData{
		Resources: protocol.SorobanResources{
			Footprint:    protocol.LedgerFootprint{ReadOnly: []string{"ro-key"}},
			Instructions: 5000,
		},
		ResourceFee: 150,
	}
	simDataB64, err := simData.Base64()
	require.NoError(t, err)

	stub, c := newStubClient(t, Options{})
	stub.handle(simulateTransactionMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &SimulateTransactionResponse{
			TransactionData: simDataB64,
			MinResourceFee:  "150",
			LatestLedger:    100,
		}, nil
	})

	tx := signedTransaction(t, invokeOp())
	classicFee := tx.Fee

	prepared, err := c.PrepareTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, classicFee+150, prepared.Fee)
	assert.Equal(t, simData, prepared.SorobanData)
	assert.Empty(t, prepared.Signatures, "assembly must drop stale signatures")

	// The input transaction is not modified
	assert.Equal(t, classicFee, tx.Fee)
	assert.Nil(t, tx.SorobanData)
	assert.Len(t, tx.Signatures, 1)
}

func TestPrepareTransactionSimulationFailure(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(simulateTransactionMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &SimulateTransactionResponse{Error: "host function trapped", LatestLedger: 100}, nil
	})

	_, err := c.PrepareTransaction(context.Background(), signedTransaction(t, invokeOp()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.SimulationFailed))
	assert.Contains(t, err.Error(), "host function trapped")
}

func TestPrepareTransactionRestorationRequired(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(simulateTransactionMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &SimulateTransactionResponse{
			RestorePreamble: &RestorePreamble{MinResourceFee: "100", TransactionData: "AAAA"},
			LatestLedger:    100,
		}, nil
	})

	_, err := c.PrepareTransaction(context.Background(), signedTransaction(t, invokeOp()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.RestorationRequired))
}

func TestSendTransaction(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(sendTransactionMethod, func(params json.RawMessage) (interface{}, *stubError) {
		var req SendTransactionRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, &stubError{Code: -32602, Message: err.Error()}
		}
		assert.NotEmpty(t, req.Transaction)
		return &SendTransactionResponse{Status: SendStatusPending, Hash: "abc123", LatestLedger: 100}, nil
	})

	tx := signedTransaction(t, &protocol.Operation{Type: protocol.OperationTypePayment, Body: []byte("payment")})
	resp, err := c.SendTransaction(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, SendStatusPending, resp.Status)
	assert.Equal(t, "abc123", resp.Hash)
}

func TestSendTransactionRejectsUnsignedLocally(t *testing.T) {
	stub, c := newStubClient(t, Options{})

	tx := signedTransaction(t, &protocol.Operation{Type: protocol.OperationTypePayment})
	tx.Signatures = nil

	_, err := c.SendTransaction(context.Background(), tx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.NotSigned))
	assert.Zero(t, stub.total(), "an unsigned transaction must not reach the server")
}

func TestSendTransactionRejectsMissingFootprintLocally(t *testing.T) {
	stub, c := newStubClient(t, Options{})

	tx := signedTransaction(t, invokeOp())
	require.Nil(t, tx.SorobanData)

	_, err := c.SendTransaction(context.Background(), tx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.MissingFootprint))
	assert.Zero(t, stub.total(), "a soroban transaction without a footprint must not reach the server")
}

func TestGetTransactionStatus(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getTransactionMethod, func(params json.RawMessage) (interface{}, *stubError) {
		var req GetTransactionRequest
		if err := json.Unmarshal(params, &req); err != nil {
			return nil, &stubError{Code: -32602, Message: err.Error()}
		}
		assert.Equal(t, "abc123", req.Hash)
		return &GetTransactionResponse{Status: TransactionStatusSuccess, Ledger: 101, LatestLedger: 105}, nil
	})

	status, err := c.GetTransactionStatus(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusSuccess, status)
}

func TestRPCErrorMapping(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getHealthMethod, func(json.RawMessage) (interface{}, *stubError) {
		return nil, &stubError{Code: -32000, Message: "ledger backend unavailable"}
	})

	_, err := c.GetHealth(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.RPCError))
	assert.Contains(t, err.Error(), "ledger backend unavailable")
}

func TestTransportErrorMapping(t *testing.T) {
	srv := httptest.NewServer(nil)
	url := srv.URL
	srv.Close()

	c, err := New(url, Options{AllowHTTP: true, Timeout: time.Second})
	require.NoError(t, err)

	_, err = c.GetHealth(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.TransportError))
}

func TestHeadersAppliedToEveryRequest(t *testing.T) {
	stub := &stubServer{t: t, calls: map[string]int{}, methods: map[string]stubHandler{}}
	var mu sync.Mutex
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		gotAuth = r.Header.Get("Authorization")
		mu.Unlock()
		stub.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	stub.handle(getHealthMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &GetHealthResponse{Status: "healthy"}, nil
	})

	c, err := New(srv.URL, Options{
		AllowHTTP: true,
		Headers:   map[string]string{"Authorization": "Bearer token"},
	})
	require.NoError(t, err)

	_, err = c.GetHealth(context.Background())
	require.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "Bearer token", gotAuth)
}

func TestWaitForTransaction(t *testing.T) {
	stub, c := newStubClient(t, Options{})

	var mu sync.Mutex
	var polls int
	stub.handle(getTransactionMethod, func(json.RawMessage) (interface{}, *stubError) {
		mu.Lock()
		polls++
		n := polls
		mu.Unlock()
		if n < 3 {
			return &GetTransactionResponse{Status: TransactionStatusNotFound, LatestLedger: 100}, nil
		}
		return &GetTransactionResponse{Status: TransactionStatusSuccess, Ledger: 101, LatestLedger: 105}, nil
	})

	resp, err := c.WaitForTransactionWithOptions(context.Background(), "abc123", WaitOptions{
		InitialInterval: time.Millisecond,
		MaxInterval:     5 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusSuccess, resp.Status)
	assert.Equal(t, 3, stub.count(getTransactionMethod))
}

func TestWaitForTransactionReturnsFailedOutcome(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getTransactionMethod, func(json.RawMessage) (interface{}, *stubError) {
		return &GetTransactionResponse{Status: TransactionStatusFailed, Ledger: 101, LatestLedger: 105}, nil
	})

	resp, err := c.WaitForTransactionWithOptions(context.Background(), "abc123", WaitOptions{
		InitialInterval: time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusFailed, resp.Status)
}

func TestWaitForTransactionStopsOnRPCError(t *testing.T) {
	stub, c := newStubClient(t, Options{})
	stub.handle(getTransactionMethod, func(json.RawMessage) (interface{}, *stubError) {
		return nil, &stubError{Code: -32000, Message: "boom"}
	})

	_, err := c.WaitForTransactionWithOptions(context.Background(), "abc123", WaitOptions{
		InitialInterval: time.Millisecond,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.RPCError))
	assert.Equal(t, 1, stub.count(getTransactionMethod), "server errors must not be retried")
}
