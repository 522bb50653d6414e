// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

// JSON-RPC method names, as defined by the Soroban RPC protocol.
const (
	getHealthMethod           = "getHealth"
	getNetworkMethod          = "getNetwork"
	getLatestLedgerMethod     = "getLatestLedger"
	getLedgerEntriesMethod    = "getLedgerEntries"
	simulateTransactionMethod = "simulateTransaction"
	sendTransactionMethod     = "sendTransaction"
	getTransactionMethod      = "getTransaction"
)

// GetHealthResponse reports the server's health and ledger retention window.
type GetHealthResponse struct {
	Status                string `json:"status"`
	LatestLedger          uint32 `json:"latestLedger"`
	OldestLedger          uint32 `json:"oldestLedger"`
	LedgerRetentionWindow uint32 `json:"ledgerRetentionWindow"`
}

// GetNetworkResponse identifies the network the server is connected to.
type GetNetworkResponse struct {
	FriendbotURL    string `json:"friendbotUrl,omitempty"`
	Passphrase      string `json:"passphrase"`
	ProtocolVersion int    `json:"protocolVersion"`
}

// GetLatestLedgerResponse describes the most recently closed ledger.
type GetLatestLedgerResponse struct {
	ID              string `json:"id"`
	Sequence        uint32 `json:"sequence"`
	ProtocolVersion int    `json:"protocolVersion"`
}

// GetLedgerEntriesRequest requests ledger entries by their base64 keys.
type GetLedgerEntriesRequest struct {
	Keys []string `json:"keys"`
}

// LedgerEntryResult is a single ledger entry in its base64 wire form.
type LedgerEntryResult struct {
	Key                string `json:"key"`
	XDR                string `json:"xdr"`
	LastModifiedLedger uint32 `json:"lastModifiedLedgerSeq"`
}

// GetLedgerEntriesResponse lists the entries that exist. Keys with no ledger
// entry are absent from Entries.
type GetLedgerEntriesResponse struct {
	Entries      []LedgerEntryResult `json:"entries"`
	LatestLedger uint32              `json:"latestLedger"`
}

// SimulateTransactionRequest submits a transaction envelope for a dry run.
type SimulateTransactionRequest struct {
	Transaction string `json:"transaction"`
}

// SimulateHostFunctionResult carries the simulated return value and required
// authorizations of a host function invocation, in base64 wire form.
type SimulateHostFunctionResult struct {
	Auth []string `json:"auth,omitempty"`
	XDR  string   `json:"xdr,omitempty"`
}

// RestorePreamble describes the restoration that must precede the simulated
// transaction, when simulation finds archived entries in its footprint.
type RestorePreamble struct {
	MinResourceFee  string `json:"minResourceFee"`
	TransactionData string `json:"transactionData"`
}

// SimulateTransactionResponse is the result of a dry run. Error is set when
// the transaction would fail on-ledger; otherwise TransactionData carries the
// computed resource footprint and MinResourceFee the additional fee it
// requires.
type SimulateTransactionResponse struct {
	Error           string                       `json:"error,omitempty"`
	TransactionData string                       `json:"transactionData,omitempty"`
	MinResourceFee  string                       `json:"minResourceFee,omitempty"`
	Results         []SimulateHostFunctionResult `json:"results,omitempty"`
	Events          []string                     `json:"events,omitempty"`
	RestorePreamble *RestorePreamble             `json:"restorePreamble,omitempty"`
	LatestLedger    uint32                       `json:"latestLedger"`
}

// SendTransactionRequest submits a signed transaction envelope.
type SendTransactionRequest struct {
	Transaction string `json:"transaction"`
}

// SendTransactionStatus is the server's immediate disposition of a submitted
// transaction. PENDING does not guarantee inclusion.
type SendTransactionStatus string

const (
	SendStatusPending       SendTransactionStatus = "PENDING"
	SendStatusDuplicate     SendTransactionStatus = "DUPLICATE"
	SendStatusTryAgainLater SendTransactionStatus = "TRY_AGAIN_LATER"
	SendStatusError         SendTransactionStatus = "ERROR"
)

// SendTransactionResponse acknowledges a submission. Hash identifies the
// transaction for status polling.
type SendTransactionResponse struct {
	Status                SendTransactionStatus `json:"status"`
	Hash                  string                `json:"hash"`
	ErrorResultXDR        string                `json:"errorResultXdr,omitempty"`
	LatestLedger          uint32                `json:"latestLedger"`
	LatestLedgerCloseTime string                `json:"latestLedgerCloseTime"`
}

// GetTransactionRequest looks up a transaction by hash.
type GetTransactionRequest struct {
	Hash string `json:"hash"`
}

// TransactionStatus is the ledger-confirmed state of a transaction. NOT_FOUND
// covers both still-pending and never-seen transactions.
type TransactionStatus string

const (
	TransactionStatusNotFound TransactionStatus = "NOT_FOUND"
	TransactionStatusSuccess  TransactionStatus = "SUCCESS"
	TransactionStatusFailed   TransactionStatus = "FAILED"
)

// Terminal returns true once the status can no longer change.
func (s TransactionStatus) Terminal() bool {
	return s == TransactionStatusSuccess || s == TransactionStatusFailed
}

// GetTransactionResponse describes a transaction's ledger-confirmed outcome.
// The envelope, result, and metadata fields are base64 wire forms and are
// only set for transactions that reached a ledger.
type GetTransactionResponse struct {
	Status                TransactionStatus `json:"status"`
	LatestLedger          uint32            `json:"latestLedger"`
	LatestLedgerCloseTime string            `json:"latestLedgerCloseTime"`
	OldestLedger          uint32            `json:"oldestLedger"`
	OldestLedgerCloseTime string            `json:"oldestLedgerCloseTime"`
	Ledger                uint32            `json:"ledger,omitempty"`
	CreatedAt             string            `json:"createdAt,omitempty"`
	ApplicationOrder      int32             `json:"applicationOrder,omitempty"`
	EnvelopeXDR           string            `json:"envelopeXdr,omitempty"`
	ResultXDR             string            `json:"resultXdr,omitempty"`
	ResultMetaXDR         string            `json:"resultMetaXdr,omitempty"`
}
