// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

// Status is a request status code. Codes below 300 indicate success, codes in
// [400, 500) indicate a local or client-side failure, and codes of 500 and
// above indicate a server or transport failure.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200

	// Delivered means a transaction has been included in a closed ledger.
	Delivered Status = 201

	// Pending means a transaction has been accepted but not yet included in a
	// ledger.
	Pending Status = 202

	// BadRequest means the request was malformed.
	BadRequest Status = 400

	// InvalidAddress means an account address was not a well-formed strkey.
	InvalidAddress Status = 401

	// InvalidTimebounds means a transaction's time bounds were configured
	// inconsistently.
	InvalidTimebounds Status = 402

	// EmptyTransaction means a transaction was built with no operations.
	EmptyTransaction Status = 403

	// NotFound means the requested record does not exist on the ledger.
	NotFound Status = 404

	// TooManyOperations means a transaction exceeded the per-transaction
	// operation limit.
	TooManyOperations Status = 405

	// NotSigned means a transaction was submitted without any signatures.
	NotSigned Status = 406

	// MissingFootprint means a Soroban transaction was submitted without a
	// resource footprint.
	MissingFootprint Status = 407

	// Conflict means the operation conflicts with the current state of the
	// client, such as constructing a second builder over an account that is
	// already held by another builder.
	Conflict Status = 409

	// SimulationFailed means the server reported that the transaction would
	// fail if executed on-ledger. Retrying an unchanged transaction will fail
	// identically.
	SimulationFailed Status = 412

	// RestorationRequired means simulation reported that archived ledger
	// entries must be restored before the transaction can succeed.
	RestorationRequired Status = 413

	// SigningError means the signer capability failed to produce a signature.
	SigningError Status = 422

	// UnknownError means the cause of the failure is unknown.
	UnknownError Status = 500

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 501

	// TransportError means the request failed due to a network problem. The
	// transaction state is unchanged and the request is safe to retry.
	TransportError Status = 502

	// RPCError means the server returned a JSON-RPC error.
	RPCError Status = 503

	// SubmissionUnknown means the outcome of a submitted transaction could
	// not be determined. The caller must reconcile via the transaction status
	// before rebuilding with a new sequence number.
	SubmissionUnknown Status = 504
)

var statusNames = map[Status]string{
	OK:                  "ok",
	Delivered:           "delivered",
	Pending:             "pending",
	BadRequest:          "badRequest",
	InvalidAddress:      "invalidAddress",
	InvalidTimebounds:   "invalidTimebounds",
	EmptyTransaction:    "emptyTransaction",
	NotFound:            "notFound",
	TooManyOperations:   "tooManyOperations",
	NotSigned:           "notSigned",
	MissingFootprint:    "missingFootprint",
	Conflict:            "conflict",
	SimulationFailed:    "simulationFailed",
	RestorationRequired: "restorationRequired",
	SigningError:        "signingError",
	UnknownError:        "unknownError",
	EncodingError:       "encodingError",
	TransportError:      "transportError",
	RPCError:            "rpcError",
	SubmissionUnknown:   "submissionUnknown",
}

// String returns the name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsKnownError returns true if the status is non-zero and not UnknownError.
func (s Status) IsKnownError() bool { return s != 0 && s != UnknownError }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// Error implements error.
func (s Status) Error() string { return s.String() }
