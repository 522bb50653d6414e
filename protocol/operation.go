// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/encoding"
)

// OperationType discriminates the kind of action an operation performs.
type OperationType uint32

const (
	OperationTypeCreateAccount OperationType = iota
	OperationTypePayment
	OperationTypeInvokeHostFunction
	OperationTypeExtendFootprintTTL
	OperationTypeRestoreFootprint
)

var operationTypeNames = map[OperationType]string{
	OperationTypeCreateAccount:      "createAccount",
	OperationTypePayment:            "payment",
	OperationTypeInvokeHostFunction: "invokeHostFunction",
	OperationTypeExtendFootprintTTL: "extendFootprintTTL",
	OperationTypeRestoreFootprint:   "restoreFootprint",
}

func (t OperationType) String() string {
	if name, ok := operationTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsSoroban returns true for operation types that execute against the Soroban
// host and therefore require a resource footprint.
func (t OperationType) IsSoroban() bool {
	switch t {
	case OperationTypeInvokeHostFunction,
		OperationTypeExtendFootprintTTL,
		OperationTypeRestoreFootprint:
		return true
	}
	return false
}

// Operation is an opaque, pre-encoded action payload. The body is produced by
// an external encoder and carried through the transaction without
// interpretation. Operations are immutable once added to a builder.
type Operation struct {
	Type OperationType

	// SourceAccount overrides the transaction's source for this operation.
	// Empty means the transaction source applies.
	SourceAccount string

	// Body is the operation's canonical encoding. The client never inspects
	// or rewrites it.
	Body []byte
}

// Equal returns true if the operations are identical.
func (op *Operation) Equal(other *Operation) bool {
	return op.Type == other.Type &&
		op.SourceAccount == other.SourceAccount &&
		bytes.Equal(op.Body, other.Body)
}

func (op *Operation) marshalTo(w *encoding.Writer) {
	w.WriteUint(uint32(op.Type))
	w.WriteString(op.SourceAccount)
	w.WriteBytes(op.Body)
}

func (op *Operation) unmarshalFrom(r *encoding.Reader) {
	op.Type = OperationType(r.ReadUint())
	op.SourceAccount = r.ReadString()
	op.Body = r.ReadBytes()
}

// MarshalBinary encodes the operation in its canonical wire form.
func (op *Operation) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	op.marshalTo(w)
	if _, err := w.Done(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes an operation from its canonical wire form.
func (op *Operation) UnmarshalBinary(data []byte) error {
	r := encoding.NewReader(bytes.NewReader(data))
	op.unmarshalFrom(r)
	_, err := r.Done()
	return errors.UnknownError.Wrap(err)
}
