// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/encoding"
)

// envelopeTypeTx tags the signature payload of a plain transaction,
// distinguishing it from other signable envelope kinds.
const envelopeTypeTx = 2

// Signer produces a signature over a transaction hash. Implementations live
// outside this package; see pkg/client/signing.
type Signer interface {
	// Sign signs the given hash.
	Sign(hash []byte) ([]byte, error)

	// Hint identifies the signing key, by convention the last four bytes of
	// the public key.
	Hint() [4]byte
}

// DecoratedSignature pairs a signature with the hint of the key that produced
// it.
type DecoratedSignature struct {
	Hint      [4]byte `json:"hint"`
	Signature []byte  `json:"signature"`
}

// TimeBounds bound the ledger close time within which a transaction is valid.
// MaxTime of zero means no upper bound.
type TimeBounds struct {
	MinTime uint64 `json:"minTime"`
	MaxTime uint64 `json:"maxTime"`
}

// TimeoutBounds returns time bounds covering now through now plus the given
// number of seconds.
func TimeoutBounds(seconds uint64) *TimeBounds {
	now := uint64(time.Now().UTC().Unix())
	return &TimeBounds{MinTime: 0, MaxTime: now + seconds}
}

// Transaction is the assembled, hashable, signable unit. It is created
// unsigned by a transaction builder, annotated with resource data by
// simulation, and signed before submission. Operations execute on the ledger
// in the order they appear.
type Transaction struct {
	SourceAccount  string
	SequenceNumber int64
	Fee            uint32
	Memo           string
	TimeBounds     *TimeBounds
	Operations     []*Operation
	SorobanData    *SorobanData
	Signatures     []DecoratedSignature

	// NetworkPassphrase salts the transaction hash. Set by the builder.
	NetworkPassphrase string
}

// IsSoroban returns true if the transaction consists of exactly one Soroban
// operation, the only shape the Soroban host accepts.
func (tx *Transaction) IsSoroban() bool {
	return len(tx.Operations) == 1 && tx.Operations[0].Type.IsSoroban()
}

func (tx *Transaction) marshalPayload(w *encoding.Writer) {
	w.WriteString(tx.SourceAccount)
	w.WriteUint(tx.Fee)
	w.WriteInt64(tx.SequenceNumber)
	w.WriteString(tx.Memo)

	w.WriteOptional(tx.TimeBounds != nil)
	if tx.TimeBounds != nil {
		w.WriteUint64(tx.TimeBounds.MinTime)
		w.WriteUint64(tx.TimeBounds.MaxTime)
	}

	w.WriteUint(uint32(len(tx.Operations)))
	for _, op := range tx.Operations {
		op.marshalTo(w)
	}

	w.WriteOptional(tx.SorobanData != nil)
	if tx.SorobanData != nil {
		tx.SorobanData.marshalTo(w)
	}
}

func (tx *Transaction) unmarshalPayload(r *encoding.Reader) {
	tx.SourceAccount = r.ReadString()
	tx.Fee = r.ReadUint()
	tx.SequenceNumber = r.ReadInt64()
	tx.Memo = r.ReadString()

	if r.ReadOptional() {
		tx.TimeBounds = &TimeBounds{
			MinTime: r.ReadUint64(),
			MaxTime: r.ReadUint64(),
		}
	} else {
		tx.TimeBounds = nil
	}

	n := r.ReadUint()
	if _, err := r.Done(); err != nil {
		return
	}
	tx.Operations = nil
	for i := uint32(0); i < n; i++ {
		op := new(Operation)
		op.unmarshalFrom(r)
		if _, err := r.Done(); err != nil {
			return
		}
		tx.Operations = append(tx.Operations, op)
	}

	if r.ReadOptional() {
		tx.SorobanData = new(SorobanData)
		tx.SorobanData.unmarshalFrom(r)
	} else {
		tx.SorobanData = nil
	}
}

// SignatureBase returns the bytes that are hashed to produce the signature
// payload: the network ID, the envelope type tag, and the canonical encoding
// of the transaction without signatures.
func (tx *Transaction) SignatureBase() ([]byte, error) {
	if tx.NetworkPassphrase == "" {
		return nil, errors.BadRequest.With("no network passphrase")
	}

	buf := new(bytes.Buffer)
	id := NetworkID(tx.NetworkPassphrase)
	buf.Write(id[:])

	w := encoding.NewWriter(buf)
	w.WriteUint(envelopeTypeTx)
	tx.marshalPayload(w)
	if _, err := w.Done(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return buf.Bytes(), nil
}

// Hash returns the canonical, network-passphrase-salted transaction hash.
func (tx *Transaction) Hash() ([32]byte, error) {
	base, err := tx.SignatureBase()
	if err != nil {
		return [32]byte{}, errors.UnknownError.Wrap(err)
	}
	return sha256.Sum256(base), nil
}

// HashHex returns the transaction hash as a lowercase hex string.
func (tx *Transaction) HashHex() (string, error) {
	h, err := tx.Hash()
	if err != nil {
		return "", err
	}
	const hextable = "0123456789abcdef"
	out := make([]byte, 64)
	for i, b := range h {
		out[i*2] = hextable[b>>4]
		out[i*2+1] = hextable[b&0x0f]
	}
	return string(out), nil
}

// Sign signs the transaction hash with each signer and appends the resulting
// decorated signatures. It may be called repeatedly to collect signatures for
// a multi-signature transaction. Signing never modifies any account state.
func (tx *Transaction) Sign(signers ...Signer) error {
	h, err := tx.Hash()
	if err != nil {
		return errors.UnknownError.Wrap(err)
	}

	for _, signer := range signers {
		sig, err := signer.Sign(h[:])
		if err != nil {
			return errors.SigningError.Wrap(err)
		}
		tx.Signatures = append(tx.Signatures, DecoratedSignature{
			Hint:      signer.Hint(),
			Signature: sig,
		})
	}
	return nil
}

// MarshalBinary encodes the transaction envelope, signatures included, in its
// canonical wire form.
func (tx *Transaction) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	tx.marshalPayload(w)

	w.WriteUint(uint32(len(tx.Signatures)))
	for _, sig := range tx.Signatures {
		w.WriteFixed(sig.Hint[:])
		w.WriteBytes(sig.Signature)
	}

	if _, err := w.Done(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a transaction envelope from its canonical wire
// form.
func (tx *Transaction) UnmarshalBinary(data []byte) error {
	r := encoding.NewReader(bytes.NewReader(data))
	tx.unmarshalPayload(r)

	n := r.ReadUint()
	if _, err := r.Done(); err != nil {
		return errors.UnknownError.Wrap(err)
	}
	tx.Signatures = nil
	for i := uint32(0); i < n; i++ {
		var sig DecoratedSignature
		copy(sig.Hint[:], r.ReadFixed(4))
		sig.Signature = r.ReadBytes()
		if _, err := r.Done(); err != nil {
			return errors.UnknownError.Wrap(err)
		}
		tx.Signatures = append(tx.Signatures, sig)
	}

	_, err := r.Done()
	return errors.UnknownError.Wrap(err)
}

// EnvelopeBase64 returns the base64 encoding of the transaction envelope, the
// form the JSON-RPC wire expects.
func (tx *Transaction) EnvelopeBase64() (string, error) {
	b, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// TransactionFromEnvelopeBase64 decodes a transaction from its base64
// envelope form. The network passphrase is not part of the envelope and must
// be supplied by the caller before hashing or signing.
func TransactionFromEnvelopeBase64(s string) (*Transaction, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("invalid base64: %w", err)
	}
	tx := new(Transaction)
	if err := tx.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return tx, nil
}
