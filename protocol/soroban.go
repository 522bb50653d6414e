// Copyright 2026 The Soroban Client Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"encoding/base64"

	"gitlab.com/sorobanclient/soroban-go/pkg/errors"
	"gitlab.com/sorobanclient/soroban-go/pkg/types/encoding"
)

// LedgerFootprint lists the ledger keys a Soroban transaction reads and
// writes. Keys are base64-encoded ledger key encodings produced by the server
// or an external encoder; the client carries them through byte for byte.
type LedgerFootprint struct {
	ReadOnly  []string `json:"readOnly,omitempty"`
	ReadWrite []string `json:"readWrite,omitempty"`
}

// SorobanResources declares the resources a Soroban transaction may consume.
type SorobanResources struct {
	Footprint    LedgerFootprint `json:"footprint"`
	Instructions uint32          `json:"instructions"`
	ReadBytes    uint32          `json:"readBytes"`
	WriteBytes   uint32          `json:"writeBytes"`
}

// SorobanData is the resource annotation attached to a Soroban transaction,
// normally computed by simulation before submission.
type SorobanData struct {
	Resources   SorobanResources `json:"resources"`
	ResourceFee int64            `json:"resourceFee"`
}

func (d *SorobanData) marshalTo(w *encoding.Writer) {
	writeKeys := func(keys []string) {
		w.WriteUint(uint32(len(keys)))
		for _, k := range keys {
			w.WriteString(k)
		}
	}
	writeKeys(d.Resources.Footprint.ReadOnly)
	writeKeys(d.Resources.Footprint.ReadWrite)
	w.WriteUint(d.Resources.Instructions)
	w.WriteUint(d.Resources.ReadBytes)
	w.WriteUint(d.Resources.WriteBytes)
	w.WriteInt64(d.ResourceFee)
}

func (d *SorobanData) unmarshalFrom(r *encoding.Reader) {
	readKeys := func() []string {
		n := r.ReadUint()
		if n == 0 {
			return nil
		}
		keys := make([]string, 0, n)
		for i := uint32(0); i < n; i++ {
			keys = append(keys, r.ReadString())
		}
		return keys
	}
	d.Resources.Footprint.ReadOnly = readKeys()
	d.Resources.Footprint.ReadWrite = readKeys()
	d.Resources.Instructions = r.ReadUint()
	d.Resources.ReadBytes = r.ReadUint()
	d.Resources.WriteBytes = r.ReadUint()
	d.ResourceFee = r.ReadInt64()
}

// MarshalBinary encodes the resource data in its canonical wire form.
func (d *SorobanData) MarshalBinary() ([]byte, error) {
	buf := new(bytes.Buffer)
	w := encoding.NewWriter(buf)
	d.marshalTo(w)
	if _, err := w.Done(); err != nil {
		return nil, errors.UnknownError.Wrap(err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes resource data from its canonical wire form.
func (d *SorobanData) UnmarshalBinary(data []byte) error {
	r := encoding.NewReader(bytes.NewReader(data))
	d.unmarshalFrom(r)
	_, err := r.Done()
	return errors.UnknownError.Wrap(err)
}

// Base64 returns the base64 encoding of the canonical wire form.
func (d *SorobanData) Base64() (string, error) {
	b, err := d.MarshalBinary()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// SorobanDataFromBase64 decodes resource data from its base64 wire form.
func SorobanDataFromBase64(s string) (*SorobanData, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.EncodingError.WithFormat("invalid base64: %w", err)
	}
	d := new(SorobanData)
	if err := d.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return d, nil
}
