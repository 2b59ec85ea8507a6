// Package storage persists game snapshots: a compressed, checksummed codec
// and the save-slot stores it is written to.
package storage

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Magic prefixes every save blob; the digit is the format version.
const Magic = "DWS1"

const headerLen = len(Magic) + blake2b.Size256

var (
	// ErrBadMagic is returned when a blob is not a save of this format.
	ErrBadMagic = errors.New("storage: not a save file")
	// ErrChecksumMismatch is returned when the payload does not match its checksum.
	ErrChecksumMismatch = errors.New("storage: save checksum mismatch")
)

// Encode serialises v as Magic, the blake2b-256 sum of the payload and the
// zstd-compressed gob payload.
//
// Precondition: v is gob-encodable.
func Encode(v any) ([]byte, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(v); err != nil {
		return nil, fmt.Errorf("storage: encoding: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("storage: compressor: %w", err)
	}
	payload := enc.EncodeAll(raw.Bytes(), nil)
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("storage: compressor: %w", err)
	}
	sum := blake2b.Sum256(payload)

	out := make([]byte, 0, headerLen+len(payload))
	out = append(out, Magic...)
	out = append(out, sum[:]...)
	return append(out, payload...), nil
}

// Decode verifies and deserialises a blob produced by Encode into v.
//
// Postcondition: returns ErrBadMagic or ErrChecksumMismatch without touching
// v when the blob is foreign or corrupted.
func Decode(data []byte, v any) error {
	if len(data) < headerLen || string(data[:len(Magic)]) != Magic {
		return ErrBadMagic
	}
	payload := data[headerLen:]
	sum := blake2b.Sum256(payload)
	if !bytes.Equal(sum[:], data[len(Magic):headerLen]) {
		return ErrChecksumMismatch
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return fmt.Errorf("storage: decompressor: %w", err)
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(payload, nil)
	if err != nil {
		return fmt.Errorf("storage: decompressing: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(v); err != nil {
		return fmt.Errorf("storage: decoding: %w", err)
	}
	return nil
}
