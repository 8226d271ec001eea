// Package snapshot exports and imports a full checkpoint of TCR and
// Root-of-Trust state, LZ4-compressed, adapted from the teacher's
// internal/storage/nodestore/compression LZ4Compressor.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"

	"github.com/NodleCode/PKI/internal/rot"
	"github.com/NodleCode/PKI/internal/tcr"
)

// State is the full logical state both engines need to resume from,
// mirroring the persisted state layout in spec.md §6.
type State struct {
	Applications map[tcr.AccountID]tcr.Application
	Challenges   map[tcr.AccountID]tcr.Application
	Members      map[tcr.AccountID]tcr.Application
	Slots        map[rot.CertificateID]rot.RootCertificate
}

var cborHandle codec.CborHandle

// Encode serializes state with CBOR then compresses it with LZ4, the same
// compressor the teacher uses for ledger checkpoints.
func Encode(state State) ([]byte, error) {
	var buf bytes.Buffer
	enc := codec.NewEncoder(&buf, &cborHandle)
	if err := enc.Encode(state); err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	raw := buf.Bytes()

	maxSize := lz4.CompressBlockBound(len(raw))
	compressed := make([]byte, maxSize)
	n, err := lz4.CompressBlock(raw, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot: lz4 compress: %w", err)
	}

	// Prefix with the uncompressed length, since lz4 block decompression
	// needs a known output size.
	out := make([]byte, 8+n)
	binary.BigEndian.PutUint64(out[:8], uint64(len(raw)))
	copy(out[8:], compressed[:n])
	return out, nil
}

// Decode reverses Encode.
func Decode(data []byte) (State, error) {
	var state State
	if len(data) < 8 {
		return state, fmt.Errorf("snapshot: truncated header")
	}
	rawLen := binary.BigEndian.Uint64(data[:8])
	decompressed := make([]byte, rawLen)
	n, err := lz4.UncompressBlock(data[8:], decompressed)
	if err != nil {
		return state, fmt.Errorf("snapshot: lz4 decompress: %w", err)
	}
	decompressed = decompressed[:n]

	dec := codec.NewDecoder(bytes.NewReader(decompressed), &cborHandle)
	if err := dec.Decode(&state); err != nil {
		return state, fmt.Errorf("snapshot: decode: %w", err)
	}
	return state, nil
}
