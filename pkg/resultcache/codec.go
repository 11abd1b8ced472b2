// Package resultcache stores per-file check results on disk, LZ4-compressed,
// keyed by the file content and the options that produced them.
package resultcache

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/casefang/pkg/constnaming"
)

// headerSize is the length of the little-endian uncompressed-size prefix.
const headerSize = 4

// maxEntrySize bounds the uncompressed size accepted when decoding.
const maxEntrySize = 64 << 20

// ErrCorruptEntry is returned when a stored entry cannot be decoded.
var ErrCorruptEntry = errors.New("corrupt cache entry")

// encode serializes res as JSON and compresses it into a single LZ4 block.
// Incompressible payloads are stored raw, flagged by a zero-length block.
func encode(res constnaming.Result) ([]byte, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}

	out := make([]byte, headerSize+lz4.CompressBlockBound(len(raw)))
	binary.LittleEndian.PutUint32(out, uint32(len(raw))) //nolint:gosec // bounded by maxEntrySize on decode

	written, err := lz4.CompressBlock(raw, out[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("compress result: %w", err)
	}

	if written == 0 {
		binary.LittleEndian.PutUint32(out, 0)

		return append(out[:headerSize], raw...), nil
	}

	return out[:headerSize+written], nil
}

func decode(data []byte) (constnaming.Result, error) {
	if len(data) < headerSize {
		return constnaming.Result{}, ErrCorruptEntry
	}

	size := binary.LittleEndian.Uint32(data)
	body := data[headerSize:]

	if size > maxEntrySize {
		return constnaming.Result{}, fmt.Errorf("%w: declared size %d", ErrCorruptEntry, size)
	}

	raw := body

	if size > 0 {
		raw = make([]byte, size)

		n, err := lz4.UncompressBlock(body, raw)
		if err != nil {
			return constnaming.Result{}, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
		}

		if n != len(raw) {
			return constnaming.Result{}, fmt.Errorf("%w: decompressed %d of %d bytes", ErrCorruptEntry, n, size)
		}
	}

	var res constnaming.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return constnaming.Result{}, fmt.Errorf("%w: %w", ErrCorruptEntry, err)
	}

	return res, nil
}
