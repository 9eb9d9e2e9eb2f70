// Package glb parses the GLB binary container: a 12-byte header followed by
// little-endian length-prefixed chunks. The JSON chunk comes first and is
// required; a single BIN chunk may follow. Unknown chunk types after those
// are skipped, per the format's forward-compatibility rule.
package glb

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Container constants from the GLB specification.
const (
	Magic   uint32 = 0x46546C67 // "glTF"
	Version uint32 = 2

	ChunkJSON uint32 = 0x4E4F534A // "JSON"
	ChunkBIN  uint32 = 0x004E4942 // "BIN\0"

	headerSize = 12
	chunkSize  = 8
)

// Parsing errors returned by Decode.
var (
	ErrInvalidMagic   = errors.New("invalid glb magic number")
	ErrInvalidVersion = errors.New("invalid glb container version")
	ErrTruncated      = errors.New("glb data truncated")
	ErrNoJSONChunk    = errors.New("first glb chunk must be JSON")
)

// Binary is a parsed GLB container. JSON and BIN alias the input slice; they
// are not copies.
type Binary struct {
	JSON []byte
	BIN  []byte
}

// Decode parses a GLB container.
func Decode(data []byte) (*Binary, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d byte header", ErrTruncated, len(data))
	}

	magic := binary.LittleEndian.Uint32(data)
	if magic != Magic {
		return nil, ErrInvalidMagic
	}
	version := binary.LittleEndian.Uint32(data[4:])
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	total := binary.LittleEndian.Uint32(data[8:])
	if uint64(total) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: header declares %d bytes, have %d", ErrTruncated, total, len(data))
	}

	b := &Binary{}
	pos := uint32(headerSize)
	first := true
	for pos < total {
		if total-pos < chunkSize {
			return nil, fmt.Errorf("%w: chunk header at offset %d", ErrTruncated, pos)
		}
		length := binary.LittleEndian.Uint32(data[pos:])
		ctype := binary.LittleEndian.Uint32(data[pos+4:])
		pos += chunkSize
		if uint64(pos)+uint64(length) > uint64(total) {
			return nil, fmt.Errorf("%w: chunk of %d bytes at offset %d", ErrTruncated, length, pos)
		}
		payload := data[pos : pos+length]
		pos += length
		// Chunks are 4-byte aligned; the length field excludes padding.
		if rem := length % 4; rem != 0 {
			pad := 4 - rem
			if total-pos < pad {
				return nil, fmt.Errorf("%w: chunk padding at offset %d", ErrTruncated, pos)
			}
			pos += pad
		}

		switch {
		case first:
			if ctype != ChunkJSON {
				return nil, ErrNoJSONChunk
			}
			b.JSON = payload
			first = false
		case ctype == ChunkBIN && b.BIN == nil:
			b.BIN = payload
		default:
			// Unknown or duplicate chunk: skip.
		}
	}

	if first {
		return nil, ErrNoJSONChunk
	}
	return b, nil
}
