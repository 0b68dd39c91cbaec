package world

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/klauspost/compress/zstd"
)

// Chunk file format: a fixed header (magic, version, compression byte)
// followed by the payload. The payload is big-endian: chunk coords,
// 4096 pixels (material + flags), 64 temperature samples, 4096 light
// levels, 4096 pressure values. Encoding is deterministic, so a chunk
// that was not modified between load and save keeps its bytes
// byte-identical.
const (
	chunkMagic   uint32 = 0x53554E41 // "SUNA"
	chunkVersion uint16 = 1

	compressionNone uint8 = 0
	compressionZstd uint8 = 1

	chunkHeaderSize  = 4 + 2 + 1
	chunkPayloadSize = 8 + ChunkArea*3 + TempGridSize*TempGridSize*4 + ChunkArea + ChunkArea*4
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
}

// EncodeChunk serializes a chunk to its on-disk representation. The
// payload is zstd-compressed when that actually shrinks it.
func EncodeChunk(c *Chunk) []byte {
	payload := make([]byte, chunkPayloadSize)
	off := 0

	binary.BigEndian.PutUint32(payload[off:], uint32(c.X))
	off += 4
	binary.BigEndian.PutUint32(payload[off:], uint32(c.Y))
	off += 4

	for i := range c.Pixels {
		binary.BigEndian.PutUint16(payload[off:], c.Pixels[i].Material)
		payload[off+2] = c.Pixels[i].Flags
		off += 3
	}
	for i := range c.Temperature {
		binary.BigEndian.PutUint32(payload[off:], math.Float32bits(c.Temperature[i]))
		off += 4
	}
	copy(payload[off:], c.Light[:])
	off += ChunkArea
	for i := range c.Pressure {
		binary.BigEndian.PutUint32(payload[off:], math.Float32bits(c.Pressure[i]))
		off += 4
	}

	compression := compressionNone
	data := payload
	if compressed := zstdEncoder.EncodeAll(payload, make([]byte, 0, len(payload)/4)); len(compressed) < len(payload) {
		compression = compressionZstd
		data = compressed
	}

	out := make([]byte, chunkHeaderSize+len(data))
	binary.BigEndian.PutUint32(out[0:], chunkMagic)
	binary.BigEndian.PutUint16(out[4:], chunkVersion)
	out[6] = compression
	copy(out[chunkHeaderSize:], data)
	return out
}

// DecodeChunk deserializes a chunk from its on-disk representation.
func DecodeChunk(data []byte) (*Chunk, error) {
	if len(data) < chunkHeaderSize {
		return nil, fmt.Errorf("chunk data truncated: %d bytes", len(data))
	}
	if magic := binary.BigEndian.Uint32(data[0:]); magic != chunkMagic {
		return nil, fmt.Errorf("invalid chunk magic: got 0x%08X, want 0x%08X", magic, chunkMagic)
	}
	if version := binary.BigEndian.Uint16(data[4:]); version > chunkVersion {
		return nil, fmt.Errorf("unsupported chunk version %d (max %d)", version, chunkVersion)
	}

	payload := data[chunkHeaderSize:]
	if data[6] == compressionZstd {
		decompressed, err := zstdDecoder.DecodeAll(payload, make([]byte, 0, chunkPayloadSize))
		if err != nil {
			return nil, fmt.Errorf("decompress chunk: %w", err)
		}
		payload = decompressed
	}
	if len(payload) != chunkPayloadSize {
		return nil, fmt.Errorf("chunk payload size %d, want %d", len(payload), chunkPayloadSize)
	}

	c := &Chunk{}
	off := 0
	c.X = int32(binary.BigEndian.Uint32(payload[off:]))
	off += 4
	c.Y = int32(binary.BigEndian.Uint32(payload[off:]))
	off += 4

	for i := range c.Pixels {
		c.Pixels[i].Material = binary.BigEndian.Uint16(payload[off:])
		c.Pixels[i].Flags = payload[off+2]
		off += 3
	}
	for i := range c.Temperature {
		c.Temperature[i] = math.Float32frombits(binary.BigEndian.Uint32(payload[off:]))
		off += 4
	}
	copy(c.Light[:], payload[off:off+ChunkArea])
	off += ChunkArea
	for i := range c.Pressure {
		c.Pressure[i] = math.Float32frombits(binary.BigEndian.Uint32(payload[off:]))
		off += 4
	}

	return c, nil
}
