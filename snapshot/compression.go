package snapshot

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression compresses and decompresses snapshot bodies.
// Implementations must be safe for concurrent use.
type Compression interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Name() string
}

// ByName returns a built-in compression scheme by its stable name.
//
// Snapshot headers store the scheme name, so readers select the scheme
// by name rather than by configuration.
func ByName(name string) (Compression, bool) {
	switch name {
	case "none":
		return None{}, true
	case "zstd":
		return Zstd{}, true
	case "lz4":
		return LZ4{}, true
	default:
		return nil, false
	}
}

// None stores the body uncompressed.
type None struct{}

// Compress returns data unchanged.
func (None) Compress(data []byte) ([]byte, error) { return data, nil }

// Decompress returns data unchanged.
func (None) Decompress(data []byte) ([]byte, error) { return data, nil }

// Name returns the unique name of the scheme ("none").
func (None) Name() string { return "none" }

// Zstd compresses the body with zstandard at the default level.
type Zstd struct{}

// Compress encodes data as a zstd stream.
func (Zstd) Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, make([]byte, 0, len(data))), nil
}

// Decompress decodes a zstd stream.
func (Zstd) Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(data, nil)
}

// Name returns the unique name of the scheme ("zstd").
func (Zstd) Name() string { return "zstd" }

// LZ4 compresses the body with the lz4 frame format.
type LZ4 struct{}

// Compress encodes data as an lz4 frame.
func (LZ4) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress decodes an lz4 frame.
func (LZ4) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
}

// Name returns the unique name of the scheme ("lz4").
func (LZ4) Name() string { return "lz4" }
