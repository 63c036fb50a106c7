// Package snapshot persists a pending insertion batch to a byte stream.
//
// Long-running rewrite pipelines can checkpoint an InsertionSet before
// it is applied and restore it later. The format is self-describing:
// the header records the compression scheme by name, so a reader never
// has to guess how a snapshot was written.
//
//	var buf bytes.Buffer
//	err := snapshot.Write(&buf, set, snapshot.WithCompression(snapshot.Zstd{}))
//	restored, err := snapshot.Read[int](&buf)
//
// Changing the element type T between write and read is undetectable at
// this layer; it surfaces as a JSON decode error at best.
package snapshot

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/insertset"
)

const (
	// MagicNumber identifies insertion set snapshots (ASCII: "ISET").
	MagicNumber = 0x49534554
	// Version is the current snapshot format version.
	Version = 1
)

var (
	// ErrInvalidMagic is returned when the stream does not start with a
	// snapshot header.
	ErrInvalidMagic = errors.New("snapshot: invalid magic number")
	// ErrInvalidVersion is returned for snapshots written by an
	// unsupported format version.
	ErrInvalidVersion = errors.New("snapshot: unsupported version")
	// ErrUnknownCompression is returned when the header names a
	// compression scheme this build does not provide.
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
)

// header is the fixed-size portion of the snapshot layout. It is
// followed by the compression name (uint8 length + bytes), the body
// length (uint64) and the compressed body.
type header struct {
	Magic   uint32
	Version uint16
}

// record is the persisted form of one pending insertion.
type record[T any] struct {
	Index   int `json:"index"`
	Element T   `json:"element"`
}

type writeOptions struct {
	compression Compression
}

// WriteOption configures Write behavior.
type WriteOption func(*writeOptions)

// WithCompression selects the compression scheme for the snapshot body.
//
// If nil is passed, the body is stored uncompressed.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		if c == nil {
			c = None{}
		}
		o.compression = c
	}
}

// Write persists the set's pending insertions to w. The set itself is
// not modified or drained.
func Write[T any](w io.Writer, set *insertset.InsertionSet[T], optFns ...WriteOption) error {
	opts := writeOptions{
		compression: None{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	records := make([]record[T], 0, set.Len())
	for ins := range set.All() {
		records = append(records, record[T]{Index: ins.Index, Element: ins.Element})
	}
	body, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("snapshot: encode insertions: %w", err)
	}
	body, err = opts.compression.Compress(body)
	if err != nil {
		return fmt.Errorf("snapshot: compress body: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, header{Magic: MagicNumber, Version: Version}); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	name := opts.compression.Name()
	if err := binary.Write(w, binary.LittleEndian, uint8(len(name))); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := io.WriteString(w, name); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(body))); err != nil {
		return fmt.Errorf("snapshot: write header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("snapshot: write body: %w", err)
	}
	return nil
}

// Read restores an insertion set from a snapshot stream written by
// Write. The element type T must match the one the snapshot was
// written with.
func Read[T any](r io.Reader) (*insertset.InsertionSet[T], error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	if h.Magic != MagicNumber {
		return nil, fmt.Errorf("%w: got 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidVersion, h.Version)
	}

	var nameLen uint8
	if err := binary.Read(r, binary.LittleEndian, &nameLen); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	name := make([]byte, nameLen)
	if _, err := io.ReadFull(r, name); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	compression, ok := ByName(string(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}

	var bodyLen uint64
	if err := binary.Read(r, binary.LittleEndian, &bodyLen); err != nil {
		return nil, fmt.Errorf("snapshot: read header: %w", err)
	}
	body := make([]byte, bodyLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("snapshot: read body: %w", err)
	}
	body, err := compression.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress body: %w", err)
	}

	var records []record[T]
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("snapshot: decode insertions: %w", err)
	}
	set := insertset.New[T]()
	for _, rec := range records {
		set.Insert(rec.Index, rec.Element)
	}
	return set, nil
}
