// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scan reads structure records out of a world store in one ordered
// pass, optionally deleting the selected keys in the same pass.
package scan

import (
	"errors"
	"fmt"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/iterator"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/util"
	"github.com/sandertv/gophertunnel/minecraft/nbt"
	"go.uber.org/zap"

	"github.com/destruc7i0n/extract-mcstructure/internal/worlddb"
	"github.com/destruc7i0n/extract-mcstructure/pkg/types"
)

// Store is the subset of *leveldb.DB used by Scan.
type Store interface {
	NewIterator(slice *util.Range, ro *opt.ReadOptions) iterator.Iterator
	Write(batch *leveldb.Batch, wo *opt.WriteOptions) error
}

// Codec checks that a payload is a well-formed structure. The payload
// itself is never modified.
type Codec interface {
	Decode(payload []byte) error
}

// NBTCodec decodes payloads as little-endian NBT with a compound root.
type NBTCodec struct{}

// Decode implements Codec.
func (NBTCodec) Decode(payload []byte) error {
	var root map[string]any
	return nbt.UnmarshalEncoding(payload, &root, nbt.LittleEndian)
}

// DecodeKind says which decode stage rejected a record.
type DecodeKind string

const (
	// KindKeyNotText marks keys whose bytes are not ASCII.
	KindKeyNotText DecodeKind = "key_not_text"
	// KindPayloadInvalid marks values the codec rejected.
	KindPayloadInvalid DecodeKind = "payload_invalid"
)

// errKeyNotText is the cause recorded for KindKeyNotText.
var errKeyNotText = errors.New("key is not ASCII")

// DecodeError describes one record dropped during a scan.
type DecodeError struct {
	Key  []byte
	ID   string // empty for KindKeyNotText
	Kind DecodeKind
	Err  error
}

func (e *DecodeError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("dropped %q (%s): %v", e.ID, e.Kind, e.Err)
	}
	return fmt.Sprintf("dropped key %x (%s): %v", e.Key, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Options configures a scan.
type Options struct {
	// Selection decides which records are deleted when Delete is set.
	Selection types.Selection

	// Delete removes selected, successfully decoded records from the store.
	Delete bool

	// Codec validates payloads. Defaults to NBTCodec.
	Codec Codec

	// Logger receives one warning per dropped record. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Result holds everything observed during one pass.
type Result struct {
	Records types.RecordSet
	Dropped []*DecodeError
	Deleted []string
}

// Scan iterates every key carrying worlddb.StructurePrefix in key order.
// Records that fail either decode stage are dropped and reported in
// Result.Dropped; they never abort the scan. Deletions are collected while
// iterating and committed in one synced batch once the pass is complete,
// so the iterator snapshot is never affected by them.
func Scan(store Store, opts Options) (*Result, error) {
	codec := opts.Codec
	if codec == nil {
		codec = NBTCodec{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	prefix := []byte(worlddb.StructurePrefix)
	iter := store.NewIterator(util.BytesPrefix(prefix), nil)
	defer iter.Release()

	res := &Result{}
	batch := new(leveldb.Batch)

	for iter.Next() {
		key := append([]byte(nil), iter.Key()...)

		if !isASCII(key) {
			res.drop(logger, &DecodeError{Key: key, Kind: KindKeyNotText, Err: errKeyNotText})
			continue
		}
		id := string(key[len(prefix):])

		payload := append([]byte(nil), iter.Value()...)
		if err := codec.Decode(payload); err != nil {
			res.drop(logger, &DecodeError{Key: key, ID: id, Kind: KindPayloadInvalid, Err: err})
			continue
		}

		res.Records.Set(types.Record{ID: id, Payload: payload})
		logger.Debug("scanned structure", zap.String("id", id), zap.Int("bytes", len(payload)))

		if opts.Delete && opts.Selection.Matches(id) {
			batch.Delete(key)
			res.Deleted = append(res.Deleted, id)
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("iterating structure records: %w", err)
	}

	if batch.Len() > 0 {
		if err := store.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
			return nil, fmt.Errorf("deleting structure records: %w", err)
		}
		logger.Info("deleted structure records", zap.Strings("ids", res.Deleted))
	}

	return res, nil
}

func (r *Result) drop(logger *zap.Logger, de *DecodeError) {
	r.Dropped = append(r.Dropped, de)
	logger.Warn("dropped structure record",
		zap.String("kind", string(de.Kind)),
		zap.String("id", de.ID),
		zap.Binary("key", de.Key),
		zap.Error(de.Err),
	)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= 0x80 {
			return false
		}
	}
	return true
}
