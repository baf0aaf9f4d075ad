// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package worlddb opens the LevelDB store inside a Bedrock world directory.
package worlddb

import (
	"fmt"
	"path/filepath"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
)

const (
	// Dir is the store directory under the world root.
	Dir = "db"

	// StructurePrefix is the key prefix of saved structure templates.
	StructurePrefix = "structuretemplate_"
)

// Options returns the store options used for world databases. Blocks
// written by this tool stay uncompressed so the game can always read them.
func Options() *opt.Options {
	return &opt.Options{
		ErrorIfMissing: true,
		Compression:    opt.NoCompression,
	}
}

// Open opens the store of the world rooted at worldRoot. The store must
// already exist.
func Open(worldRoot string) (*leveldb.DB, error) {
	path := filepath.Join(worldRoot, Dir)
	db, err := leveldb.OpenFile(path, Options())
	if err != nil {
		return nil, fmt.Errorf("opening world store %s: %w", path, err)
	}
	return db, nil
}

// StructureKey returns the store key for a structure id.
func StructureKey(id string) []byte {
	return []byte(StructurePrefix + id)
}
